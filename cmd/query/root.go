package query

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/resolve"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/ValentinKolb/rKV/lib/store/mstore"
	"github.com/ValentinKolb/rKV/lib/store/ostore"
	"github.com/ValentinKolb/rKV/lib/tree"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// QueryCmd loads a data file into a store and prints resolved paths
var QueryCmd = &cobra.Command{
	Use:   "query [file] [path...]",
	Short: "Resolve paths in a JSON or YAML file",
	Long: `Loads a JSON or YAML file (or stdin with "-") into a store and prints the
values of the given paths as a JSON object. Undefined paths resolve to null.
Without paths the whole store is printed.

With --keyed the top-level keys of the file are the identifiers of a map store
and every path starts with an identifier (e.g. "u1.address.city").`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return util.BindCommandFlags(cmd)
	},
	RunE: run,
}

func init() {
	key := "fallback"
	QueryCmd.Flags().String(key, "", util.WrapString("Optional file with fallback data that is used for undefined paths. With --keyed it is the fallback record of every identifier"))

	key = "keyed"
	QueryCmd.Flags().Bool(key, false, util.WrapString("Load the file into a map store keyed by its top-level keys"))

	key = "format"
	QueryCmd.Flags().String(key, "", util.WrapString("Format of the files (json, yaml). Derived from the file extension if empty"))
}

func run(_ *cobra.Command, args []string) error {
	format := viper.GetString("format")

	data, err := load(args[0], format)
	if err != nil {
		return err
	}

	var fallback map[string]any
	if path := viper.GetString("fallback"); path != "" {
		if fallback, err = load(path, format); err != nil {
			return err
		}
	}

	var result map[string]any
	if viper.GetBool("keyed") {
		result = queryMapStore(data, fallback, args[1:])
	} else {
		result = queryObjectStore(data, fallback, args[1:])
	}
	return util.PrintJSON(os.Stdout, result)
}

// load reads a JSON or YAML object from path
func load(path, format string) (map[string]any, error) {
	raw, err := util.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if format == "" {
		format = formatOf(path)
	}
	return parse(raw, format)
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// parse decodes raw as a JSON or YAML object
func parse(raw []byte, format string) (map[string]any, error) {
	var (
		v   any
		err error
	)
	switch format {
	case "json":
		v, err = tree.ParseJSON(raw)
	case "yaml":
		v, err = tree.ParseYAML(raw)
	default:
		return nil, fmt.Errorf("invalid format %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}
	return m, nil
}

func queryObjectStore(data, fallback map[string]any, paths []string) map[string]any {
	opts := store.DefaultOptions()
	opts.InitialData = data
	if fallback != nil {
		opts.FallbackData = fallback
	}
	s := ostore.NewObjectStore(opts)

	if len(paths) == 0 {
		return s.Snapshot()
	}

	result := make(map[string]any, len(paths))
	for _, path := range paths {
		result[path], _ = s.Get(path)
	}
	return result
}

func queryMapStore(data, fallback map[string]any, paths []string) map[string]any {
	opts := store.DefaultMapOptions()
	opts.InitialEntries = store.EntriesFromMap(data)
	opts.FallbackRecord = fallback
	s := mstore.NewMapStore(opts)

	if len(paths) == 0 {
		return s.Snapshot()
	}

	result := make(map[string]any, len(paths))
	for _, path := range paths {
		id, rest, _ := strings.Cut(path, resolve.Separator)
		result[path], _ = s.Key(id).Get(rest)
	}
	return result
}
