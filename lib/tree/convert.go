package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// --------------------------------------------------------------------------
// Go Values <-> Record Trees
// --------------------------------------------------------------------------

// FromValue converts a struct, a pointer to a struct or a string keyed map into a
// new record tree, nil gives an empty record. Struct fields are named by their json
// tag (falling back to the field name), nested structs become maps and slices become
// []any. Struct valued fields are always expanded, store timestamps as strings.
// v is never modified.
func FromValue(v any) (map[string]any, error) {
	record := map[string]any{}
	if v == nil {
		return record, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &record,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(v); err != nil {
		return nil, fmt.Errorf("tree: cannot convert %T into a record: %w", v, err)
	}
	return normalizeMap(record), nil
}

// Decode decodes a record tree (or any subtree) into out, which must be a pointer.
// Input is weakly typed: numeric strings decode into numbers, RFC3339 strings into time.Time
// and duration strings into time.Duration.
func Decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// normalize returns a copy of v in the JSON-like shapes the store walks:
// structs and maps become map[string]any, slices and arrays become []any.
// Leaves (including time.Time and []byte) are returned unchanged.
func normalize(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return normalizeMap(tv)
	case []any:
		s := make([]any, len(tv))
		for i, vv := range tv {
			s[i] = normalize(vv)
		}
		return s
	case time.Time, []byte:
		return tv
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return normalize(rv.Elem().Interface())
		}
		return v
	case reflect.Struct:
		if !hasExportedFields(rv.Type()) {
			return v
		}
		if record, err := FromValue(v); err == nil {
			return record
		}
		return v
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return m
	case reflect.Slice, reflect.Array:
		s := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s[i] = normalize(rv.Index(i).Interface())
		}
		return s
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// --------------------------------------------------------------------------
// Parsing
// --------------------------------------------------------------------------

// ParseJSON decodes a JSON document into a record tree.
func ParseJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseJSONObject decodes a JSON object and additionally returns its top-level keys
// in document order. Go maps are unordered, the order is needed to rebuild
// insertion ordered collections.
func ParseJSONObject(data []byte) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("tree: expected a JSON object, got %v", tok)
	}

	var (
		keys   []string
		values = map[string]any{}
	)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("tree: expected an object key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

// ParseYAML decodes a YAML document into a record tree. Mappings with non string
// keys are converted to string keyed maps.
func ParseYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}
