package perf

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/rKV/cmd/util"
	"github.com/ValentinKolb/rKV/lib/devtools"
	"github.com/ValentinKolb/rKV/lib/devtools/host"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/ValentinKolb/rKV/lib/store/mstore"
	"github.com/ValentinKolb/rKV/lib/store/ostore"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// PerfCmd runs the in-process benchmarks
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for rKV stores",
		Args:    cobra.NoArgs,
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfNumThreads  = 10
	perfKeySpread   = 100
	perfDepth       = 5
	perfSubscribers = 10
	perfDevTools    = false
	perfSkip        = make([]string, 0)

	// timers holds the latency distribution of the last run of every benchmark
	timers = metrics.NewRegistry()
)

// benchmark is a named operation. setup prepares a store and returns the operation,
// it is called once per benchmark run.
type benchmark struct {
	name  string
	setup func() func(i int)
}

func init() {
	key := "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	PerfCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "keys"
	PerfCmd.Flags().Int(key, 100, util.WrapString("How many different leaves (or records of the map store) to use for the tests"))
	key = "depth"
	PerfCmd.Flags().Int(key, 5, util.WrapString("Number of segments of the benchmarked paths"))
	key = "subscribers"
	PerfCmd.Flags().Int(key, 10, util.WrapString("Number of subscriptions on the path of the notify benchmark"))
	key = "devtools"
	PerfCmd.Flags().Bool(key, false, util.WrapString("Attach the stores to an in-process debug host"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = max(1, viper.GetInt("threads"))
	perfKeySpread = max(1, viper.GetInt("keys"))
	perfDepth = max(1, viper.GetInt("depth"))
	perfSubscribers = max(0, viper.GetInt("subscribers"))
	perfDevTools = viper.GetBool("devtools")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for rKV stores")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Keys: %d\n", perfKeySpread)
	fmt.Printf("Depth: %d\n", perfDepth)
	fmt.Printf("Subscribers: %d\n", perfSubscribers)
	fmt.Printf("DevTools: %t\n", perfDevTools)
	fmt.Println()

	var ext devtools.Extension
	if perfDevTools {
		e := host.NewExtension(host.NewHost(), 0)
		defer e.Close()
		ext = e
	}

	fmt.Println("starting tests...")

	results := make(map[string]testing.BenchmarkResult)
	for _, bm := range benchmarks(ext) {
		if shouldSkip(bm.name) {
			printResult(bm.name, testing.BenchmarkResult{})
			continue
		}
		results[bm.name] = runBenchmark(bm)
		printResult(bm.name, results[bm.name])
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

func benchmarks(ext devtools.Extension) []benchmark {
	objectStore := func() (store.IStore, func(int) string) {
		opts := store.DefaultOptions()
		opts.InitialData = deepRecord()
		if ext != nil {
			opts.DevTools = ext
			opts.DevToolsName = "perf"
		}
		return ostore.NewObjectStore(opts), leafPaths()
	}

	mapStore := func() (store.IMapStore, func(int) string) {
		id := recordIDs()
		records := make(map[string]any, perfKeySpread)
		for i := 0; i < perfKeySpread; i++ {
			records[id(i)] = deepRecord()
		}
		opts := store.DefaultMapOptions()
		opts.InitialEntries = store.EntriesFromMap(records)
		if ext != nil {
			opts.DevTools = ext
			opts.DevToolsName = "perf-map"
		}
		return mstore.NewMapStore(opts), id
	}

	return []benchmark{
		{name: "get", setup: func() func(int) {
			s, path := objectStore()
			return func(i int) { s.Get(path(i)) }
		}},
		{name: "get-fallback", setup: func() func(int) {
			opts := store.DefaultOptions()
			opts.FallbackData = deepRecord()
			s, path := ostore.NewObjectStore(opts), leafPaths()
			return func(i int) { s.Get(path(i)) }
		}},
		{name: "set", setup: func() func(int) {
			s, path := objectStore()
			return func(i int) { s.Set(path(i), i, false) }
		}},
		{name: "update", setup: func() func(int) {
			s, path := objectStore()
			inc := store.Updater(func(prev any, _ bool) any {
				n, _ := prev.(int)
				return n + 1
			})
			return func(i int) { s.Update(path(i), inc, false) }
		}},
		{name: "notify", setup: func() func(int) {
			s, path := objectStore()
			var fired atomic.Uint64
			for i := 0; i < perfSubscribers; i++ {
				s.Subscribe(path(i), func() { fired.Add(1) })
			}
			return func(i int) { s.Set(path(i), i, true) }
		}},
		{name: "subscribe", setup: func() func(int) {
			s, path := objectStore()
			return func(i int) { s.Subscribe(path(i), func() {})() }
		}},
		{name: "map-get", setup: func() func(int) {
			s, id := mapStore()
			path := innerPath()
			return func(i int) { s.Key(id(i)).Get(path) }
		}},
		{name: "map-update", setup: func() func(int) {
			s, id := mapStore()
			path := innerPath()
			return func(i int) { s.Key(id(i)).Update(path, i, true) }
		}},
	}
}

// runBenchmark runs bm with perfNumThreads goroutines per CPU and records
// the latency of every operation of the final run in a timer
func runBenchmark(bm benchmark) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		op := bm.setup()

		timers.Unregister(bm.name)
		timer := metrics.GetOrRegisterTimer(bm.name, timers)

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				op(counter)
				timer.UpdateSince(start)
				counter++
			}
		})
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	return slices.Contains(perfSkip, test)
}

// innerPath returns the path of the record parents ("n0.n1...") without the leaf
func innerPath() string {
	segments := make([]string, perfDepth-1, perfDepth)
	for i := range segments {
		segments[i] = "n" + strconv.Itoa(i)
	}
	return strings.Join(append(segments, "leaf"), ".")
}

// leafPaths returns a function mapping i to the path of a leaf (with wraparound)
func leafPaths() func(int) string {
	inner := innerPath()
	return spread(func(i int) string { return inner + strconv.Itoa(i) })
}

// recordIDs returns a function mapping i to the identifier of a record (with wraparound)
func recordIDs() func(int) string {
	return spread(func(i int) string { return "r" + strconv.Itoa(i) })
}

func spread(name func(int) string) func(int) string {
	names := make([]string, perfKeySpread)
	for i := range names {
		names[i] = name(i)
	}
	return func(i int) string { return names[i%len(names)] }
}

// deepRecord creates a record of perfDepth nested maps, the innermost map holds the leaves
func deepRecord() map[string]any {
	leaves := make(map[string]any, perfKeySpread+1)
	leaves["leaf"] = 0
	for i := 0; i < perfKeySpread; i++ {
		leaves["leaf"+strconv.Itoa(i)] = i
	}

	record := leaves
	for i := perfDepth - 2; i >= 0; i-- {
		record = map[string]any{"n" + strconv.Itoa(i): record}
	}
	return record
}

// latency returns the timer snapshot of a benchmark, nil if it did not run
func latency(test string) metrics.Timer {
	timer, ok := timers.Get(test).(metrics.Timer)
	if !ok {
		return nil
	}
	return timer.Snapshot()
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	line := fmt.Sprintf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
	if t := latency(test); t != nil {
		ps := t.Percentiles([]float64{0.5, 0.99})
		line += fmt.Sprintf("\tp50 %s\tp99 %s", time.Duration(ps[0]), time.Duration(ps[1]))
	}
	fmt.Println(line)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50Ns", "P99Ns", "MaxNs",
		"Threads", "Keys", "Depth", "Subscribers", "DevTools",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	tests := make([]string, 0, len(results))
	for test := range results {
		tests = append(tests, test)
	}
	slices.Sort(tests)

	// Write test results
	for _, test := range tests {
		result := results[test]
		nsPerOp := math.Max(float64(result.NsPerOp()), 1)
		opsPerSec := 1.0 / (nsPerOp / 1e9)

		var p50, p99, maxNs float64
		if t := latency(test); t != nil {
			ps := t.Percentiles([]float64{0.5, 0.99})
			p50, p99, maxNs = ps[0], ps[1], float64(t.Max())
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%.0f", p50),
			fmt.Sprintf("%.0f", p99),
			fmt.Sprintf("%.0f", maxNs),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfKeySpread),
			strconv.Itoa(perfDepth),
			strconv.Itoa(perfSubscribers),
			strconv.FormatBool(perfDevTools),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", test, err)
		}
	}

	return nil
}
