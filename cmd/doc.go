// Package cmd implements the command-line interface of rKV. It provides a
// hierarchical command structure for running a debug host, operating it as a
// client and working with data files.
//
// The package is organized into several subpackages:
//
//   - devtools: Commands for the time-travel debug host (serve, sessions, history, jump, reset, dispatch, info)
//   - query: Resolves paths in JSON or YAML files through an object or map store
//   - perf: In-process benchmarks of the store operations
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See rkv -help for a list of all commands.
package cmd
