// Package util provides small building blocks shared by the debug host and
// the RPC layer.
//
// The package contains:
//   - functions: seed generation and a seeded FNV-1a string hash used to derive session ids
//   - queue: a lock-free multi-producer single-consumer queue that is drained by polling
//   - histogram: a SizeHistogram tracking the distribution of serialized state sizes
package util
