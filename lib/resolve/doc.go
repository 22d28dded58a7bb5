// Package resolve turns dot-delimited path strings into cached structural
// metadata and cached container references.
//
// Resolution happens in two steps:
//   - PathResolver decomposes a path into its segments, parent keys, parent
//     paths and current key (PathInfo). The decomposition is pure and cached
//     per path string. Every fresh decomposition registers the path with each
//     of its parent paths in the DependencyGraph.
//   - PropertyResolver walks the parent keys from the live, fallback and
//     initial roots and caches the containers holding the addressed value
//     (PropertyInfo). Entries are dropped explicitly via Invalidate (a path and
//     everything ever resolved through it) or Flush (everything).
//
// Two path modes exist. In ObjectMode every segment addresses the record
// itself. In KeyedMode the first segment names an entry of a collection and the
// remaining segments address the entry's record.
package resolve
