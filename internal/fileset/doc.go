// Package fileset walks directory roots for the C sources and headers the
// scanner understands, with glob-based include and exclude filtering.
package fileset
