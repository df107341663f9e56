// Package cache provides a file-based cache for per-file scan results.
//
// Entries are keyed by a SHA-256 hash of the scanner version, the file
// path, and the file content. Each entry stores the issues found along with
// a creation timestamp and a TTL (in seconds). Expired entries are skipped
// on read and removed during cache-clear operations.
//
// The default cache directory is $XDG_CACHE_HOME/drvaudit (or the
// OS-appropriate equivalent).
package cache
