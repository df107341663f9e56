// Package scan runs a fixed battery of per-line heuristic detectors over C
// driver source text.
//
// Each detector owns exactly one taxonomy category and is a stateless
// function over the immutable per-file view; the scanner concatenates
// detector output in a fixed order and stable-sorts by line number only.
// Identical (path, content) input always produces an identical ordered
// issue list; no clock, randomness, or cross-file state is involved, so
// independent files may be scanned concurrently by the caller.
package scan
