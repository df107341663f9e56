// Package review defines the shared data model for driver review findings.
//
// It holds the closed category taxonomy (an ordered enumeration whose
// declaration order is the tie-break order used throughout the pipeline),
// the three-level severity scale with its priority ranks, and the Issue and
// Comment value types produced by the scanner, the linter mapper, and the
// comment classifier.
package review
