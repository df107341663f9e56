// Package report aggregates classified comments and ranked issues into a
// single serializable report: per-category tallies and percentages, bounded
// example lists, severity counts, and the high-priority prefix of the ranked
// issue list.
package report
