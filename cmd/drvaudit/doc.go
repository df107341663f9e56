// Drvaudit is a local-first CLI for auditing embedded C driver code reviews.
//
// It scans C sources and headers with a deterministic pattern battery,
// classifies exported pull-request review comments into a shared taxonomy,
// maps static-analysis reports onto the same taxonomy, and ranks everything
// into one prioritized report with deterministic exit codes suitable for CI
// gating and git hooks.
//
// Usage:
//
//	drvaudit scan drivers/              # scan sources and headers
//	drvaudit comments export.json       # classify review comments
//	drvaudit lint sonar.json            # map a linter report
//	drvaudit report --roots drivers/ --comments export.json --lint sonar.json
//
// See https://github.com/drvaudit/drvaudit for full documentation.
package main
