// Package cli wires together the Cobra command tree for the drvaudit binary.
//
// It defines the root command and all subcommands (scan, comments, lint,
// report, config, cache, hook, version), binds flags, reads configuration,
// runs the audit pipeline, and returns deterministic exit codes for CI
// gating.
package cli
