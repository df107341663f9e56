// Package config loads and merges drvaudit configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (DRVAUDIT_FORMAT, DRVAUDIT_FAIL_ON, etc.)
//  3. Config file ($XDG_CONFIG_HOME/drvaudit/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write one back, and
// [SetField] to update a single key.
package config
