package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"drvaudit/internal/review"
)

// Config represents the drvaudit configuration.
type Config struct {
	Format                string        `json:"format"`
	FailOn                string        `json:"failOn"`
	HighPriorityThreshold float64       `json:"highPriorityThreshold"`
	ExampleCap            int           `json:"exampleCap"`
	MinCommentChars       int           `json:"minCommentChars"`
	Include               []string      `json:"include"`
	Exclude               []string      `json:"exclude"`
	DriverSegments        []string      `json:"driverSegments"`
	UrgentCategories      []string      `json:"urgentCategories"`
	RulesFile             string        `json:"rulesFile,omitempty"`
	Cache                 CacheConfig   `json:"cache"`
	Privacy               PrivacyConfig `json:"privacy"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:                "text",
		FailOn:                "error",
		HighPriorityThreshold: 3.5,
		ExampleCap:            10,
		MinCommentChars:       10,
		Include:               []string{"**/*.c", "**/*.h"},
		Exclude:               []string{"build/**", "**/*.gen.c"},
		DriverSegments:        []string{"drivers"},
		UrgentCategories:      []string{"security", "error_handling"},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// Urgent resolves the configured urgent category slugs into a lookup set.
func (c Config) Urgent() (map[review.Category]bool, error) {
	urgent := make(map[review.Category]bool, len(c.UrgentCategories))
	for _, slug := range c.UrgentCategories {
		cat, err := review.ParseCategory(slug)
		if err != nil {
			return nil, fmt.Errorf("urgentCategories: %w", err)
		}
		urgent[cat] = true
	}
	return urgent, nil
}

// ConfigDir returns the platform-appropriate config directory for drvaudit.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "drvaudit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "drvaudit"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "drvaudit"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "drvaudit"), nil
	default:
		return filepath.Join(home, ".config", "drvaudit"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if src.HighPriorityThreshold > 0 {
		dst.HighPriorityThreshold = src.HighPriorityThreshold
	}
	if src.ExampleCap > 0 {
		dst.ExampleCap = src.ExampleCap
	}
	if src.MinCommentChars > 0 {
		dst.MinCommentChars = src.MinCommentChars
	}
	if len(src.Include) > 0 {
		dst.Include = src.Include
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if len(src.DriverSegments) > 0 {
		dst.DriverSegments = src.DriverSegments
	}
	if len(src.UrgentCategories) > 0 {
		dst.UrgentCategories = src.UrgentCategories
	}
	if src.RulesFile != "" {
		dst.RulesFile = src.RulesFile
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	// Bool fields from file: only override if the file explicitly set them.
	// Since JSON zero value for bool is false, we can't distinguish unset from
	// false in a simple merge. We trust the file value if the whole struct was
	// loaded.
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("DRVAUDIT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("DRVAUDIT_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
	if v := os.Getenv("DRVAUDIT_HIGH_PRIORITY_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("DRVAUDIT_HIGH_PRIORITY_THRESHOLD must be a number: %w", err)
		}
		cfg.HighPriorityThreshold = f
	}
	if v := os.Getenv("DRVAUDIT_EXAMPLE_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DRVAUDIT_EXAMPLE_CAP must be an integer: %w", err)
		}
		cfg.ExampleCap = n
	}
	if v := os.Getenv("DRVAUDIT_MIN_COMMENT_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DRVAUDIT_MIN_COMMENT_CHARS must be an integer: %w", err)
		}
		cfg.MinCommentChars = n
	}
	if v := os.Getenv("DRVAUDIT_RULES_FILE"); v != "" {
		cfg.RulesFile = v
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["failOn"]; ok && v != "" {
		cfg.FailOn = v
	}
	if v, ok := overrides["highPriorityThreshold"]; ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HighPriorityThreshold = f
		}
	}
	if v, ok := overrides["exampleCap"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ExampleCap = n
		}
	}
	if v, ok := overrides["minCommentChars"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinCommentChars = n
		}
	}
	if v, ok := overrides["include"]; ok && v != "" {
		cfg.Include = splitCSV(v)
	}
	if v, ok := overrides["exclude"]; ok && v != "" {
		cfg.Exclude = splitCSV(v)
	}
	if v, ok := overrides["rulesFile"]; ok && v != "" {
		cfg.RulesFile = v
	}
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "highPriorityThreshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("highPriorityThreshold must be a number: %w", err)
		}
		cfg.HighPriorityThreshold = f
	case "exampleCap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("exampleCap must be an integer: %w", err)
		}
		cfg.ExampleCap = n
	case "minCommentChars":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("minCommentChars must be an integer: %w", err)
		}
		cfg.MinCommentChars = n
	case "rulesFile":
		cfg.RulesFile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
