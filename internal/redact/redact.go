package redact

import (
	"path/filepath"
	"regexp"
	"strings"

	"drvaudit/internal/review"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret shapes. Review
// comments quote code, and quoted code sometimes quotes credentials.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys (long hex/base64 strings after common key patterns)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// AWS secret access keys
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Vendor API keys with an sk- prefix
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// WiFi/broker credentials in driver example configs
	regexp.MustCompile(`(?i)(wifi[_-]?pass|ssid[_-]?pass|mqtt[_-]?pass)\w*\s*[:=]\s*["']?([^\s"']{6,})["']?`),
	// Generic long hex strings that look like secrets (32+ chars in an assignment)
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllStringFunc(result, func(match string) string {
			return placeholder
		})
	}
	return result
}

// ShouldRedactPath checks if a file path matches any of the redaction path patterns.
func ShouldRedactPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		// Also try matching just the filename for patterns like "**/.env"
		cleanPattern := strings.TrimPrefix(pattern, "**/")
		if cleanPattern != pattern {
			base := filepath.Base(path)
			matched, err = filepath.Match(cleanPattern, base)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Comments returns a copy of comments with scrubbed bodies. A comment
// anchored to a path matching redactPaths has its whole body replaced;
// everything else gets secret scrubbing only. The input is not modified.
func Comments(comments []review.Comment, redactPaths []string) []review.Comment {
	out := make([]review.Comment, len(comments))
	copy(out, comments)
	for i := range out {
		if out[i].Source.Path != "" && ShouldRedactPath(out[i].Source.Path, redactPaths) {
			out[i].Text = placeholder + " (comment redacted by path policy)"
			continue
		}
		out[i].Text = Secrets(out[i].Text)
	}
	return out
}
