package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"drvaudit/internal/classify"
	"drvaudit/internal/config"
	"drvaudit/internal/output"
	"drvaudit/internal/rank"
	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

// Shared audit flags
var (
	flagInclude    string
	flagExclude    string
	flagFormat     string
	flagOut        string
	flagFailOn     string
	flagRules      string
	flagThreshold  float64
	flagExampleCap int
	flagMinChars   int
	flagNoRedact   bool
	flagNoCache    bool
)

func addAuditFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagInclude, "include", "", "Include file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, info, warning, error)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "Rules pack file path (YAML)")
	cmd.Flags().Float64Var(&flagThreshold, "high-priority-threshold", 0, "Score cutoff for the high-priority section")
	cmd.Flags().IntVar(&flagExampleCap, "example-cap", 0, "Maximum comment examples kept per category")
	cmd.Flags().IntVar(&flagMinChars, "min-comment-chars", 0, "Minimum comment length worth classifying")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the scan result cache")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagThreshold > 0 {
		m["highPriorityThreshold"] = strconv.FormatFloat(flagThreshold, 'f', -1, 64)
	}
	if flagExampleCap > 0 {
		m["exampleCap"] = fmt.Sprintf("%d", flagExampleCap)
	}
	if flagMinChars > 0 {
		m["minCommentChars"] = fmt.Sprintf("%d", flagMinChars)
	}
	if flagInclude != "" {
		m["include"] = flagInclude
	}
	if flagExclude != "" {
		m["exclude"] = flagExclude
	}
	if flagRules != "" {
		m["rulesFile"] = flagRules
	}
	return m
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// buildRankOptions merges the configured urgency and path tables with the
// rules pack on top of the tuned defaults.
func buildRankOptions(cfg config.Config, rules *review.Rules) (rank.Options, error) {
	opts := rank.DefaultOptions()

	urgent, err := cfg.Urgent()
	if err != nil {
		return rank.Options{}, err
	}
	if len(urgent) > 0 {
		opts.Urgent = urgent
	}
	extraUrgent, err := rules.Urgent()
	if err != nil {
		return rank.Options{}, err
	}
	for cat := range extraUrgent {
		opts.Urgent[cat] = true
	}

	if len(cfg.DriverSegments) > 0 {
		opts.DriverSegments = cfg.DriverSegments
	}
	if rules != nil {
		opts.DriverSegments = append(opts.DriverSegments, rules.DriverSegments...)
	}

	return opts, nil
}

// buildClassifier returns the keyword classifier, extended with the rules
// pack's extra keywords when a pack is loaded.
func buildClassifier(rules *review.Rules) (*classify.Classifier, error) {
	extra, err := rules.KeywordsByCategory()
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return classify.New(), nil
	}
	table := make(map[review.Category][]classify.Keyword, len(extra))
	for cat, kws := range extra {
		for _, kw := range kws {
			table[cat] = append(table[cat], classify.Keyword{Text: kw.Text, Weight: kw.Weight})
		}
	}
	return classify.NewWithExtra(table), nil
}

func newReport(inputs report.Inputs, snap report.Snapshot, comments []review.Comment, issues []review.Issue) *report.Report {
	return &report.Report{
		Tool:        "drvaudit",
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Inputs:      inputs,
		Snapshot:    snap,
		Comments:    comments,
		Issues:      issues,
	}
}

// writeAndGate emits the report and applies the fail-on threshold over its
// issues. It sets exitCode rather than returning an error so runtime
// failures and findings map onto distinct codes.
func writeAndGate(rep *report.Report, cfg config.Config) {
	if err := output.WriteReport(rep, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, issue := range rep.Issues {
			if review.MeetsThreshold(issue.Severity, cfg.FailOn) {
				exitCode = ExitFindings
				return
			}
		}
	}
}
