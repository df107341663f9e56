package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drvaudit/internal/config"
	"drvaudit/internal/ingest"
	"drvaudit/internal/lintmap"
	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

var lintCmd = &cobra.Command{
	Use:   "lint <sonar.json>...",
	Short: "Map an exported static-analysis report into the audit taxonomy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		rules, err := review.LoadRules(cfg.RulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		rankOpts, err := buildRankOptions(cfg, rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		issues, err := loadLint(args, cfg, rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		ranked := rankOpts.Rank(issues)
		snap := report.BuildSnapshot(nil, ranked, rankOpts.Score, snapshotOptions(cfg))
		rep := newReport(report.Inputs{LintFiles: args}, snap, nil, ranked)
		writeAndGate(rep, cfg)
		return nil
	},
}

// loadLint reads the linter exports and maps their findings onto the
// taxonomy. Structurally invalid records are reported to stderr and
// skipped; they never abort the run.
func loadLint(paths []string, cfg config.Config, rules *review.Rules) ([]review.Issue, error) {
	var mapper *lintmap.Mapper
	if rules != nil && len(rules.Suggestions) > 0 {
		mapper = lintmap.NewWithSuggestions(rules.Suggestions)
	} else {
		mapper = lintmap.New()
	}

	var issues []review.Issue
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		findings, err := ingest.ReadLintReport(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		mapped, errs := mapper.MapAll(findings)
		for _, mapErr := range errs {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", path, mapErr)
		}
		logger.Debug("mapped linter report",
			zap.String("path", path),
			zap.Int("findings", len(findings)),
			zap.Int("skipped", len(errs)))
		issues = append(issues, mapped...)
	}

	overrides, err := rules.SeverityOverridesByCategory()
	if err != nil {
		return nil, err
	}
	return review.ApplySeverityOverrides(issues, overrides), nil
}

func init() {
	addAuditFlags(lintCmd)
}
