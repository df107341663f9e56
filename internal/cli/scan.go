package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drvaudit/internal/cache"
	"drvaudit/internal/config"
	"drvaudit/internal/fileset"
	"drvaudit/internal/report"
	"drvaudit/internal/review"
	"drvaudit/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Scan C sources and headers for driver review issues",
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

		issues, scanned, err := scanRoots(args, cfg, rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		ranked := rankOpts.Rank(issues)
		snap := report.BuildSnapshot(nil, ranked, rankOpts.Score, snapshotOptions(cfg))
		rep := newReport(report.Inputs{Roots: args, FilesScanned: scanned}, snap, nil, ranked)
		writeAndGate(rep, cfg)
		return nil
	},
}

// scanRoots walks the roots, scans every selected file (consulting the
// result cache), and returns the issues with the pack's severity overrides
// applied, plus the number of files scanned.
func scanRoots(roots []string, cfg config.Config, rules *review.Rules) ([]review.Issue, int, error) {
	files, err := fileset.Walk(roots, fileset.Options{
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, 0, err
	}

	c, err := cache.New(cfg.Cache.Enabled && !flagNoCache, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, 0, fmt.Errorf("opening cache: %w", err)
	}

	var issues []review.Issue
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("reading %s: %w", path, err)
		}
		content := string(data)

		key := cache.BuildScanKey(version, path, content)
		fileIssues, hit := c.Get(key)
		if !hit {
			fileIssues = scan.Scan(path, content)
			if err := c.Put(key, fileIssues); err != nil {
				logger.Warn("cache write failed", zap.String("path", path), zap.Error(err))
			}
		}
		logger.Debug("scanned file",
			zap.String("path", path),
			zap.Int("issues", len(fileIssues)),
			zap.Bool("cached", hit))
		issues = append(issues, fileIssues...)
	}

	overrides, err := rules.SeverityOverridesByCategory()
	if err != nil {
		return nil, 0, err
	}
	return review.ApplySeverityOverrides(issues, overrides), len(files), nil
}

func snapshotOptions(cfg config.Config) report.Options {
	return report.Options{
		ExampleCap:            cfg.ExampleCap,
		HighPriorityThreshold: cfg.HighPriorityThreshold,
	}
}

func init() {
	addAuditFlags(scanCmd)
}
