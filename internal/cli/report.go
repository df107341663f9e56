package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"drvaudit/internal/config"
	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

var (
	flagReportRoots    string
	flagReportComments string
	flagReportLint     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full audit: scan, comments, and lint combined",
	Long:  "Run the code scan, comment classification, and linter mapping together and emit a single merged report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := splitComma(flagReportRoots)
		commentFiles := splitComma(flagReportComments)
		lintFiles := splitComma(flagReportLint)
		if len(roots) == 0 && len(commentFiles) == 0 && len(lintFiles) == 0 {
			return fmt.Errorf("nothing to audit: pass --roots, --comments, or --lint")
		}

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

		var issues []review.Issue
		var scanned int
		if len(roots) > 0 {
			issues, scanned, err = scanRoots(roots, cfg, rules)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
		}

		var comments []review.Comment
		if len(commentFiles) > 0 {
			comments, err = loadComments(commentFiles, cfg, rules)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
		}

		if len(lintFiles) > 0 {
			lintIssues, err := loadLint(lintFiles, cfg, rules)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			issues = append(issues, lintIssues...)
		}

		ranked := rankOpts.Rank(issues)
		snap := report.BuildSnapshot(comments, ranked, rankOpts.Score, snapshotOptions(cfg))
		rep := newReport(report.Inputs{
			Roots:        roots,
			CommentFiles: commentFiles,
			LintFiles:    lintFiles,
			FilesScanned: scanned,
		}, snap, comments, ranked)
		writeAndGate(rep, cfg)
		return nil
	},
}

func init() {
	addAuditFlags(reportCmd)
	reportCmd.Flags().StringVar(&flagReportRoots, "roots", "", "Source roots to scan (comma-separated)")
	reportCmd.Flags().StringVar(&flagReportComments, "comments", "", "Comment export files (comma-separated)")
	reportCmd.Flags().StringVar(&flagReportLint, "lint", "", "Linter report files (comma-separated)")
}
