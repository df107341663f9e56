package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drvaudit/internal/config"
	"drvaudit/internal/ingest"
	"drvaudit/internal/redact"
	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

var commentsCmd = &cobra.Command{
	Use:   "comments <export.json>...",
	Short: "Classify exported pull-request review comments",
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

		comments, err := loadComments(args, cfg, rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		snap := report.BuildSnapshot(comments, nil, rankOpts.Score, snapshotOptions(cfg))
		rep := newReport(report.Inputs{CommentFiles: args}, snap, comments, nil)
		writeAndGate(rep, cfg)
		return nil
	},
}

// loadComments reads the comment exports, classifies every substantial
// comment, and scrubs secrets unless redaction is disabled.
func loadComments(paths []string, cfg config.Config, rules *review.Rules) ([]review.Comment, error) {
	classifier, err := buildClassifier(rules)
	if err != nil {
		return nil, err
	}

	var comments []review.Comment
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		batch, err := ingest.ReadComments(f, cfg.MinCommentChars)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("loaded comment export",
			zap.String("path", path),
			zap.Int("comments", len(batch)))
		comments = append(comments, batch...)
	}

	for i := range comments {
		comments[i].Category = classifier.Categorize(comments[i].Text)
	}

	if flagNoRedact {
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	} else if cfg.Privacy.RedactSecrets {
		comments = redact.Comments(comments, cfg.Privacy.RedactPaths)
	}
	return comments, nil
}

func init() {
	addAuditFlags(commentsCmd)
}
