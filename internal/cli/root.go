package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

// Exit codes are part of the CI contract.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var flagVerbose bool

// logger is Nop unless --verbose is set. Commands use it for per-file
// progress and skip diagnostics; user-facing results go to stdout.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "drvaudit",
	Short: "Driver code review audit CLI",
	Long:  "Drvaudit scans embedded C driver sources, classifies review comments, and maps linter reports into one prioritized audit.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			l, err := zap.NewDevelopment()
			if err == nil {
				logger = l
			}
		}
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable progress logging to stderr")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print drvaudit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "drvaudit version %s\n", version)
	},
}
