// Package cli wires the codelens commands.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sprite-ai/codelens/internal/config"
	"github.com/sprite-ai/codelens/internal/logging"
)

// Loaded by the root command before any subcommand runs.
var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "codelens",
	Short: "AI-assisted code review, fixing, analysis, documentation and conversion",
	Long: `codelens sends a code snippet to a hosted language model and shows the
result. Run "codelens serve" to start the API server, then "codelens ui"
for the interactive client or "codelens run" for one-shot requests.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.codelens/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	// The TUI owns the terminal, so it only logs to a file.
	if cmd == uiCmd {
		logger, err = logging.NewFile(cfg.LogFile, verbose)
	} else {
		logger, err = logging.New(verbose)
	}
	return err
}
