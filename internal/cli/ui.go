package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sprite-ai/codelens/internal/client"
	"github.com/sprite-ai/codelens/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive client",
	Long: `Open a terminal UI with an editor for the snippet and one action per
operation. Requests go to the server at server_url (CODELENS_SERVER_URL).

Examples:
  codelens ui
  codelens ui --file main.py --source python
  codelens ui --server http://10.0.0.5:6142`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	uiCmd.Flags().StringP("file", "f", "", "load the snippet from a file")
	uiCmd.Flags().StringP("source", "s", "", "source language")
	uiCmd.Flags().StringP("target", "t", "", "target language for convert")
	uiCmd.Flags().String("server", "", "server URL (default http://127.0.0.1:6142)")
	uiCmd.Flags().String("style", "dark", "markdown style: dark, light, notty, dracula")
}

func runUI(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("server") {
		cfg.ServerURL, _ = cmd.Flags().GetString("server")
	}

	opts := tui.Options{}
	opts.SourceLanguage, _ = cmd.Flags().GetString("source")
	opts.TargetLanguage, _ = cmd.Flags().GetString("target")
	opts.MarkdownStyle, _ = cmd.Flags().GetString("style")

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading snippet: %w", err)
		}
		opts.Code = string(data)
	}

	c := client.New(cfg.ServerURL, nil)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()
	if provider, err := c.Health(ctx); err != nil {
		logger.Warn("server not reachable", zap.String("url", cfg.ServerURL), zap.Error(err))
	} else {
		logger.Info("connected", zap.String("url", cfg.ServerURL), zap.String("provider", provider))
	}

	return tui.Run(c, opts)
}
