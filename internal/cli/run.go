package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/codelens/internal/assist"
	"github.com/sprite-ai/codelens/internal/client"
	"github.com/sprite-ai/codelens/internal/gateway"
	"github.com/sprite-ai/codelens/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run <operation> [file|-]",
	Short: "Run one operation and print the result (non-interactive)",
	Long: `Run a single operation on a snippet and print the result. Operations are
review, fix, complexity, document and convert. The snippet is read from
the file argument, or from stdin when it is "-" or omitted.

Examples:
  codelens run review main.py --source python
  cat app.js | codelens run convert --source javascript --target go
  codelens run fix broken.go --local --format json`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"review", "fix", "complexity", "document", "convert"},
	RunE:      runOnce,
}

func init() {
	runCmd.Flags().StringP("source", "s", "", "source language")
	runCmd.Flags().StringP("target", "t", "", "target language for convert")
	runCmd.Flags().StringP("format", "f", "text", "output format: text, json")
	runCmd.Flags().Bool("local", false, "call the model in-process instead of the server")
	runCmd.Flags().Bool("mock", false, "with --local, use the offline mock model")
	runCmd.Flags().String("server", "", "server URL (default http://127.0.0.1:6142)")
}

// runner is satisfied by both the HTTP client and the in-process service.
type runner interface {
	Run(ctx context.Context, req model.Request) (model.Result, error)
}

func runOnce(cmd *cobra.Command, args []string) error {
	op, err := model.ParseOperation(args[0])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	code, err := readSnippet(cmd, args[1:])
	if err != nil {
		return err
	}

	req := model.Request{Operation: op, Code: code}
	req.SourceLanguage, _ = cmd.Flags().GetString("source")
	req.TargetLanguage, _ = cmd.Flags().GetString("target")
	if err := req.ValidateLocal(); err != nil {
		return err
	}

	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	res, err := r.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintln(out, strings.TrimRight(res.Text, "\n"))
	return nil
}

func newRunner(cmd *cobra.Command) (runner, error) {
	if local, _ := cmd.Flags().GetBool("local"); !local {
		if cmd.Flags().Changed("server") {
			cfg.ServerURL, _ = cmd.Flags().GetString("server")
		}
		return client.New(cfg.ServerURL, nil), nil
	}

	opts := cfg.GatewayOptions()
	if mock, _ := cmd.Flags().GetBool("mock"); mock {
		opts.Provider = gateway.ProviderMock
	}
	gw, err := gateway.New(opts)
	if err != nil {
		return nil, err
	}
	return assist.New(gw, logger), nil
}

func readSnippet(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading snippet: %w", err)
	}
	return string(data), nil
}
