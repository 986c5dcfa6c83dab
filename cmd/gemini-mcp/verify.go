package main

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/output"
)

// verifyResult is the JSON output of the verify command.
type verifyResult struct {
	Status           string `json:"status"`
	Binary           string `json:"binary"`
	Model            string `json:"model"`
	CredentialSource string `json:"credential_source"`
}

// newVerifyCmd creates the verify command.
func newVerifyCmd() *cobra.Command {
	var timeoutFlag time.Duration
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the Gemini CLI is installed and can authenticate",
		Long: `Check that the Gemini CLI is installed and can answer a trivial prompt.

Also reports where the API key was found: the environment, the credentials
file, the OS keychain, or nowhere (the Gemini CLI may have its own login).

Exit code 3 means the CLI is missing or cannot authenticate.

Examples:
  gemini-mcp verify
  gemini-mcp verify --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, timeoutFlag)
		},
	}
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", time.Minute, "Give up after this long (0 for no limit)")
	return cmd
}

func runVerify(cmd *cobra.Command, timeout time.Duration) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	client := newClient(cfg)

	ctx, cancel := withTimeout(cmd.Context(), timeout)
	defer cancel()

	_, source := credentialChain(cfg).Resolve(ctx)
	if source == "" {
		source = "none"
	}

	// The spinner only runs for humans watching a terminal.
	var spinner *pterm.SpinnerPrinter
	if !printer.IsJSON() && output.IsTTY(cmd.ErrOrStderr()) {
		spinner, _ = pterm.DefaultSpinner.
			WithWriter(cmd.ErrOrStderr()).
			WithRemoveWhenDone(true).
			Start("Checking " + client.Binary() + "...")
	}
	err = client.Verify(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return fail(printer, err)
	}

	result := verifyResult{
		Status:           "ok",
		Binary:           client.Binary(),
		Model:            client.Defaults().Model,
		CredentialSource: source,
	}
	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	if err := printer.Success(map[string]any{"message": "Gemini CLI is ready"}); err != nil {
		return err
	}
	printer.KeyValue("Binary", result.Binary)
	printer.KeyValue("Model", result.Model)
	printer.KeyValue("API key", result.CredentialSource)
	return nil
}
