package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/assist"
	"github.com/gorewood/gemini-mcp/internal/config"
	"github.com/gorewood/gemini-mcp/internal/credentials"
	"github.com/gorewood/gemini-mcp/internal/gemini"
	"github.com/gorewood/gemini-mcp/internal/output"
)

// clientOverrides are appended to every client's options. Tests use it to
// replace the Gemini CLI with a fake runner.
var clientOverrides []gemini.ClientOption

// keyringFor returns the keychain store for service. Tests replace it with
// an in-memory keyring.
var keyringFor = credentials.NewKeyring

// configPath returns the --config flag value or the default config path.
func configPath(cmd *cobra.Command) string {
	if flag := cmd.Root().PersistentFlags().Lookup("config"); flag != nil && flag.Value.String() != "" {
		return flag.Value.String()
	}
	return config.DefaultPath()
}

// loadConfig loads the config file selected for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	return cfg, nil
}

// credentialChain returns the API key providers for cfg:
// environment, then the credentials file, then the OS keychain.
func credentialChain(cfg *config.Config) credentials.Chain {
	chain := credentials.Default(cfg.CredentialsFile, "")
	if cfg.KeyringService != "" {
		chain = append(chain, keyringFor(cfg.KeyringService))
	}
	return chain
}

// newClient builds the Gemini client for cfg.
func newClient(cfg *config.Config) *gemini.Client {
	opts := []gemini.ClientOption{
		gemini.WithBinary(cfg.Binary),
		gemini.WithCredentials(credentialChain(cfg)),
	}
	opts = append(opts, clientOverrides...)
	return gemini.NewClient(cfg.Gemini, opts...)
}

// withTimeout bounds ctx by timeout when it is positive.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// cliError maps domain errors to exit-coded errors.
func cliError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var authErr *gemini.AuthError
	if errors.As(err, &authErr) {
		return output.NewAuthError(authErr.Error(), err)
	}

	var vErr *gemini.ValidationError
	if errors.As(err, &vErr) {
		return output.NewUserError(vErr.Error())
	}

	var opErr *assist.OperationError
	if errors.As(err, &opErr) {
		return output.NewSystemErrorWithCause(opErr.Error(), err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return output.NewSystemErrorWithCause("timed out waiting for Gemini", err)
	}

	return output.NewSystemErrorWithCause(err.Error(), err)
}

// fail prints err through printer and returns it as an exit-coded error.
func fail(printer *output.Printer, err error) error {
	err = cliError(err)
	printer.Error(err)
	return err
}

// printerNotifier shows assist progress on stderr.
type printerNotifier struct {
	printer *output.Printer
}

func (n printerNotifier) Info(_ context.Context, message string) {
	n.printer.Stderr("%s\n", message)
}

func (n printerNotifier) Error(_ context.Context, message string) {
	n.printer.Stderr("%s\n", message)
}
