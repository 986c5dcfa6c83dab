package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/credentials"
	"github.com/gorewood/gemini-mcp/internal/output"
)

// newAuthCmd creates the auth command and its subcommands.
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Gemini API key in the OS keychain",
		Long: `Manage the Gemini API key stored in the OS keychain.

The key is looked up in this order: the GEMINI_API_KEY environment variable,
the credentials file (.env by default), then the keychain. Storing it in the
keychain keeps it out of shell history and MCP client configs.`,
	}
	cmd.AddCommand(newAuthSetKeyCmd(), newAuthClearCmd())
	return cmd
}

func newAuthSetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [key]",
		Short: "Store the API key in the keychain",
		Long: `Store the Gemini API key in the OS keychain.

Pass the key as an argument or, to keep it out of shell history, on
standard input:

  gemini-mcp auth set-key < key.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			key, err := readKey(cmd.InOrStdin(), args)
			if err != nil {
				printer.Error(err)
				return err
			}

			if err := keyringFor(cfg.KeyringService).Store(key); err != nil {
				return fail(printer, output.NewSystemErrorWithCause("storing API key: "+err.Error(), err))
			}
			return printer.Success(map[string]any{
				"message": "API key stored in the keychain (" + cfg.KeyringService + ")",
				"service": cfg.KeyringService,
				"key":     credentials.APIKeyEnvVar,
			})
		},
	}
}

func newAuthClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the API key from the keychain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			if err := keyringFor(cfg.KeyringService).Clear(); err != nil {
				return fail(printer, output.NewSystemErrorWithCause("removing API key: "+err.Error(), err))
			}
			return printer.Success(map[string]any{
				"message": "API key removed from the keychain (" + cfg.KeyringService + ")",
				"service": cfg.KeyringService,
			})
		},
	}
}

// readKey returns the key argument or the first line of in.
func readKey(in io.Reader, args []string) (string, error) {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", output.NewSystemErrorWithCause("reading key from stdin", err)
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", output.NewUserError("no API key given")
	}
	return key, nil
}
