package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/config"
	"github.com/gorewood/gemini-mcp/internal/gemini"
	"github.com/gorewood/gemini-mcp/internal/output"
	"github.com/gorewood/gemini-mcp/internal/prompt"
)

// newConfigCmd creates the config command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the gemini-mcp configuration",
		Long: `Show or change the gemini-mcp configuration.

The configuration lives in config.yaml in the config directory
($GEMINI_MCP_CONFIG_HOME, $XDG_CONFIG_HOME/gemini-mcp, or ~/.config/gemini-mcp).
GEMINI_MCP_MODEL overrides the configured model.`,
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigTemplatesCmd(), newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"path":             configPath(cmd),
					"name":             cfg.Name,
					"binary":           cfg.Binary,
					"credentials_file": cfg.CredentialsFile,
					"keyring_service":  cfg.KeyringService,
					"gemini_options":   cfg.Gemini,
				})
			}

			printer.KeyValue("Config file", configPath(cmd))
			printer.KeyValue("Name", cfg.Name)
			printer.KeyValue("Binary", cfg.Binary)
			printer.KeyValue("Credentials file", cfg.CredentialsFile)
			printer.KeyValue("Keyring service", cfg.KeyringService)
			printer.Section("Gemini options")
			fields := cfg.Gemini.Fields()
			for _, field := range gemini.FieldNames() {
				printer.KeyValue(field, fmt.Sprint(fields[field]))
			}
			return nil
		},
	}
}

func newConfigTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List prompt templates and where each comes from",
		Long: `List prompt templates and where each comes from.

Templates are looked up in .gemini-mcp/templates (project), then
<config dir>/templates (global), then the built-in set. A project or
global file named <template>.md replaces the built-in template.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			infos, err := prompt.ListTemplates()
			if err != nil {
				return fail(printer, err)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(infos)
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				source := info.Source
				if info.Overrides != "" {
					source += " (overridden by " + info.Overrides + ")"
				}
				rows = append(rows, []string{info.Name, source, info.Description})
			}
			printer.Table([]string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value...",
		Short: "Change configuration values",
		Long: `Change configuration values and save them to the config file.

Keys are the Gemini options (model, sandbox, debug, all_files,
show_memory_usage, yolo, checkpointing) and the settings name, binary,
credentials_file, and keyring_service.

Examples:
  gemini-mcp config set model=gemini-2.5-flash
  gemini-mcp config set sandbox=true checkpointing=true`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			path := configPath(cmd)
			if path == "" {
				return fail(printer, output.NewSystemError("cannot determine the config directory; pass --config"))
			}

			// The file as written, without $GEMINI_MCP_MODEL, so a transient
			// override is never persisted.
			cfg, err := config.Read(path)
			if err != nil {
				return fail(printer, output.NewUserError(err.Error()))
			}
			if err := applySettings(cfg, args); err != nil {
				return fail(printer, err)
			}
			if err := cfg.Save(path); err != nil {
				return fail(printer, err)
			}

			return printer.Success(map[string]any{
				"message": "Saved " + path,
				"path":    path,
			})
		},
	}
}

// applySettings applies key=value pairs to cfg. Gemini options go through
// Merge so they are validated like MCP overrides.
func applySettings(cfg *config.Config, pairs []string) error {
	overrides := make(map[string]any)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return output.NewUserError(fmt.Sprintf("invalid setting %q: use key=value", pair))
		}

		switch key {
		case "name":
			cfg.Name = value
		case "binary":
			cfg.Binary = value
		case "credentials_file":
			cfg.CredentialsFile = value
		case "keyring_service":
			cfg.KeyringService = value
		default:
			parsed, err := gemini.ParseValue(key, value)
			if err != nil {
				return err
			}
			overrides[key] = parsed
		}
	}

	merged, err := cfg.Gemini.Merge(overrides)
	if err != nil {
		return err
	}
	cfg.Gemini = merged
	if err := cfg.Validate(); err != nil {
		return output.NewUserError(err.Error())
	}
	return nil
}
