package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/output"
	"github.com/gorewood/gemini-mcp/internal/setup"
)

// integrationInfo describes an agent environment and the server's status in it.
type integrationInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Installed   bool   `json:"installed"`
	Scope       string `json:"scope,omitempty"`
	Location    string `json:"location,omitempty"`
}

// setupFlags holds the flags of the setup command.
type setupFlags struct {
	list    bool
	project bool
	check   bool
	remove  bool
	dryRun  bool
	command string
}

// executable resolves the binary path written into agent settings.
// Tests replace it.
var executable = os.Executable

// newSetupCmd creates the setup command.
func newSetupCmd() *cobra.Command {
	var flags setupFlags

	cmd := &cobra.Command{
		Use:   "setup [agent]",
		Short: "Register gemini-mcp as an MCP server in an agent environment",
		Long: `Register gemini-mcp as an MCP server in an agent coding environment.

Adds a "gemini" entry to the environment's mcpServers settings that runs
'gemini-mcp serve'. Other settings in the file are left untouched.

Agents: ` + strings.Join(setup.AgentEnvNames(), ", ") + `

Examples:
  gemini-mcp setup --list            # List agents and registration status
  gemini-mcp setup claude            # Register globally
  gemini-mcp setup claude --project  # Register for this project only
  gemini-mcp setup cursor --check    # Check registration
  gemini-mcp setup --check           # Show every agent with gemini-mcp registered
  gemini-mcp setup claude --remove   # Unregister
  gemini-mcp setup claude --dry-run  # Show what would be done`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.list {
				return runSetupList(cmd)
			}
			if len(args) == 0 {
				if flags.check {
					return runSetupCheckAll(cmd)
				}
				return cmd.Help()
			}
			return runSetup(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.list, "list", false, "List agent environments and registration status")
	cmd.Flags().BoolVar(&flags.project, "project", false, "Use the project settings instead of the global ones")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Check registration status without changes")
	cmd.Flags().BoolVar(&flags.remove, "remove", false, "Remove the registration")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without doing it")
	cmd.Flags().StringVar(&flags.command, "command", "", "Command the agent runs (default: this executable)")

	return cmd
}

// runSetup executes check, remove, or install for one agent.
func runSetup(cmd *cobra.Command, name string, flags setupFlags) error {
	printer := newPrinter(cmd)

	env := setup.GetAgentEnv(name)
	if env == nil {
		err := output.NewUserError(fmt.Sprintf("unknown agent %q (available: %s)",
			name, strings.Join(setup.AgentEnvNames(), ", ")))
		printer.Error(err)
		return err
	}

	path, scope, installed, err := env.Check(flags.project)
	if err != nil {
		return fail(printer, err)
	}

	switch {
	case flags.check:
		return runSetupCheck(printer, env, path, scope, installed)
	case flags.remove:
		return runSetupRemove(printer, env, flags, path, scope, installed)
	default:
		return runSetupInstall(printer, env, flags, path, scope, installed)
	}
}

// runSetupCheck reports the registration status.
func runSetupCheck(printer *output.Printer, env setup.AgentEnv, path, scope string, installed bool) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"integration": env.Name(),
			"installed":   installed,
			"location":    path,
			"scope":       scope,
		})
	}

	printer.Section(env.DisplayName() + " Registration")
	printer.KeyValue("Scope", scope)
	printer.KeyValue("Location", path)
	if installed {
		printer.KeyValue("Status", "installed")
	} else {
		printer.KeyValue("Status", "not installed")
	}
	return nil
}

// runSetupCheckAll reports every agent environment that has the server registered.
func runSetupCheckAll(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	detected := setup.DetectedAgentEnvs()
	registered := make([]integrationInfo, 0, len(detected))
	for _, env := range detected {
		location, scope, _ := env.Detect()
		registered = append(registered, integrationInfo{
			Name:        env.Name(),
			DisplayName: env.DisplayName(),
			Installed:   true,
			Scope:       scope,
			Location:    location,
		})
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"registered": registered,
		})
	}

	if len(registered) == 0 {
		printer.Println("gemini-mcp is not registered in any agent environment. Run 'gemini-mcp setup <agent>'.")
		return nil
	}
	printer.Section("Registered In")
	rows := make([][]string, 0, len(registered))
	for _, integ := range registered {
		rows = append(rows, []string{integ.DisplayName, integ.Scope, integ.Location})
	}
	printer.Table([]string{"Agent", "Scope", "Location"}, rows)
	return nil
}

// runSetupRemove removes the server entry.
func runSetupRemove(printer *output.Printer, env setup.AgentEnv, flags setupFlags, path, scope string, installed bool) error {
	if !installed {
		return printer.Success(map[string]any{
			"status":   "skipped",
			"message":  "gemini-mcp is not registered in " + env.DisplayName() + " (" + scope + ")",
			"location": path,
		})
	}

	if flags.dryRun {
		return printer.Success(map[string]any{
			"status":   "dry_run",
			"message":  "Would remove the gemini entry from " + path,
			"location": path,
		})
	}

	if err := env.Remove(flags.project); err != nil {
		return fail(printer, err)
	}
	return printer.Success(map[string]any{
		"status":   "ok",
		"message":  "Removed gemini-mcp from " + env.DisplayName() + " (" + scope + ")",
		"location": path,
	})
}

// runSetupInstall adds or replaces the server entry.
func runSetupInstall(printer *output.Printer, env setup.AgentEnv, flags setupFlags, path, scope string, installed bool) error {
	command := flags.command
	if command == "" {
		exe, err := executable()
		if err != nil {
			return fail(printer, output.NewSystemErrorWithCause("cannot determine the gemini-mcp executable; pass --command", err))
		}
		command = exe
	}
	entry := setup.ServerEntry{Command: command, Args: []string{"serve"}}

	action := "install"
	if installed {
		action = "update"
	}

	if flags.dryRun {
		return printer.Success(map[string]any{
			"status":   "dry_run",
			"action":   action,
			"message":  "Would " + action + " the gemini entry in " + path,
			"location": path,
			"command":  command,
		})
	}

	if _, err := env.Install(flags.project, entry); err != nil {
		return fail(printer, err)
	}
	return printer.Success(map[string]any{
		"status":   "ok",
		"action":   action,
		"message":  "Registered gemini-mcp in " + env.DisplayName() + " (" + scope + "): " + path,
		"location": path,
		"command":  command,
	})
}

// runSetupList lists agent environments and registration status.
func runSetupList(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	envs := setup.AllAgentEnvs()
	integrations := make([]integrationInfo, 0, len(envs))
	for _, env := range envs {
		location, scope, installed := env.Detect()
		integrations = append(integrations, integrationInfo{
			Name:        env.Name(),
			DisplayName: env.DisplayName(),
			Installed:   installed,
			Scope:       scope,
			Location:    location,
		})
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"integrations": integrations,
		})
	}

	printer.Section("Agent Environments")
	headers := []string{"Name", "Agent", "Status", "Scope"}
	rows := make([][]string, 0, len(integrations))
	for _, integ := range integrations {
		status := "not installed"
		if integ.Installed {
			status = "installed"
		}
		scope := "-"
		if integ.Scope != "" {
			scope = integ.Scope
		}
		rows = append(rows, []string{integ.Name, integ.DisplayName, status, scope})
	}
	printer.Table(headers, rows)
	return nil
}
