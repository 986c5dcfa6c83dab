// Package output provides structured output handling for the gemini-mcp CLI.
//
// This package handles both human-readable and JSON output formats, supporting
// the agent-friendly design principle that all commands should work well for
// both human users and automated agents.
//
// # Printer
//
// The Printer is the primary interface for command output. It automatically
// handles format switching based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	// For success output
//	printer.Success(map[string]any{"message": "API key stored", "service": service})
//
//	// For error output
//	printer.Error(err)
//
//	// For raw output, such as the Gemini response text
//	printer.Println(result.Output)
//
//	// For non-fatal problems (stderr in both modes)
//	printer.Warn("cannot read %s: %v", path, err)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", "id": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Styling
//
// Human output is styled with lipgloss. --color picks the mode (see
// ParseColorMode and UseColor); auto styles terminals only and honors
// $NO_COLOR:
//
//	printer.styles.Error   // Red, bold
//	printer.styles.Success // Green
//	printer.styles.Warning // Yellow
//	printer.styles.Bold    // Bold
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, invalid option)
//	output.ExitSystemError // 2: System error (Gemini call failed, I/O error)
//	output.ExitAuthError   // 3: Gemini CLI missing or not authenticated
//
// # Error Types
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("no prompt given")
//	output.NewSystemError("Ask failed: quota exceeded")
//	output.NewAuthError("gemini CLI not found", err)
//
// These errors carry exit codes that are used for both JSON error output
// and process exit codes.
package output
