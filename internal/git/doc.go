// Package git provides the Git operations gemini-mcp needs, via exec.
//
// This package wraps git commands by shelling out to the git executable,
// capturing stdout/stderr and translating failures to *output.ExitError.
//
// # Running Git Commands
//
// For custom git commands, use Run or RunContext:
//
//	output, err := git.Run("status", "--short")
//	output, err := git.RunContext(ctx, "log", "--oneline", "-5")
//
// # Diffs
//
// Diff returns the working tree or staged changes as unified diff text,
// which the review command sends to Gemini:
//
//	if !git.IsRepo() {
//	    return output.NewUserError("not in a git repository")
//	}
//	diff, err := git.Diff(ctx, true)
//
// # Error Handling
//
// All functions return errors wrapped with appropriate exit codes:
//   - ExitUserError (1) for user errors like bad arguments
//   - ExitSystemError (2) for system errors like git not found
package git
