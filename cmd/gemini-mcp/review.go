package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/assist"
	"github.com/gorewood/gemini-mcp/internal/git"
	"github.com/gorewood/gemini-mcp/internal/output"
)

// reviewFlags holds the flags of the review command.
type reviewFlags struct {
	diff     bool
	staged   bool
	language string
	focus    string
	timeout  time.Duration
}

// newReviewCmd creates the review command.
func newReviewCmd() *cobra.Command {
	var flags reviewFlags
	cmd := &cobra.Command{
		Use:   "review [file]",
		Short: "Review a file or your uncommitted changes with Gemini",
		Long: `Review code with Gemini and print a summary, issues, suggestions, and a rating.

The code comes from a file, from standard input when the file is "-", or
from 'git diff' with --diff (add --staged for the index). The language is
guessed from the file extension unless --language is given.

Examples:
  gemini-mcp review internal/server.go
  gemini-mcp review --focus security handler.py
  gemini-mcp review --diff --staged
  gemini-mcp review --diff --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, args, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "Review the output of git diff instead of a file")
	cmd.Flags().BoolVar(&flags.staged, "staged", false, "With --diff, review staged changes")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "Language of the code (default: guessed from the file name)")
	cmd.Flags().StringVar(&flags.focus, "focus", assist.DefaultFocus, "Review focus, e.g. security, performance, readability")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Give up after this long (0 for no limit)")
	return cmd
}

func runReview(cmd *cobra.Command, args []string, flags reviewFlags) error {
	printer := newPrinter(cmd)

	ctx, cancel := withTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	req, err := reviewRequest(ctx, cmd, args, flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	svc := assist.NewService(newClient(cfg))

	resp, err := svc.ReviewCode(ctx, printerNotifier{printer: printer}, req)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(resp); err != nil {
			return err
		}
	} else {
		printReview(printer, resp)
	}

	if resp.Rating == "Failed" {
		return output.NewSystemError(resp.Summary)
	}
	return nil
}

// reviewRequest collects the code to review from git, stdin, or a file.
// ctx bounds the git call so --timeout covers collecting the diff too.
func reviewRequest(ctx context.Context, cmd *cobra.Command, args []string, flags reviewFlags) (assist.CodeReviewRequest, error) {
	req := assist.CodeReviewRequest{Language: flags.language, Focus: flags.focus}

	switch {
	case flags.diff:
		if len(args) > 0 {
			return req, output.NewUserError("--diff does not take a file argument")
		}
		if !git.IsRepo() {
			return req, output.NewUserError("--diff requires a git repository")
		}
		diff, err := git.Diff(ctx, flags.staged)
		if err != nil {
			return req, err
		}
		if diff == "" {
			return req, output.NewUserError("no changes to review")
		}
		req.Code = diff
		if req.Language == "" {
			req.Language = "diff"
		}

	case len(args) == 0:
		return req, output.NewUserError("specify a file to review, \"-\" for stdin, or --diff")

	case args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return req, output.NewSystemErrorWithCause("reading stdin", err)
		}
		req.Code = string(data)

	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return req, output.NewUserError(fmt.Sprintf("cannot read %s: %v", args[0], err))
		}
		req.Code = string(data)
		if req.Language == "" {
			req.Language = languageFor(args[0])
		}
	}

	if strings.TrimSpace(req.Code) == "" {
		return req, output.NewUserError("nothing to review: the input is empty")
	}
	return req, nil
}

// printReview renders a review for humans.
func printReview(printer *output.Printer, resp *assist.CodeReviewResponse) {
	printer.Section("Summary")
	printer.Println(resp.Summary)

	if len(resp.Issues) > 0 {
		printer.Section("Issues")
		items := make([]string, 0, len(resp.Issues))
		for _, issue := range resp.Issues {
			items = append(items, formatIssue(issue))
		}
		printer.List(items)
	}

	if len(resp.Suggestions) > 0 {
		printer.Section("Suggestions")
		printer.List(resp.Suggestions)
	}

	printer.Println()
	printer.KeyValue("Rating", resp.Rating)
}

// formatIssue renders one issue object as "[severity] line N: description (fix: ...)".
// Issues are free-form JSON, so every field is optional.
func formatIssue(issue map[string]any) string {
	var b strings.Builder
	if severity, ok := issue["severity"].(string); ok && severity != "" {
		fmt.Fprintf(&b, "[%s] ", severity)
	}
	if line, ok := issue["line"].(float64); ok && line > 0 {
		fmt.Fprintf(&b, "line %d: ", int(line))
	}
	if description, ok := issue["description"].(string); ok {
		b.WriteString(description)
	} else {
		fmt.Fprint(&b, issue)
	}
	if suggestion, ok := issue["suggestion"].(string); ok && suggestion != "" {
		fmt.Fprintf(&b, " (fix: %s)", suggestion)
	}
	return b.String()
}

// languageByExt maps file extensions to the language names used in prompts.
var languageByExt = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".rb":    "ruby",
	".php":   "php",
	".c":     "c",
	".h":     "c",
	".cc":    "c++",
	".cpp":   "c++",
	".hpp":   "c++",
	".cs":    "c#",
	".swift": "swift",
	".sh":    "shell",
	".sql":   "sql",
	".yaml":  "yaml",
	".yml":   "yaml",
}

// languageFor guesses the language of path from its extension, or "".
func languageFor(path string) string {
	return languageByExt[strings.ToLower(filepath.Ext(path))]
}
