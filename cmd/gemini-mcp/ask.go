package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/gemini"
	"github.com/gorewood/gemini-mcp/internal/output"
)

// askFlags holds the flags of the ask command.
type askFlags struct {
	files       []string
	system      string
	context     string
	extractJSON bool
	timeout     time.Duration
}

// newAskCmd creates the ask command.
func newAskCmd() *cobra.Command {
	var flags askFlags
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a prompt to the Gemini CLI",
		Long: `Send a prompt to the Gemini CLI and print the reply.

The prompt is the joined arguments, or standard input when no arguments are
given or the only argument is "-". Files passed with --file are sent to
Gemini on its standard input, each under a "--- <path> ---" header.

With --system the prompt is laid out as System/Context/User sections.

Examples:
  gemini-mcp ask "What does a goroutine leak look like?"
  gemini-mcp ask -f main.go -f main_test.go "Are these tests enough?"
  gemini-mcp ask --model gemini-2.5-flash --sandbox "Summarize this repo"
  git log -5 | gemini-mcp ask
  gemini-mcp ask --system "Reply in JSON" --extract-json "List three colors"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, args, flags)
		},
	}
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil, "File to include as context (repeatable)")
	cmd.Flags().StringVar(&flags.system, "system", "", "System instruction")
	cmd.Flags().StringVar(&flags.context, "context", "", "Context block (used with --system)")
	cmd.Flags().BoolVar(&flags.extractJSON, "extract-json", false, "Print only the first fenced JSON block of the reply, if any")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Give up after this long (0 for no limit)")
	addOptionFlags(cmd)
	return cmd
}

func runAsk(cmd *cobra.Command, args []string, flags askFlags) error {
	printer := newPrinter(cmd)

	prompt, err := readPrompt(cmd.InOrStdin(), args)
	if err != nil {
		printer.Error(err)
		return err
	}

	// Unreadable files still reach Gemini as an (Error: ...) section.
	for _, path := range flags.files {
		if _, err := os.Stat(path); err != nil {
			printer.Warn("cannot read %s: %v", path, err)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	client := newClient(cfg)

	overrides, err := optionOverrides(cmd)
	if err != nil {
		return fail(printer, err)
	}
	opts, err := client.Defaults().Merge(overrides)
	if err != nil {
		return fail(printer, err)
	}

	if flags.system != "" {
		prompt = gemini.BuildPrompt(flags.system, prompt, flags.context)
	}

	ctx, cancel := withTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	result, err := client.Invoke(ctx, prompt, &opts, flags.files)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		if writeErr := printer.WriteJSON(askOutput(result, flags.extractJSON)); writeErr != nil {
			return writeErr
		}
		if !result.Success {
			return output.NewSystemError("Ask failed: " + result.Error)
		}
		return nil
	}

	if !result.Success {
		return fail(printer, output.NewSystemError("Ask failed: "+result.Error))
	}

	content := result.Content
	if flags.extractJSON {
		if raw := gemini.ExtractJSON(content); raw != nil {
			content = strings.TrimSpace(string(raw))
		}
	}
	printer.Println(content)
	return nil
}

// askOutput adds the extracted JSON payload to the result for --json output.
func askOutput(result *gemini.Result, extract bool) map[string]any {
	data := map[string]any{
		"content":      result.Content,
		"success":      result.Success,
		"input_prompt": result.Prompt,
		"metadata":     result.Metadata,
	}
	if result.Error != "" {
		data["error"] = result.Error
	}
	if extract {
		if raw := gemini.ExtractJSON(result.Content); raw != nil {
			data["json"] = raw
		}
	}
	return data
}

// readPrompt joins args, or reads in when there are none or args is just "-".
func readPrompt(in io.Reader, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", output.NewSystemErrorWithCause("reading prompt from stdin", err)
		}
		prompt := strings.TrimSpace(string(data))
		if prompt == "" {
			return "", output.NewUserError("no prompt given: pass it as an argument or on stdin")
		}
		return prompt, nil
	}

	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return "", output.NewUserError("prompt is empty")
	}
	return prompt, nil
}
