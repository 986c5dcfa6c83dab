package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gemini-mcp/internal/gemini"
)

// AskInput is the input for the gemini_ask tool.
type AskInput struct {
	Prompt      string         `json:"prompt"                 jsonschema:"the prompt to send"`
	System      string         `json:"system,omitempty"       jsonschema:"optional system instruction; when set the prompt is sent in System/Context/User layout"`
	Context     string         `json:"context,omitempty"      jsonschema:"optional context block, used with system"`
	Files       []string       `json:"files,omitempty"        jsonschema:"paths of text files to pass to Gemini on stdin"`
	Options     map[string]any `json:"options,omitempty"      jsonschema:"per-call overrides of model, sandbox, debug, all_files, show_memory_usage, yolo, checkpointing"`
	ExtractJSON bool           `json:"extract_json,omitempty" jsonschema:"return only the first fenced JSON block of the reply when there is one"`
}

func handleAsk(client *gemini.Client) mcp.ToolHandlerFor[AskInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, any, error) {
		if err := required("prompt", input.Prompt); err != nil {
			return nil, nil, err
		}

		opts, err := client.Defaults().Merge(input.Options)
		if err != nil {
			return nil, nil, err
		}

		n := notifierFor(req, "gemini_ask")
		n.Info(ctx, fmt.Sprintf("Calling Gemini (%s) with %d file(s)", opts.Model, len(input.Files)))

		text := input.Prompt
		if input.System != "" {
			text = gemini.BuildPrompt(input.System, input.Prompt, input.Context)
		}

		result, err := client.Invoke(ctx, text, &opts, input.Files)
		if err != nil {
			n.Error(ctx, "Ask failed: "+err.Error())
			return nil, nil, err
		}
		if !result.Success {
			message := "Ask failed: " + result.Error
			n.Error(ctx, message)
			return errorResult(message), nil, nil
		}

		content := result.Content
		if input.ExtractJSON {
			if raw := gemini.ExtractJSON(content); raw != nil {
				content = string(raw)
			}
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: content}},
		}, nil, nil
	}
}

// ConfigureInput is the input for the gemini_configure tool.
type ConfigureInput struct {
	Options map[string]any `json:"options" jsonschema:"fields to change: model (string) or sandbox, debug, all_files, show_memory_usage, yolo, checkpointing (bool)"`
}

func handleConfigure(client *gemini.Client) mcp.ToolHandlerFor[ConfigureInput, gemini.Options] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ConfigureInput) (*mcp.CallToolResult, gemini.Options, error) {
		merged, err := client.UpdateDefaults(input.Options)
		if err != nil {
			return nil, gemini.Options{}, err
		}
		notifierFor(req, "gemini_configure").Info(ctx, "Default model is now "+merged.Model)
		return nil, merged, nil
	}
}
