// Package mcp provides a Model Context Protocol server for gemini-mcp.
// It exposes the assist operations and raw Gemini CLI calls as MCP tools,
// and the running configuration and prompt templates as resources.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gemini-mcp/internal/assist"
	"github.com/gorewood/gemini-mcp/internal/config"
	"github.com/gorewood/gemini-mcp/internal/gemini"
)

const instructions = "Developer tools backed by the Gemini CLI. " +
	"Use gemini_review_code for structured code reviews, gemini_proofread_feature_plan, " +
	"gemini_analyze_bug and gemini_explain_code for prose answers, and gemini_ask for anything else. " +
	"Read gemini://config for the current model and flags."

// NewServer creates an MCP server named by cfg with all tools and resources
// registered against client.
func NewServer(version string, cfg *config.Config, client *gemini.Client) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: version,
	}, &mcp.ServerOptions{Instructions: instructions})

	registerTools(server, assist.NewService(client), client)
	registerResources(server, cfg, client)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// modelAnnotations returns annotations for tools that ask the model.
// Answers vary between calls, so none of them is idempotent.
func modelAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:           title,
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// configAnnotations returns annotations for tools that change server state.
func configAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:           title,
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all gemini-mcp tools to the server.
func registerTools(server *mcp.Server, svc *assist.Service, client *gemini.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "gemini_review_code",
		Description: "Review code with Gemini. Returns a summary, a list of issues, suggestions, and a rating. Rating is N/A when Gemini did not answer in the expected format and Failed when the call failed.",
		Annotations: modelAnnotations("Review code"),
	}, handleReviewCode(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gemini_proofread_feature_plan",
		Description: "Proofread a feature plan with Gemini: gaps, risks, ambiguous requirements, and wording.",
		Annotations: modelAnnotations("Proofread feature plan"),
	}, handleProofreadFeaturePlan(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gemini_analyze_bug",
		Description: "Analyze a bug with Gemini from its description, the relevant code, and error logs. Returns likely causes and fixes.",
		Annotations: modelAnnotations("Analyze bug"),
	}, handleAnalyzeBug(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gemini_explain_code",
		Description: "Explain code with Gemini at a beginner, intermediate, or advanced level.",
		Annotations: modelAnnotations("Explain code"),
	}, handleExplainCode(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gemini_ask",
		Description: "Send a free-form prompt to the Gemini CLI. Files are read from the server's filesystem and passed as context. Options override the server defaults for this call only.",
		Annotations: modelAnnotations("Ask Gemini"),
	}, handleAsk(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gemini_configure",
		Description: "Change the default Gemini CLI options (model, sandbox, debug, all_files, show_memory_usage, yolo, checkpointing) for the rest of the session. Returns the new defaults.",
		Annotations: configAnnotations("Configure Gemini"),
	}, handleConfigure(client))
}
