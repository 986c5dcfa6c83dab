package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gemini-mcp/internal/config"
	"github.com/gorewood/gemini-mcp/internal/gemini"
	"github.com/gorewood/gemini-mcp/internal/prompt"
)

// Resource URIs.
const (
	ConfigURI    = "gemini://config"
	TemplatesURI = "gemini://templates"
)

func registerResources(server *mcp.Server, cfg *config.Config, client *gemini.Client) {
	server.AddResource(&mcp.Resource{
		URI:         ConfigURI,
		Name:        "config",
		Description: "Server name and the current default Gemini CLI options.",
		MIMEType:    "application/json",
	}, handleConfigResource(cfg, client))

	server.AddResource(&mcp.Resource{
		URI:         TemplatesURI,
		Name:        "templates",
		Description: "Prompt templates by name, with their description and where each was loaded from.",
		MIMEType:    "application/json",
	}, handleTemplatesResource())
}

func handleConfigResource(cfg *config.Config, client *gemini.Client) mcp.ResourceHandler {
	return func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(ConfigURI, cfg.Snapshot(client.Defaults()))
	}
}

func handleTemplatesResource() mcp.ResourceHandler {
	return func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		catalog, err := prompt.Catalog()
		if err != nil {
			return nil, fmt.Errorf("listing templates: %w", err)
		}
		return jsonResource(TemplatesURI, catalog)
	}
}

func jsonResource(uri string, value any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
