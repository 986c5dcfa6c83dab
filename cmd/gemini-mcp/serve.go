package main

import (
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/logging"
	geminimcp "github.com/gorewood/gemini-mcp/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var verifyFlag bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gemini-mcp as a Model Context Protocol (MCP) server over stdio.

This exposes Gemini-backed developer tools to any MCP-capable agent
environment (Claude Desktop, Cursor, Windsurf, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gemini": {
        "command": "gemini-mcp",
        "args": ["serve"]
      }
    }
  }

Available tools: gemini_review_code, gemini_proofread_feature_plan,
gemini_analyze_bug, gemini_explain_code, gemini_ask, gemini_configure
Resources: gemini://config, gemini://templates

The Gemini CLI is verified on the first tool call. Use --verify to check
it at startup instead and exit if it is missing or cannot authenticate.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, verifyFlag)
		},
	}
	cmd.Flags().BoolVar(&verifyFlag, "verify", false, "Verify the Gemini CLI before serving")
	return cmd
}

// runServe starts the server. Stdout carries the protocol, so diagnostics
// go to the process log on stderr.
func runServe(cmd *cobra.Command, verify bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	if verify {
		if err := client.Verify(cmd.Context()); err != nil {
			log.Printf("ERROR: %s", logging.Mask(err.Error()))
			return cliError(err)
		}
	}

	log.Printf("%s %s serving over stdio (binary %s, model %s)",
		cfg.Name, buildVersion(), client.Binary(), client.Defaults().Model)

	server := geminimcp.NewServer(buildVersion(), cfg, client)
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return cliError(err)
	}
	return nil
}
