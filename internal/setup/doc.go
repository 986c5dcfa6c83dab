// Package setup registers gemini-mcp as an MCP server in agent coding
// environments.
//
// Each supported environment keeps its MCP servers in a JSON file with an
// "mcpServers" object. Installing adds or replaces the "gemini" entry there;
// removing deletes it. Every other key in the file is preserved.
//
//	env := setup.GetAgentEnv("claude")
//	path, err := env.Install(true, setup.ServerEntry{Command: exe, Args: []string{"serve"}})
//	path, scope, installed, err := env.Check(true)
//	err = env.Remove(true)
//
// Command-layer adapters in cmd/gemini-mcp handle flags and output and
// delegate to this package for the file edits.
package setup
