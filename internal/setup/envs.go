package setup

import (
	"os"
	"path/filepath"

	"github.com/gorewood/gemini-mcp/internal/output"
)

// jsonEnv is an agent environment whose MCP servers live in "mcpServers"
// of a JSON file, at a path relative to the project or the home directory.
type jsonEnv struct {
	name        string
	displayName string
	projectFile string // relative to the working directory
	globalFile  string // relative to the home directory
}

func init() {
	RegisterAgentEnv(&jsonEnv{
		name:        "claude",
		displayName: "Claude Code",
		projectFile: ".mcp.json",
		globalFile:  ".claude.json",
	})
	RegisterAgentEnv(&jsonEnv{
		name:        "cursor",
		displayName: "Cursor",
		projectFile: filepath.Join(".cursor", "mcp.json"),
		globalFile:  filepath.Join(".cursor", "mcp.json"),
	})
	RegisterAgentEnv(&jsonEnv{
		name:        "gemini",
		displayName: "Gemini CLI",
		projectFile: filepath.Join(".gemini", "settings.json"),
		globalFile:  filepath.Join(".gemini", "settings.json"),
	})
}

// Name returns the CLI identifier.
func (e *jsonEnv) Name() string { return e.name }

// DisplayName returns the human-readable name.
func (e *jsonEnv) DisplayName() string { return e.displayName }

// settingsPath determines the settings path based on scope.
func (e *jsonEnv) settingsPath(project bool) (string, string, error) {
	if project {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", output.NewSystemErrorWithCause("failed to get working directory", err)
		}
		return filepath.Join(cwd, e.projectFile), "project", nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", output.NewSystemErrorWithCause("failed to get home directory", err)
	}
	return filepath.Join(home, e.globalFile), "global", nil
}

// Detect checks project scope first, then global.
func (e *jsonEnv) Detect() (path, scope string, installed bool) {
	for _, project := range []bool{true, false} {
		p, s, err := e.settingsPath(project)
		if err != nil {
			continue
		}
		if IsServerInstalled(p) {
			return p, s, true
		}
	}
	return "", "", false
}

// Install registers the server in the settings of the given scope.
func (e *jsonEnv) Install(project bool, entry ServerEntry) (string, error) {
	path, _, err := e.settingsPath(project)
	if err != nil {
		return "", err
	}
	if err := InstallServer(path, entry); err != nil {
		return "", err
	}
	return path, nil
}

// Remove unregisters the server from the settings of the given scope.
func (e *jsonEnv) Remove(project bool) error {
	path, _, err := e.settingsPath(project)
	if err != nil {
		return err
	}
	return RemoveServer(path)
}

// Check returns registration state for a specific scope.
func (e *jsonEnv) Check(project bool) (path, scope string, installed bool, err error) {
	p, s, resolveErr := e.settingsPath(project)
	if resolveErr != nil {
		return "", "", false, resolveErr
	}
	return p, s, IsServerInstalled(p), nil
}
