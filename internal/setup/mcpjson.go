package setup

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gorewood/gemini-mcp/internal/output"
)

// ServerName is the key gemini-mcp is registered under in "mcpServers".
const ServerName = "gemini"

// ServerEntry is one "mcpServers" entry: how the agent launches the server.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// readSettings loads a JSON settings file. A missing file is an empty object.
func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read "+path, err)
	}

	settings := map[string]any{}
	if len(data) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, output.NewUserError("cannot parse " + path + ": " + err.Error())
	}
	return settings, nil
}

// writeSettings writes settings as indented JSON, creating parent directories.
func writeSettings(path string, settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return output.NewSystemErrorWithCause("failed to create settings directory", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return output.NewSystemErrorWithCause("failed to encode settings", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}

// servers returns the "mcpServers" object of settings, or nil when the key
// is absent. Any other value, null included, is an error.
func servers(settings map[string]any, path string) (map[string]any, error) {
	raw, ok := settings["mcpServers"]
	if !ok {
		return nil, nil
	}
	s, ok := raw.(map[string]any)
	if !ok {
		return nil, output.NewUserError(path + ": \"mcpServers\" is not an object; fix or remove it and retry")
	}
	return s, nil
}

// IsServerInstalled reports whether the settings file at path registers gemini-mcp.
func IsServerInstalled(path string) bool {
	settings, err := readSettings(path)
	if err != nil {
		return false
	}
	s, err := servers(settings, path)
	if err != nil {
		return false
	}
	_, ok := s[ServerName]
	return ok
}

// InstallServer adds or replaces the gemini entry in the settings file at path.
func InstallServer(path string, entry ServerEntry) error {
	settings, err := readSettings(path)
	if err != nil {
		return err
	}

	s, err := servers(settings, path)
	if err != nil {
		return err
	}
	if s == nil {
		s = map[string]any{}
		settings["mcpServers"] = s
	}
	s[ServerName] = entry

	return writeSettings(path, settings)
}

// RemoveServer deletes the gemini entry from the settings file at path.
// A missing file or entry is not an error.
func RemoveServer(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	settings, err := readSettings(path)
	if err != nil {
		return err
	}

	// A malformed "mcpServers" cannot hold our entry, so there is nothing to remove.
	s, err := servers(settings, path)
	if err != nil {
		return nil
	}
	if _, ok := s[ServerName]; !ok {
		return nil
	}
	delete(s, ServerName)
	if len(s) == 0 {
		delete(settings, "mcpServers")
	}

	return writeSettings(path, settings)
}
