package setup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorewood/gemini-mcp/internal/output"
)

func writeJSON(t *testing.T, path string, data map[string]any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("invalid JSON in %s: %v", path, err)
	}
	return data
}

func TestIsServerInstalled(t *testing.T) {
	dir := t.TempDir()

	t.Run("file does not exist", func(t *testing.T) {
		if IsServerInstalled(filepath.Join(dir, "nonexistent.json")) {
			t.Error("expected false for nonexistent file")
		}
	})

	t.Run("other servers only", func(t *testing.T) {
		path := filepath.Join(dir, "other.json")
		writeJSON(t, path, map[string]any{
			"mcpServers": map[string]any{"github": map[string]any{"command": "gh-mcp"}},
		})
		if IsServerInstalled(path) {
			t.Error("expected false without a gemini entry")
		}
	})

	t.Run("gemini registered", func(t *testing.T) {
		path := filepath.Join(dir, "gemini.json")
		writeJSON(t, path, map[string]any{
			"mcpServers": map[string]any{ServerName: map[string]any{"command": "gemini-mcp"}},
		})
		if !IsServerInstalled(path) {
			t.Error("expected true with a gemini entry")
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		if IsServerInstalled(path) {
			t.Error("expected false for unparseable file")
		}
	})
}

func TestInstallServer_PreservesOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	writeJSON(t, path, map[string]any{
		"theme":      "dark",
		"mcpServers": map[string]any{"github": map[string]any{"command": "gh-mcp"}},
	})

	entry := ServerEntry{Command: "/usr/local/bin/gemini-mcp", Args: []string{"serve"}}
	if err := InstallServer(path, entry); err != nil {
		t.Fatalf("InstallServer() error = %v", err)
	}

	data := readJSON(t, path)
	if data["theme"] != "dark" {
		t.Errorf("theme = %v, want preserved", data["theme"])
	}
	servers := data["mcpServers"].(map[string]any)
	if _, ok := servers["github"]; !ok {
		t.Error("existing server was dropped")
	}
	gemini, ok := servers[ServerName].(map[string]any)
	if !ok {
		t.Fatalf("gemini entry missing: %v", servers)
	}
	if gemini["command"] != "/usr/local/bin/gemini-mcp" {
		t.Errorf("command = %v", gemini["command"])
	}
	if args, _ := gemini["args"].([]any); len(args) != 1 || args[0] != "serve" {
		t.Errorf("args = %v, want [serve]", gemini["args"])
	}
}

func TestInstallServer_ReplacesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	if err := InstallServer(path, ServerEntry{Command: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := InstallServer(path, ServerEntry{Command: "new"}); err != nil {
		t.Fatal(err)
	}

	servers := readJSON(t, path)["mcpServers"].(map[string]any)
	if len(servers) != 1 {
		t.Errorf("servers = %v, want one entry", servers)
	}
	if servers[ServerName].(map[string]any)["command"] != "new" {
		t.Errorf("entry = %v, want command new", servers[ServerName])
	}
}

func TestInstallServer_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := InstallServer(path, ServerEntry{Command: "gemini-mcp"}); err == nil {
		t.Error("expected an error for an unparseable settings file")
	}
}

func TestInstallServer_MCPServersNotAnObject(t *testing.T) {
	for _, raw := range []string{`{"mcpServers": null}`, `{"mcpServers": []}`, `{"mcpServers": "gemini"}`} {
		t.Run(raw, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
				t.Fatal(err)
			}

			err := InstallServer(path, ServerEntry{Command: "gemini-mcp"})
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := output.GetExitCode(err); code != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != raw {
				t.Errorf("settings file rewritten to %q", data)
			}
			if IsServerInstalled(path) {
				t.Error("IsServerInstalled() = true for a malformed file")
			}
			if err := RemoveServer(path); err != nil {
				t.Errorf("RemoveServer() error = %v", err)
			}
		})
	}
}

func TestRemoveServer(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if err := RemoveServer(filepath.Join(t.TempDir(), "none.json")); err != nil {
			t.Errorf("RemoveServer() error = %v", err)
		}
	})

	t.Run("keeps other servers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeJSON(t, path, map[string]any{
			"mcpServers": map[string]any{
				"github":   map[string]any{"command": "gh-mcp"},
				ServerName: map[string]any{"command": "gemini-mcp"},
			},
		})
		if err := RemoveServer(path); err != nil {
			t.Fatalf("RemoveServer() error = %v", err)
		}
		servers := readJSON(t, path)["mcpServers"].(map[string]any)
		if _, ok := servers[ServerName]; ok {
			t.Error("gemini entry should be removed")
		}
		if _, ok := servers["github"]; !ok {
			t.Error("github entry should be kept")
		}
	})

	t.Run("drops empty mcpServers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		writeJSON(t, path, map[string]any{
			"theme":      "dark",
			"mcpServers": map[string]any{ServerName: map[string]any{"command": "gemini-mcp"}},
		})
		if err := RemoveServer(path); err != nil {
			t.Fatalf("RemoveServer() error = %v", err)
		}
		data := readJSON(t, path)
		if _, ok := data["mcpServers"]; ok {
			t.Errorf("mcpServers should be removed when empty: %v", data)
		}
		if data["theme"] != "dark" {
			t.Error("other settings should be kept")
		}
	})
}
