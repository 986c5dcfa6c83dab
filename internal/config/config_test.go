package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/gemini-mcp/internal/gemini"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv(ModelEnvVar, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(ModelEnvVar, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "name: Team Gemini\ngemini:\n  model: gemini-2.5-flash\n  sandbox: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "Team Gemini" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" || !cfg.Gemini.Sandbox {
		t.Errorf("Gemini = %+v", cfg.Gemini)
	}
	if cfg.Binary != gemini.DefaultBinary() {
		t.Errorf("Binary = %q, want default", cfg.Binary)
	}
	if cfg.CredentialsFile != ".env" {
		t.Errorf("CredentialsFile = %q, want default", cfg.CredentialsFile)
	}
}

func TestLoad_ModelEnvOverride(t *testing.T) {
	t.Setenv(ModelEnvVar, "gemini-exp")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gemini.Model != "gemini-exp" {
		t.Errorf("Model = %q, want env override", cfg.Gemini.Model)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(ModelEnvVar, "")

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "name: [unterminated"},
		{"empty name", "name: \"\"\n"},
		{"empty model", "gemini:\n  model: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestValidate_EmptyModelIsValidationError(t *testing.T) {
	cfg := Default()
	cfg.Gemini.Model = ""

	var vErr *gemini.ValidationError
	if err := cfg.Validate(); !errors.As(err, &vErr) || vErr.Field != "model" {
		t.Errorf("Validate() = %v, want ValidationError on model", err)
	}
}

func TestRead_IgnoresModelEnv(t *testing.T) {
	t.Setenv(ModelEnvVar, "env-only-model")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gemini:\n  model: file-model\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.Gemini.Model != "file-model" {
		t.Errorf("Read() model = %q, want file-model", cfg.Gemini.Model)
	}

	cfg.ApplyEnv()
	if cfg.Gemini.Model != "env-only-model" {
		t.Errorf("ApplyEnv() model = %q, want env-only-model", cfg.Gemini.Model)
	}
}

func TestRead_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Read() = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv(ModelEnvVar, "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Gemini.Debug = true
	cfg.Gemini.Checkpointing = true
	cfg.KeyringService = "work"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestSave_NoPath(t *testing.T) {
	if err := Default().Save(""); err == nil {
		t.Error("Save(\"\") error = nil")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("GEMINI_MCP_CONFIG_HOME", "/custom/path")
	if got := DefaultPath(); got != filepath.Join("/custom/path", "config.yaml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestSnapshot_JSONShape(t *testing.T) {
	cfg := Default()
	opts := cfg.Gemini
	opts.Yolo = true

	data, err := json.Marshal(cfg.Snapshot(opts))
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["name"] != DefaultName {
		t.Errorf("name = %v", decoded["name"])
	}
	options, ok := decoded["gemini_options"].(map[string]any)
	if !ok {
		t.Fatalf("gemini_options missing: %s", data)
	}
	if options["yolo"] != true {
		t.Errorf("snapshot should carry the passed options: %s", data)
	}
	if !strings.Contains(string(data), `"model":"`+gemini.DefaultModel+`"`) {
		t.Errorf("snapshot missing model: %s", data)
	}
}
