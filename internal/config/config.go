package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/gemini-mcp/internal/credentials"
	"github.com/gorewood/gemini-mcp/internal/gemini"
)

// DefaultName is the MCP server name advertised to clients.
const DefaultName = "Gemini MCP Server"

// ModelEnvVar overrides the configured default model.
const ModelEnvVar = "GEMINI_MCP_MODEL"

// Config is the contents of config.yaml.
type Config struct {
	Name            string         `yaml:"name"`
	Binary          string         `yaml:"binary,omitempty"`
	CredentialsFile string         `yaml:"credentials_file,omitempty"`
	KeyringService  string         `yaml:"keyring_service,omitempty"`
	Gemini          gemini.Options `yaml:"gemini"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Name:            DefaultName,
		Binary:          gemini.DefaultBinary(),
		CredentialsFile: ".env",
		KeyringService:  credentials.DefaultService,
		Gemini:          gemini.DefaultOptions(),
	}
}

// DefaultPath returns the config file path inside Dir, or "" when no
// configuration directory can be determined.
func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file at path over the defaults and applies the
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Read reads the config file at path over the defaults without applying
// environment overrides, so the result can be saved back unchanged.
// Fields absent from the file keep their default values.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv replaces the model with $GEMINI_MCP_MODEL when it is set.
func (c *Config) ApplyEnv() {
	if model := strings.TrimSpace(os.Getenv(ModelEnvVar)); model != "" {
		c.Gemini.Model = model
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name must not be empty")
	}
	if strings.TrimSpace(c.Binary) == "" {
		return errors.New("binary must not be empty")
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		return &gemini.ValidationError{Field: "model", Reason: "must not be empty"}
	}
	return nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if path == "" {
		return errors.New("no config path")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Snapshot is the JSON view of the running configuration served to clients.
type Snapshot struct {
	Name          string         `json:"name"`
	Binary        string         `json:"binary"`
	GeminiOptions gemini.Options `json:"gemini_options"`
}

// Snapshot returns the configuration with opts as the current options.
// The client's defaults may have changed since the file was loaded, so the
// caller passes them in.
func (c *Config) Snapshot(opts gemini.Options) Snapshot {
	return Snapshot{
		Name:          c.Name,
		Binary:        c.Binary,
		GeminiOptions: opts,
	}
}
