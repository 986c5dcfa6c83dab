// Package config provides the global configuration directory and file for gemini-mcp.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "gemini-mcp"

// Dir returns the gemini-mcp configuration directory.
//
// Resolution:
//   - $GEMINI_MCP_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/gemini-mcp if set (respects XDG on any platform)
//   - %AppData%/gemini-mcp on Windows
//   - ~/.config/gemini-mcp on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("GEMINI_MCP_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	// macOS and Linux: ~/.config/gemini-mcp
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
