// Package logging hides secrets in text before it is logged or shown to an
// MCP client.
package logging

import (
	"regexp"
	"strings"
)

var (
	reEnvKey    = regexp.MustCompile(`((?:GEMINI|GOOGLE)_API_KEY=)(\S+)`)
	reAPIKey    = regexp.MustCompile(`(?i)(api[_-]?key[=:]\s*)([^\s;,"']+)`)
	reBearer    = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._~+/-]+=*)`)
	reGoogleKey = regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)
)

// Mask replaces API keys and bearer tokens in s with "***".
func Mask(s string) string {
	out := s
	out = reEnvKey.ReplaceAllString(out, "${1}***")
	out = reAPIKey.ReplaceAllString(out, "${1}***")
	out = reBearer.ReplaceAllString(out, "${1}***")
	out = reGoogleKey.ReplaceAllString(out, "***")
	return out
}

// MaskValue replaces every occurrence of secret in s. Secrets shorter than
// four characters are left alone; masking them would mangle ordinary text.
func MaskValue(s, secret string) string {
	if len(secret) < 4 {
		return s
	}
	return strings.ReplaceAll(s, secret, "***")
}
