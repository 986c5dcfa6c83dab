// Package credentials resolves the Gemini API key from an ordered chain of
// providers: the environment, a .env-style file, and the OS keychain.
//
// No provider is mandatory. The Gemini CLI can authenticate on its own
// (for example through gcloud), so an empty key is a valid outcome.
package credentials

import (
	"context"
	"os"

	"github.com/gorewood/gemini-mcp/internal/envfile"
)

// APIKeyEnvVar is the variable the Gemini CLI reads its API key from.
const APIKeyEnvVar = "GEMINI_API_KEY"

// Provider looks up a credential. An empty value with a nil error means
// the provider has nothing to offer.
type Provider interface {
	Name() string
	Lookup(ctx context.Context) (string, error)
}

// Env reads the credential from an environment variable.
type Env struct {
	Key string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Name implements Provider.
func (e Env) Name() string { return "env:" + e.Key }

// Lookup implements Provider.
func (e Env) Lookup(_ context.Context) (string, error) {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv(e.Key), nil
}

// File reads the credential from a KEY=value file such as .env.
type File struct {
	Path string
	Key  string
}

// Name implements Provider.
func (f File) Name() string { return "file:" + f.Path }

// Lookup implements Provider.
func (f File) Lookup(_ context.Context) (string, error) {
	if f.Path == "" {
		return "", nil
	}
	return envfile.Lookup(f.Path, f.Key)
}

// Chain tries providers in order; the first non-empty value wins.
// Provider errors are skipped, not returned: credential discovery is best-effort.
type Chain []Provider

// Resolve returns the first credential found and the name of the provider
// that supplied it. Both are empty when no provider has a value.
func (c Chain) Resolve(ctx context.Context) (value, source string) {
	for _, provider := range c {
		v, err := provider.Lookup(ctx)
		if err != nil || v == "" {
			continue
		}
		return v, provider.Name()
	}
	return "", ""
}

// Default returns the standard chain: environment, then envPath, then the
// keychain entry for service. Empty envPath or service skip that provider.
func Default(envPath, service string) Chain {
	chain := Chain{Env{Key: APIKeyEnvVar}}
	if envPath != "" {
		chain = append(chain, File{Path: envPath, Key: APIKeyEnvVar})
	}
	if service != "" {
		chain = append(chain, NewKeyring(service))
	}
	return chain
}
