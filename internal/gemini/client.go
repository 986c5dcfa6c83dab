// Package gemini runs prompts through the Gemini CLI.
//
// A Client builds the gemini command line from Options, injects the API key
// found by a credential chain, optionally pipes the contents of several
// files through a scratch file on stdin, and reduces the process outcome to
// a Result. Process failures are data (Result.Success == false); the only
// error Invoke returns is *AuthError, when the CLI is missing or cannot
// authenticate.
package gemini

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorewood/gemini-mcp/internal/credentials"
	"github.com/gorewood/gemini-mcp/internal/logging"
)

// probePrompt is sent once to confirm the CLI can authenticate and answer.
const probePrompt = "Hello"

// CredentialSource resolves the API key handed to the child process.
type CredentialSource interface {
	Resolve(ctx context.Context) (value, source string)
}

// Client invokes the Gemini CLI. It is safe for concurrent use.
// Construct one per process and pass it to every caller.
type Client struct {
	mu       sync.RWMutex
	defaults Options

	verified atomic.Bool

	binary      string
	runner      Runner
	credentials CredentialSource
	scratchDir  string
	lookPath    func(string) (string, error)
	environ     func() []string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithRunner sets the process runner. Tests use it to fake the CLI.
func WithRunner(r Runner) ClientOption {
	return func(c *Client) { c.runner = r }
}

// WithCredentials sets the credential source.
func WithCredentials(src CredentialSource) ClientOption {
	return func(c *Client) { c.credentials = src }
}

// WithBinary overrides the executable name or path.
func WithBinary(name string) ClientOption {
	return func(c *Client) {
		if name != "" {
			c.binary = name
		}
	}
}

// WithScratchDir sets where context files are staged (default os.TempDir).
func WithScratchDir(dir string) ClientOption {
	return func(c *Client) { c.scratchDir = dir }
}

// WithLookPath replaces the executable lookup used by Verify.
func WithLookPath(fn func(string) (string, error)) ClientOption {
	return func(c *Client) { c.lookPath = fn }
}

// NewClient creates a client with the given default options.
// A zero Model falls back to DefaultModel.
func NewClient(defaults Options, opts ...ClientOption) *Client {
	if defaults.Model == "" {
		defaults.Model = DefaultModel
	}
	c := &Client{
		defaults:    defaults,
		binary:      DefaultBinary(),
		runner:      ExecRunner{},
		credentials: credentials.Chain{credentials.Env{Key: credentials.APIKeyEnvVar}},
		lookPath:    exec.LookPath,
		environ:     os.Environ,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the executable the client runs.
func (c *Client) Binary() string {
	return c.binary
}

// Defaults returns the current default options.
func (c *Client) Defaults() Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults
}

// UpdateDefaults merges overrides into the default options and returns the
// result. On validation failure the defaults are left unchanged.
func (c *Client) UpdateDefaults(overrides map[string]any) (Options, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged, err := c.defaults.Merge(overrides)
	if err != nil {
		return c.defaults, err
	}
	c.defaults = merged
	return merged, nil
}

// Verified reports whether Verify has succeeded on this client.
func (c *Client) Verified() bool {
	return c.verified.Load()
}

// Verify checks that the CLI is installed and can answer a trivial prompt.
// Success is remembered for the life of the client; failures are not.
func (c *Client) Verify(ctx context.Context) error {
	if _, err := c.lookPath(c.binary); err != nil {
		return &AuthError{
			Code:    CodeNotFound,
			Message: "gemini CLI not found: install and configure the Gemini CLI",
			Cause:   err,
		}
	}

	probe := Options{Model: c.Defaults().Model}
	result := c.call(ctx, probePrompt, &probe, nil)
	if !result.Success {
		code, _ := result.ExitCode()
		return &AuthError{
			Code:    code,
			Message: "authentication test failed: " + result.Error,
		}
	}

	c.verified.Store(true)
	return nil
}

// Invoke sends prompt to the CLI. A nil opts uses the current defaults.
// Files, when given, are piped to the CLI on stdin as header-delimited text.
// The first call on an unverified client runs Verify and returns its
// *AuthError on failure; every other failure is reported in the Result.
func (c *Client) Invoke(ctx context.Context, prompt string, opts *Options, files []string) (*Result, error) {
	if !c.verified.Load() {
		if err := c.Verify(ctx); err != nil {
			return nil, err
		}
	}
	return c.call(ctx, prompt, opts, files), nil
}

// call runs the CLI once. It never fails: every problem becomes a failed Result.
func (c *Client) call(ctx context.Context, prompt string, opts *Options, files []string) *Result {
	effective := c.Defaults()
	if opts != nil {
		effective = *opts
	}

	args := BuildArgs(prompt, effective)
	line := commandLine(c.binary, args)
	env, key := c.childEnv(ctx)
	command := Command{
		Name: c.binary,
		Args: args,
		Env:  env,
	}

	if len(files) > 0 {
		scratch, err := newScratchFile(c.scratchDir, files)
		if err != nil {
			return failed(prompt, "subprocess error: "+err.Error(), map[string]any{MetaCommand: line})
		}
		defer scratch.Remove()
		command.Stdin = scratch.Reader()
	}

	outcome, err := c.runner.Run(ctx, command)
	if err != nil {
		return failed(prompt, "subprocess error: "+err.Error(), map[string]any{MetaCommand: line})
	}

	stdout := strings.ToValidUTF8(string(outcome.Stdout), "\uFFFD")
	stderr := strings.ToValidUTF8(string(outcome.Stderr), "\uFFFD")

	if outcome.ExitCode != 0 {
		// The CLI may echo its configuration, key included.
		message := logging.MaskValue(stderr, key)
		if message == "" {
			message = fmt.Sprintf("command failed with exit code %d", outcome.ExitCode)
		}
		return failed(prompt, message, map[string]any{
			MetaCommand:  line,
			MetaExitCode: outcome.ExitCode,
		})
	}

	return succeeded(prompt, strings.TrimSpace(stdout), map[string]any{
		MetaCommand:       line,
		MetaModel:         effective.Model,
		MetaFilesIncluded: len(files),
	})
}

// childEnv returns the parent environment plus the resolved API key, if any,
// and the key itself. A later duplicate entry wins in os/exec, so the key
// overrides an empty inherited value.
func (c *Client) childEnv(ctx context.Context) ([]string, string) {
	env := c.environ()
	if c.credentials == nil {
		return env, ""
	}
	key, _ := c.credentials.Resolve(ctx)
	if key != "" {
		env = append(env, credentials.APIKeyEnvVar+"="+key)
	}
	return env, key
}
