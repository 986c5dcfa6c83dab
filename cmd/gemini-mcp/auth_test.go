package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/gorewood/gemini-mcp/internal/credentials"
	"github.com/gorewood/gemini-mcp/internal/output"
)

func TestAuthSetKeyAndClear(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{name: "key argument", args: []string{"auth", "set-key", "AIza-test"}},
		{name: "key on stdin", args: []string{"auth", "set-key"}, stdin: "AIza-test\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := setupCLI(t, &fakeCLI{})

			stdout, _, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("set-key error = %v", err)
			}
			if !strings.Contains(stdout, "API key stored") {
				t.Errorf("output = %q", stdout)
			}

			item, err := ring.Get(credentials.APIKeyEnvVar)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(item.Data) != "AIza-test" {
				t.Errorf("stored key = %q, want AIza-test", item.Data)
			}

			if _, _, err := execute(t, "", "auth", "clear"); err != nil {
				t.Fatalf("clear error = %v", err)
			}
			if _, err := ring.Get(credentials.APIKeyEnvVar); !errors.Is(err, keyring.ErrKeyNotFound) {
				t.Errorf("Get() after clear error = %v, want ErrKeyNotFound", err)
			}
		})
	}
}

func TestAuthSetKey_Empty(t *testing.T) {
	setupCLI(t, &fakeCLI{})

	_, _, err := execute(t, "\n", "auth", "set-key")
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
}

func TestAuthClear_NothingStored(t *testing.T) {
	setupCLI(t, &fakeCLI{})

	if _, _, err := execute(t, "", "auth", "clear", "--json"); err != nil {
		t.Errorf("clear with no stored key error = %v", err)
	}
}

func TestStoredKeyFeedsVerify(t *testing.T) {
	setupCLI(t, &fakeCLI{})

	if _, _, err := execute(t, "", "auth", "set-key", "AIza-stored"); err != nil {
		t.Fatalf("set-key error = %v", err)
	}

	stdout, _, err := execute(t, "", "verify", "--json")
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	result := decodeJSON(t, stdout)
	if result["credential_source"] != "keyring:"+credentials.DefaultService {
		t.Errorf("credential_source = %v", result["credential_source"])
	}
}
