package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
)

type stubProvider struct {
	name  string
	value string
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Lookup(_ context.Context) (string, error) {
	s.calls++
	return s.value, s.err
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	first := &stubProvider{name: "first"}
	second := &stubProvider{name: "second", value: "key-2"}
	third := &stubProvider{name: "third", value: "key-3"}

	value, source := Chain{first, second, third}.Resolve(context.Background())
	if value != "key-2" || source != "second" {
		t.Errorf("Resolve() = (%q, %q), want (%q, %q)", value, source, "key-2", "second")
	}
	if third.calls != 0 {
		t.Errorf("third provider called %d times, want 0", third.calls)
	}
}

func TestChain_SkipsErrors(t *testing.T) {
	broken := &stubProvider{name: "broken", value: "ignored", err: errors.New("boom")}
	good := &stubProvider{name: "good", value: "key"}

	value, source := Chain{broken, good}.Resolve(context.Background())
	if value != "key" || source != "good" {
		t.Errorf("Resolve() = (%q, %q), want (%q, %q)", value, source, "key", "good")
	}
}

func TestChain_Empty(t *testing.T) {
	value, source := Chain{&stubProvider{name: "none"}}.Resolve(context.Background())
	if value != "" || source != "" {
		t.Errorf("Resolve() = (%q, %q), want empty", value, source)
	}
}

func TestEnv_Lookup(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "env-key")

	got, err := Env{Key: APIKeyEnvVar}.Lookup(context.Background())
	if err != nil || got != "env-key" {
		t.Errorf("Lookup() = (%q, %v), want (%q, nil)", got, err, "env-key")
	}
}

func TestFile_Lookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GEMINI_API_KEY=file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := File{Path: path, Key: APIKeyEnvVar}.Lookup(context.Background())
	if err != nil || got != "file-key" {
		t.Errorf("Lookup() = (%q, %v), want (%q, nil)", got, err, "file-key")
	}

	got, err = File{Key: APIKeyEnvVar}.Lookup(context.Background())
	if err != nil || got != "" {
		t.Errorf("Lookup(no path) = (%q, %v), want empty", got, err)
	}
}

func TestDefault_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GEMINI_API_KEY=file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(APIKeyEnvVar, "env-key")
	value, _ := Default(path, "").Resolve(context.Background())
	if value != "env-key" {
		t.Errorf("Resolve() = %q, want %q", value, "env-key")
	}

	t.Setenv(APIKeyEnvVar, "")
	value, source := Default(path, "").Resolve(context.Background())
	if value != "file-key" || source != "file:"+path {
		t.Errorf("Resolve() = (%q, %q), want (%q, %q)", value, source, "file-key", "file:"+path)
	}
}

func memoryKeyring(items ...keyring.Item) Keyring {
	ring := keyring.NewArrayKeyring(items)
	return Keyring{
		Service: "test",
		Key:     APIKeyEnvVar,
		Open:    func() (keyring.Keyring, error) { return ring, nil },
	}
}

func TestKeyring_StoreLookupClear(t *testing.T) {
	k := memoryKeyring()
	ctx := context.Background()

	got, err := k.Lookup(ctx)
	if err != nil || got != "" {
		t.Fatalf("Lookup(empty) = (%q, %v), want empty", got, err)
	}

	if err := k.Store("ring-key"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err = k.Lookup(ctx)
	if err != nil || got != "ring-key" {
		t.Errorf("Lookup() = (%q, %v), want (%q, nil)", got, err, "ring-key")
	}

	if err := k.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := k.Clear(); err != nil {
		t.Errorf("second Clear should be a no-op, got %v", err)
	}
	got, _ = k.Lookup(ctx)
	if got != "" {
		t.Errorf("Lookup after Clear = %q, want empty", got)
	}
}

func TestKeyring_UnavailableIsEmpty(t *testing.T) {
	k := Keyring{
		Service: "test",
		Key:     APIKeyEnvVar,
		Open:    func() (keyring.Keyring, error) { return nil, errors.New("no backend") },
	}

	got, err := k.Lookup(context.Background())
	if err != nil || got != "" {
		t.Errorf("Lookup() = (%q, %v), want (\"\", nil)", got, err)
	}
	if err := k.Store("x"); err == nil {
		t.Error("Store should fail without a keychain")
	}
}
