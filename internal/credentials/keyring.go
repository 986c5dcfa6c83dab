package credentials

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/99designs/keyring"
)

// DefaultService is the keychain namespace used for the stored API key.
const DefaultService = "gemini-mcp"

// Keyring reads and writes the credential in the OS keychain.
type Keyring struct {
	Service string
	Key     string
	// Open defaults to opening the platform keychain for Service.
	Open func() (keyring.Keyring, error)
}

// NewKeyring returns a keychain provider for the API key under service.
func NewKeyring(service string) Keyring {
	return Keyring{
		Service: service,
		Key:     APIKeyEnvVar,
		Open:    func() (keyring.Keyring, error) { return openRing(service) },
	}
}

// Name implements Provider.
func (k Keyring) Name() string { return "keyring:" + k.Service }

// Lookup implements Provider. A missing item or an unavailable keychain
// yields an empty value; only unexpected read errors are returned.
func (k Keyring) Lookup(_ context.Context) (string, error) {
	ring, err := k.open()
	if err != nil {
		return "", nil //nolint:nilerr // no keychain on this system is not a failure
	}

	item, err := ring.Get(k.Key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s from keychain: %w", k.Key, err)
	}
	return string(item.Data), nil
}

// Store saves value in the keychain.
func (k Keyring) Store(value string) error {
	ring, err := k.open()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{
		Key:         k.Key,
		Data:        []byte(value),
		Label:       k.Service + " API key",
		Description: "Gemini API key used by " + k.Service,
	}); err != nil {
		return fmt.Errorf("writing %s to keychain: %w", k.Key, err)
	}
	return nil
}

// Clear removes the stored value. Removing a missing item is not an error.
func (k Keyring) Clear() error {
	ring, err := k.open()
	if err != nil {
		return err
	}
	if err := ring.Remove(k.Key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing %s from keychain: %w", k.Key, err)
	}
	return nil
}

func (k Keyring) open() (keyring.Keyring, error) {
	if k.Open == nil {
		return openRing(k.Service)
	}
	return k.Open()
}

// openRing opens the native credential store. The encrypted-file backend is
// left out because it prompts for a passphrase, which would block a stdio server.
func openRing(service string) (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowed = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		}
	}

	cfg := keyring.Config{
		ServiceName:     service,
		AllowedBackends: allowed,
		PassPrefix:      service,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = service
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keychain: %w", err)
	}
	return ring, nil
}
