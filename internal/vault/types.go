package vault

import (
	"context"
	"errors"
	"fmt"
)

// ErrSecretNotFound is returned when a named secret has no value.
var ErrSecretNotFound = errors.New("secret not found")

// SecretStore keeps connection secrets out of config.yaml.
// Implementations must never log or print secret values.
type SecretStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Set(ctx context.Context, name string, value []byte) error
	Unset(ctx context.Context, name string) error
	Has(ctx context.Context, name string) (bool, error)
}

const (
	// ServiceName groups all secrets belonging to this application in the Keychain.
	ServiceName = "dbreset"
)

// New returns the platform secret store. Only the macOS Keychain is supported.
func New() (SecretStore, error) {
	return newKeychainStore()
}

// Resolve returns the secret name from s, wrapping lookup failures with the name.
func Resolve(ctx context.Context, s SecretStore, name string) (string, error) {
	b, err := s.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("vault secret %q: %w", name, err)
	}
	return string(b), nil
}
