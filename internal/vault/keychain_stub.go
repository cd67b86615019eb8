//go:build !darwin

package vault

import (
	"context"
	"errors"
)

var errUnsupported = errors.New("keychain backend not supported on this OS")

type keychainStore struct{}

func newKeychainStore() (SecretStore, error) {
	return nil, errUnsupported
}

func (keychainStore) Get(ctx context.Context, name string) ([]byte, error) {
	return nil, errUnsupported
}

func (keychainStore) Set(ctx context.Context, name string, value []byte) error {
	return errUnsupported
}

func (keychainStore) Unset(ctx context.Context, name string) error {
	return errUnsupported
}

func (keychainStore) Has(ctx context.Context, name string) (bool, error) {
	return false, errUnsupported
}
