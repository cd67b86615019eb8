//go:build darwin

package vault

import (
	"context"
	"fmt"

	keychain "github.com/keybase/go-keychain"
)

// keychainStore keeps secrets as generic passwords under Service=dbreset and Account=<name>.
type keychainStore struct{}

func newKeychainStore() (SecretStore, error) { return keychainStore{}, nil }

func item(name string) keychain.Item {
	it := keychain.NewItem()
	it.SetSecClass(keychain.SecClassGenericPassword)
	it.SetService(ServiceName)
	it.SetAccount(name)
	return it
}

func (keychainStore) Get(ctx context.Context, name string) ([]byte, error) {
	q := item(name)
	q.SetMatchLimit(keychain.MatchLimitOne)
	q.SetReturnData(true)
	rr, err := keychain.QueryItem(q)
	if err != nil {
		return nil, fmt.Errorf("keychain get: %w", err)
	}
	if len(rr) == 0 || rr[0].Data == nil {
		return nil, ErrSecretNotFound
	}
	out := make([]byte, len(rr[0].Data))
	copy(out, rr[0].Data)
	return out, nil
}

func (keychainStore) Set(ctx context.Context, name string, value []byte) error {
	upd := item(name)
	upd.SetLabel("dbreset secret: " + name)
	upd.SetData(value)
	upd.SetAccessible(keychain.AccessibleAfterFirstUnlock)
	if err := keychain.UpdateItem(item(name), upd); err != nil {
		// Not found: add instead
		if aerr := keychain.AddItem(upd); aerr != nil {
			return fmt.Errorf("keychain add: %w", aerr)
		}
	}
	return nil
}

func (keychainStore) Unset(ctx context.Context, name string) error {
	return keychain.DeleteItem(item(name))
}

func (keychainStore) Has(ctx context.Context, name string) (bool, error) {
	q := item(name)
	q.SetMatchLimit(keychain.MatchLimitOne)
	q.SetReturnAttributes(true)
	rr, err := keychain.QueryItem(q)
	if err != nil {
		return false, fmt.Errorf("keychain query: %w", err)
	}
	return len(rr) > 0, nil
}
