package engine

import (
	"fmt"

	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/zalando/go-keyring"
)

// CredentialStore keeps the passwords of remote address books.
type CredentialStore interface {
	Password(user string) (string, error)
	SetPassword(user, password string) error
}

// KeyringStore stores passwords in the operating system keyring.
type KeyringStore struct {
	Service string
}

// NewKeyringStore returns a store scoped to the application keyring service.
func NewKeyringStore() KeyringStore {
	return KeyringStore{Service: config.KeyringService}
}

func (k KeyringStore) Password(user string) (string, error) {
	pass, err := keyring.Get(k.Service, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCredentials, err)
	}
	return pass, nil
}

func (k KeyringStore) SetPassword(user, password string) error {
	if err := keyring.Set(k.Service, user, password); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCredentials, err)
	}
	return nil
}
