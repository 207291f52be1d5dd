package local

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studiowebux/launcher/internal/types"
	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the keyring service name tokens are stored under
const DefaultKeyringService = "decent-launcher"

// ErrNoTokens is returned when no credentials are stored for an account
var ErrNoTokens = errors.New("no stored tokens")

// TokenStore keeps account credentials out of accounts.json
type TokenStore interface {
	Save(uuid string, tokens types.AccountTokens) error
	Load(uuid string) (types.AccountTokens, error)
	Delete(uuid string) error
}

// KeyringTokenStore stores tokens in the OS keyring, one secret per account
type KeyringTokenStore struct {
	service string
}

// NewKeyringTokenStore creates a store under the given keyring service
func NewKeyringTokenStore(service string) *KeyringTokenStore {
	return &KeyringTokenStore{service: service}
}

func (k *KeyringTokenStore) Save(uuid string, tokens types.AccountTokens) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	if err := keyring.Set(k.service, uuid, string(data)); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	return nil
}

func (k *KeyringTokenStore) Load(uuid string) (types.AccountTokens, error) {
	var tokens types.AccountTokens

	secret, err := keyring.Get(k.service, uuid)
	if errors.Is(err, keyring.ErrNotFound) {
		return tokens, ErrNoTokens
	}
	if err != nil {
		return tokens, fmt.Errorf("failed to read tokens: %w", err)
	}

	if err := json.Unmarshal([]byte(secret), &tokens); err != nil {
		return tokens, fmt.Errorf("failed to parse tokens: %w", err)
	}
	return tokens, nil
}

func (k *KeyringTokenStore) Delete(uuid string) error {
	err := keyring.Delete(k.service, uuid)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}
