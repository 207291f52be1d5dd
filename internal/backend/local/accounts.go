package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/fsutil"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap"
)

type accountStore struct {
	Accounts []types.AccountRecord `json:"accounts"`
}

// AuthenticateAccount runs the configured sign-in flow and stores the result.
// The first account becomes active; re-authenticating keeps the active flag.
func (b *Backend) AuthenticateAccount(ctx context.Context) (types.AccountRecord, error) {
	if b.auth == nil {
		return types.AccountRecord{}, backend.Errorf(backend.ErrUnavailable, "no sign-in method is configured")
	}

	record, err := b.auth.Authenticate(ctx)
	if err != nil {
		return types.AccountRecord{}, err
	}
	if record.ObtainedAt == 0 {
		record.ObtainedAt = b.now().Unix()
	}

	if err := b.tokens.Save(record.UUID, record.Tokens); err != nil {
		b.logger.Warn("failed to store account tokens", zap.String("uuid", record.UUID), zap.Error(err))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	accounts, err := b.readAccounts()
	if err != nil {
		return types.AccountRecord{}, err
	}

	found := false
	for i := range accounts {
		if accounts[i].UUID == record.UUID {
			record.IsActive = accounts[i].IsActive
			accounts[i] = record
			found = true
			break
		}
	}
	if !found {
		record.IsActive = !hasActive(accounts)
		accounts = append(accounts, record)
	}

	if err := b.writeAccounts(accounts); err != nil {
		return types.AccountRecord{}, err
	}

	b.logger.Info("account authenticated", zap.String("uuid", record.UUID), zap.String("username", record.Username))
	return record, nil
}

// GetAllAccounts lists the stored accounts without credentials
func (b *Backend) GetAllAccounts(ctx context.Context) ([]types.AccountSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	accounts, err := b.readAccounts()
	if err != nil {
		return nil, err
	}
	out := make([]types.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Summary())
	}
	return out, nil
}

// GetActiveAccount returns the active account, or nil when there are none
func (b *Backend) GetActiveAccount(ctx context.Context) (*types.AccountSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	accounts, err := b.readAccounts()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.IsActive {
			summary := a.Summary()
			return &summary, nil
		}
	}
	return nil, nil
}

// SetActiveAccount marks uuid active and clears the flag everywhere else
func (b *Backend) SetActiveAccount(ctx context.Context, uuid string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	accounts, err := b.readAccounts()
	if err != nil {
		return err
	}

	found := false
	for i := range accounts {
		accounts[i].IsActive = accounts[i].UUID == uuid
		if accounts[i].IsActive {
			found = true
		}
	}
	if !found {
		return backend.Errorf(backend.ErrNotFound, "account %s not found", uuid)
	}

	return b.writeAccounts(accounts)
}

// RemoveAccount deletes an account and its tokens. Removing the active account
// promotes the first remaining one.
func (b *Backend) RemoveAccount(ctx context.Context, uuid string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	accounts, err := b.readAccounts()
	if err != nil {
		return err
	}

	kept := accounts[:0]
	for _, a := range accounts {
		if a.UUID != uuid {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(accounts) {
		return backend.Errorf(backend.ErrNotFound, "account %s not found", uuid)
	}

	if err := b.writeAccounts(kept); err != nil {
		return err
	}

	if err := b.tokens.Delete(uuid); err != nil {
		b.logger.Warn("failed to delete account tokens", zap.String("uuid", uuid), zap.Error(err))
	}
	return nil
}

// Tokens returns the stored credentials for an account
func (b *Backend) Tokens(uuid string) (types.AccountTokens, error) {
	return b.tokens.Load(uuid)
}

// readAccounts loads accounts.json and repairs the active flags on disk if needed
func (b *Backend) readAccounts() ([]types.AccountRecord, error) {
	data, err := os.ReadFile(b.accountsFile)
	if os.IsNotExist(err) {
		return []types.AccountRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return []types.AccountRecord{}, nil
	}

	var store accountStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	if store.Accounts == nil {
		store.Accounts = []types.AccountRecord{}
	}

	if normalizeActive(store.Accounts) {
		if err := b.persistAccounts(store.Accounts); err != nil {
			return nil, err
		}
	}
	return store.Accounts, nil
}

func (b *Backend) writeAccounts(accounts []types.AccountRecord) error {
	normalizeActive(accounts)
	return b.persistAccounts(accounts)
}

func (b *Backend) persistAccounts(accounts []types.AccountRecord) error {
	data, err := json.MarshalIndent(accountStore{Accounts: accounts}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	if err := fsutil.WriteFileAtomic(b.accountsFile, data); err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	return nil
}

// normalizeActive keeps the first active flag, clears the rest and promotes
// the first account when none is active. It reports whether anything changed.
func normalizeActive(accounts []types.AccountRecord) bool {
	seen := false
	changed := false
	for i := range accounts {
		if !accounts[i].IsActive {
			continue
		}
		if seen {
			accounts[i].IsActive = false
			changed = true
			continue
		}
		seen = true
	}

	if !seen && len(accounts) > 0 {
		accounts[0].IsActive = true
		changed = true
	}
	return changed
}

func hasActive(accounts []types.AccountRecord) bool {
	for _, a := range accounts {
		if a.IsActive {
			return true
		}
	}
	return false
}
