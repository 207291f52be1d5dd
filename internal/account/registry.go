// Package account mirrors the backend's account list.
package account

import (
	"context"
	"fmt"
	"sync"

	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap"
)

// Registry is the client-side account list. The active account is whatever
// the backend reports, never computed locally.
type Registry struct {
	backend  backend.Accounts
	notifier notify.Notifier
	logger   *zap.Logger

	mu       sync.RWMutex
	accounts []types.AccountSummary
	loading  bool
}

// NewRegistry creates an empty registry; call Refresh to populate it
func NewRegistry(b backend.Accounts, n notify.Notifier, logger *zap.Logger) *Registry {
	if n == nil {
		n = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		backend:  b,
		notifier: notify.WithSource(n, notify.SourceAccount),
		logger:   logger,
		accounts: []types.AccountSummary{},
	}
}

// Accounts returns a copy of the account list
func (r *Registry) Accounts() []types.AccountSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.AccountSummary, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Active returns the account flagged active by the backend
func (r *Registry) Active() (types.AccountSummary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.IsActive {
			return a, true
		}
	}
	return types.AccountSummary{}, false
}

// Loading reports whether a refresh is in flight
func (r *Registry) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

func (r *Registry) find(uuid string) (types.AccountSummary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.UUID == uuid {
			return a, true
		}
	}
	return types.AccountSummary{}, false
}

// Refresh replaces the list with the backend's
func (r *Registry) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()

	list, err := r.backend.GetAllAccounts(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		r.logger.Warn("failed to fetch accounts", zap.Error(err))
		return fmt.Errorf("refresh accounts: %w", err)
	}
	if list == nil {
		list = []types.AccountSummary{}
	}
	r.accounts = list
	return nil
}

// Authenticate signs in a new account through the backend
func (r *Registry) Authenticate(ctx context.Context) (types.AccountSummary, error) {
	record, err := r.backend.AuthenticateAccount(ctx)
	if err != nil {
		notify.Error(r.notifier, "Failed to add account", backend.Message(err))
		return types.AccountSummary{}, fmt.Errorf("authenticate: %w", err)
	}

	r.refreshAfterMutation(ctx)
	notify.Success(r.notifier, "Account added", fmt.Sprintf("Signed in as %s.", record.Username))

	if summary, ok := r.find(record.UUID); ok {
		return summary, nil
	}
	return record.Summary(), nil
}

// SetActive makes uuid the active account
func (r *Registry) SetActive(ctx context.Context, uuid string) error {
	account, ok := r.find(uuid)
	if !ok {
		return backend.Errorf(backend.ErrNotFound, "account %s not found", uuid)
	}
	if account.IsActive {
		notify.Warning(r.notifier, "Account already active", fmt.Sprintf("%s is already the active account.", account.Username))
		return nil
	}

	if err := r.backend.SetActiveAccount(ctx, uuid); err != nil {
		notify.Error(r.notifier, "Failed to switch account", backend.Message(err))
		return fmt.Errorf("set active account: %w", err)
	}

	r.refreshAfterMutation(ctx)
	notify.Success(r.notifier, "Account switched", fmt.Sprintf("Now playing as %s.", account.Username))
	return nil
}

// Remove signs an account out. The backend promotes another account when
// the active one is removed.
func (r *Registry) Remove(ctx context.Context, uuid string) error {
	name := uuid
	if account, ok := r.find(uuid); ok {
		name = account.Username
	}

	if err := r.backend.RemoveAccount(ctx, uuid); err != nil {
		notify.Error(r.notifier, "Failed to remove account", backend.Message(err))
		return fmt.Errorf("remove account: %w", err)
	}

	r.refreshAfterMutation(ctx)
	notify.Success(r.notifier, "Account removed", fmt.Sprintf("%s has been signed out.", name))
	return nil
}

func (r *Registry) refreshAfterMutation(ctx context.Context) {
	_ = r.Refresh(ctx)
}
