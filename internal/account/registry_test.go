package account

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/backend/local"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/types"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap/zaptest"
)

// countingAccounts records how often calls reach the backend
type countingAccounts struct {
	backend.Accounts
	setActive int
	getAll    int
}

func (c *countingAccounts) SetActiveAccount(ctx context.Context, uuid string) error {
	c.setActive++
	return c.Accounts.SetActiveAccount(ctx, uuid)
}

func (c *countingAccounts) GetAllAccounts(ctx context.Context) ([]types.AccountSummary, error) {
	c.getAll++
	return c.Accounts.GetAllAccounts(ctx)
}

type failingAccounts struct {
	backend.Accounts
	err error
}

func (f *failingAccounts) RemoveAccount(ctx context.Context, uuid string) error {
	return f.err
}

func (f *failingAccounts) AuthenticateAccount(ctx context.Context) (types.AccountRecord, error) {
	return types.AccountRecord{}, f.err
}

func names(list ...string) func(context.Context) (string, error) {
	i := 0
	return func(context.Context) (string, error) {
		name := list[i%len(list)]
		i++
		return name, nil
	}
}

func newTestRegistry(t *testing.T, users ...string) (*Registry, *countingAccounts, *notify.Queue) {
	t.Helper()
	keyring.MockInit()

	b := local.New(
		filepath.Join(t.TempDir(), "instances"),
		filepath.Join(t.TempDir(), "accounts.json"),
		local.WithAuthenticator(&local.OfflineAuthenticator{Prompt: names(users...)}),
		local.WithLogger(zaptest.NewLogger(t)),
	)
	counting := &countingAccounts{Accounts: b}
	q := &notify.Queue{}
	r := NewRegistry(counting, q, zaptest.NewLogger(t))

	for range users {
		if _, err := r.Authenticate(context.Background()); err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
	}
	q.Drain()
	return r, counting, q
}

func activeUUIDs(r *Registry) []string {
	var out []string
	for _, a := range r.Accounts() {
		if a.IsActive {
			out = append(out, a.UUID)
		}
	}
	return out
}

func TestAuthenticateFirstAccountActive(t *testing.T) {
	r, _, _ := newTestRegistry(t, "Steve", "Alex")

	if got := len(r.Accounts()); got != 2 {
		t.Fatalf("accounts = %d, want 2", got)
	}
	active, ok := r.Active()
	if !ok || active.Username != "Steve" {
		t.Errorf("Active() = %+v, %v, want Steve", active, ok)
	}
	if got := activeUUIDs(r); len(got) != 1 {
		t.Errorf("active accounts = %v, want exactly one", got)
	}
}

func TestSetActiveAlreadyActiveWarns(t *testing.T) {
	r, counting, q := newTestRegistry(t, "Steve", "Alex")
	active, _ := r.Active()
	refreshes := counting.getAll

	if err := r.SetActive(context.Background(), active.UUID); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if counting.setActive != 0 {
		t.Errorf("backend called %d times, want 0", counting.setActive)
	}
	if counting.getAll != refreshes {
		t.Error("no-op SetActive refreshed the list")
	}

	items := q.Drain()
	if len(items) != 1 || items[0].Level != notify.LevelWarning || items[0].Source != notify.SourceAccount {
		t.Errorf("notifications = %+v, want one account warning", items)
	}
}

func TestSetActiveSwitches(t *testing.T) {
	r, counting, q := newTestRegistry(t, "Steve", "Alex")
	alex := local.OfflineUUID("Alex")

	if err := r.SetActive(context.Background(), alex); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if counting.setActive != 1 {
		t.Errorf("backend calls = %d, want 1", counting.setActive)
	}
	if got := activeUUIDs(r); len(got) != 1 || got[0] != alex {
		t.Errorf("active = %v, want [%s]", got, alex)
	}
	if items := q.Drain(); len(items) != 1 || items[0].Level != notify.LevelSuccess {
		t.Errorf("notifications = %+v", items)
	}
}

func TestSetActiveUnknown(t *testing.T) {
	r, counting, _ := newTestRegistry(t, "Steve")

	err := r.SetActive(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("SetActive() error = %v, want ErrNotFound", err)
	}
	if counting.setActive != 0 {
		t.Error("unknown uuid reached the backend")
	}
}

func TestRemoveActivePromotesOne(t *testing.T) {
	r, _, q := newTestRegistry(t, "Steve", "Alex", "Herobrine")
	active, _ := r.Active()

	if err := r.Remove(context.Background(), active.UUID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if got := len(r.Accounts()); got != 2 {
		t.Fatalf("accounts = %d, want 2", got)
	}
	got := activeUUIDs(r)
	if len(got) != 1 {
		t.Fatalf("active accounts = %v, want exactly one", got)
	}
	if got[0] == active.UUID {
		t.Error("removed account still active")
	}
	if items := q.Drain(); len(items) != 1 || items[0].Title != "Account removed" {
		t.Errorf("notifications = %+v", items)
	}
}

func TestRemoveLastAccount(t *testing.T) {
	r, _, _ := newTestRegistry(t, "Steve")

	if err := r.Remove(context.Background(), local.OfflineUUID("Steve")); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Active(); ok {
		t.Error("Active() reported an account after removing the last one")
	}
	if len(r.Accounts()) != 0 {
		t.Errorf("accounts = %+v", r.Accounts())
	}
}

func TestMutationFailureNotifies(t *testing.T) {
	r, counting, _ := newTestRegistry(t, "Steve")
	q := &notify.Queue{}
	failing := NewRegistry(&failingAccounts{Accounts: counting, err: errors.New("keyring locked")}, q, nil)
	if err := failing.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := failing.Remove(context.Background(), local.OfflineUUID("Steve")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := failing.Authenticate(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	items := q.Drain()
	if len(items) != 2 {
		t.Fatalf("notifications = %+v", items)
	}
	for _, n := range items {
		if n.Level != notify.LevelError || n.Description != "keyring locked" {
			t.Errorf("notification = %+v", n)
		}
	}
	if len(failing.Accounts()) != 1 || len(r.Accounts()) != 1 {
		t.Error("failed mutation changed the list")
	}
}
