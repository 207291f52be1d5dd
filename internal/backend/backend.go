// Package backend defines the contract between the launcher state layer and
// the native authority that owns instances and accounts.
//
// Every call is a request/response. Callers refetch after a mutation instead of
// patching their own copy, so implementations are free to normalize what
// they store (slugged identifiers, promoted active accounts).
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiowebux/launcher/internal/types"
)

var (
	// ErrNotFound means the referenced instance or account does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means the name or identifier is already taken
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalid means the request arguments were rejected
	ErrInvalid = errors.New("invalid request")
	// ErrUnavailable means the backend could not be reached
	ErrUnavailable = errors.New("backend unavailable")
)

// Instances is the instance plugin
type Instances interface {
	CreateInstance(ctx context.Context, opts types.InstanceOptions) (types.Instance, error)
	GetInstance(ctx context.Context, identifier string) (types.Instance, error)
	GetInstances(ctx context.Context) ([]types.Instance, error)
	RemoveInstance(ctx context.Context, identifier string) error
	RenameInstance(ctx context.Context, identifier, newName string) (types.Instance, error)
	UpdateInstanceIcon(ctx context.Context, identifier string, iconData *string) (types.Instance, error)
}

// Accounts is the account plugin
type Accounts interface {
	AuthenticateAccount(ctx context.Context) (types.AccountRecord, error)
	GetAllAccounts(ctx context.Context) ([]types.AccountSummary, error)
	GetActiveAccount(ctx context.Context) (*types.AccountSummary, error)
	SetActiveAccount(ctx context.Context, uuid string) error
	RemoveAccount(ctx context.Context, uuid string) error
}

// Backend is the full remote surface
type Backend interface {
	Instances
	Accounts
}

// Error carries a backend message together with its classification
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds an Error of the given kind
func Errorf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message returns the text meant for the user, without the classification prefix
func Message(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

type loginHintKey struct{}

// WithLoginHint attaches the username the user typed to an authenticate call.
// Flows that ask for a username use it instead of prompting.
func WithLoginHint(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, loginHintKey{}, username)
}

// LoginHint returns the username attached with WithLoginHint
func LoginHint(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(loginHintKey{}).(string)
	return username, ok && username != ""
}
