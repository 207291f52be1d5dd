// Package local is the filesystem authority for instances and accounts.
//
// Layout under the data directory:
//
//	instances/<identifier>/instance.json
//	instances/<identifier>/icon.png
//	accounts.json
//
// Account tokens are kept out of accounts.json and stored in the OS keyring.
package local

import (
	"context"
	"sync"
	"time"

	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap"
)

// Authenticator produces a signed-in account
type Authenticator interface {
	Authenticate(ctx context.Context) (types.AccountRecord, error)
}

// Option configures a Backend
type Option func(*Backend)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) { b.logger = logger }
}

// WithAuthenticator sets the sign-in flow used by AuthenticateAccount
func WithAuthenticator(auth Authenticator) Option {
	return func(b *Backend) { b.auth = auth }
}

// WithTokenStore replaces the keyring token store
func WithTokenStore(tokens TokenStore) Option {
	return func(b *Backend) { b.tokens = tokens }
}

// Backend implements backend.Backend on the local filesystem
type Backend struct {
	instancesDir string
	accountsFile string
	auth         Authenticator
	tokens       TokenStore
	logger       *zap.Logger
	now          func() time.Time

	// mu serializes every read-modify-write on disk
	mu sync.Mutex
}

var _ backend.Backend = (*Backend)(nil)

// New creates a local backend rooted at instancesDir and accountsFile
func New(instancesDir, accountsFile string, opts ...Option) *Backend {
	b := &Backend{
		instancesDir: instancesDir,
		accountsFile: accountsFile,
		tokens:       NewKeyringTokenStore(DefaultKeyringService),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b
}
