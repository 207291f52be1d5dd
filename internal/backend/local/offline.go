package local

import (
	"context"
	"crypto/md5"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/types"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// OfflineAuthenticator signs in without a Microsoft account. The profile UUID
// is derived from the username the same way offline-mode servers do it.
// A username attached with backend.WithLoginHint skips the prompt.
type OfflineAuthenticator struct {
	// Prompt asks for the username
	Prompt func(ctx context.Context) (string, error)
	Now    func() time.Time
}

func (o *OfflineAuthenticator) Authenticate(ctx context.Context) (types.AccountRecord, error) {
	username, ok := backend.LoginHint(ctx)
	if !ok {
		if o.Prompt == nil {
			return types.AccountRecord{}, backend.Errorf(backend.ErrUnavailable, "no username prompt available")
		}
		var err error
		if username, err = o.Prompt(ctx); err != nil {
			return types.AccountRecord{}, err
		}
	}
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return types.AccountRecord{}, backend.Errorf(backend.ErrInvalid, "Username must be 3 to 16 letters, digits or underscores")
	}

	now := time.Now
	if o.Now != nil {
		now = o.Now
	}

	return types.AccountRecord{
		UUID:       OfflineUUID(username),
		Username:   username,
		ObtainedAt: now().Unix(),
		Tokens: types.AccountTokens{
			AccessToken: uuid.NewString(),
			Offline:     true,
		},
	}, nil
}

// OfflineUUID returns the version 3 UUID of "OfflinePlayer:<username>"
func OfflineUUID(username string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80

	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		// md5 always yields 16 bytes
		panic(err)
	}
	return id.String()
}
