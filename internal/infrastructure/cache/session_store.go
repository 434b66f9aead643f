package cache

import (
	"context"
	"time"
)

// SessionStore is the allow-list of live session token ids.
type SessionStore interface {
	Save(ctx context.Context, tokenID string, accountID uint, ttl time.Duration) error
	// Lookup returns the account id bound to tokenID, or ok=false when the
	// token is unknown, revoked or expired.
	Lookup(ctx context.Context, tokenID string) (accountID uint, ok bool, err error)
	Delete(ctx context.Context, tokenID string) error
	Close() error
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}
