package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

type sessionEntry struct {
	AccountID uint      `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type levelDBSessionStore struct {
	db  *leveldb.DB
	now func() time.Time
}

// NewLevelDBSessionStore opens (or creates) the session store at path.
func NewLevelDBSessionStore(path string) (SessionStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	logrus.Infof("Session store opened at %s", path)
	return &levelDBSessionStore{db: db, now: time.Now}, nil
}

// NewMemorySessionStore keeps sessions in a volatile LevelDB instance.
func NewMemorySessionStore() (SessionStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &levelDBSessionStore{db: db, now: time.Now}, nil
}

func (s *levelDBSessionStore) Save(ctx context.Context, tokenID string, accountID uint, ttl time.Duration) error {
	value, err := json.Marshal(sessionEntry{AccountID: accountID, ExpiresAt: s.now().Add(ttl)})
	if err != nil {
		return err
	}
	return s.db.Put([]byte(sessionKey(tokenID)), value, nil)
}

func (s *levelDBSessionStore) Lookup(ctx context.Context, tokenID string) (uint, bool, error) {
	key := []byte(sessionKey(tokenID))
	raw, err := s.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	var entry sessionEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return 0, false, fmt.Errorf("corrupt session entry: %w", err)
	}
	if !s.now().Before(entry.ExpiresAt) {
		if err := s.db.Delete(key, nil); err != nil {
			logrus.Warnf("Failed to purge expired session: %+v", err)
		}
		return 0, false, nil
	}
	return entry.AccountID, true, nil
}

func (s *levelDBSessionStore) Delete(ctx context.Context, tokenID string) error {
	return s.db.Delete([]byte(sessionKey(tokenID)), nil)
}

func (s *levelDBSessionStore) Close() error {
	return s.db.Close()
}
