package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gastroguide/internal/logger"
	"gastroguide/model"

	bolt "go.etcd.io/bbolt"
)

var sessionBucket = []byte("conversation_sessions")

// BoltStore persists conversation sessions in a single bbolt file. It suits
// single-node deployments without redis. Expired sessions are dropped on read.
type BoltStore struct {
	db     *bolt.DB
	ttl    time.Duration
	logger logger.Logger
}

func NewBoltStore(path string, ttl time.Duration, log logger.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &BoltStore{db: db, ttl: ttl, logger: logger.Component(log, "BoltStore")}, nil
}

// Get returns (nil, nil) for an unknown or expired session.
func (s *BoltStore) Get(_ context.Context, sessionID string) (*model.ConversationSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}

	var session *model.ConversationSession
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionBucket).Get([]byte(sessionID))
		if v == nil {
			return nil
		}
		var decoded model.ConversationSession
		if err := json.Unmarshal(v, &decoded); err != nil {
			return err
		}
		session = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	if session != nil && s.expired(session) {
		s.logger.Debug("session expired", map[string]interface{}{"session_id": sessionID})
		return nil, s.Delete(context.Background(), sessionID)
	}
	return session, nil
}

func (s *BoltStore) Save(_ context.Context, session *model.ConversationSession) error {
	if err := validateSession(session); err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(session.ID), data)
	})
}

// SaveWithOptimisticLock merges with the stored copy inside one write
// transaction. bbolt serializes writers, so maxRetries is unused.
func (s *BoltStore) SaveWithOptimisticLock(_ context.Context, session *model.ConversationSession, _ int) error {
	if err := validateSession(session); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		toSave := session
		if v := b.Get([]byte(session.ID)); v != nil {
			var current model.ConversationSession
			if err := json.Unmarshal(v, &current); err != nil {
				return err
			}
			if !s.expired(&current) {
				toSave = mergeSessions(&current, session)
			}
		}
		data, err := json.Marshal(toSave)
		if err != nil {
			return err
		}
		return b.Put([]byte(session.ID), data)
	})
}

func (s *BoltStore) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(sessionID))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) expired(session *model.ConversationSession) bool {
	if s.ttl <= 0 || session.UpdatedAt == "" {
		return false
	}
	updated, err := time.Parse(time.RFC3339Nano, session.UpdatedAt)
	if err != nil {
		return false
	}
	return time.Since(updated) > s.ttl
}
