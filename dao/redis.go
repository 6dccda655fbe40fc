package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gastroguide/internal/logger"
	"gastroguide/model"

	"github.com/go-redis/redis/v8"
)

var (
	ErrMaxRetries     = errors.New("max retries exceeded")
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidParam   = errors.New("invalid parameter")
)

// RedisStore persists conversation sessions as JSON strings with a TTL.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    logger.Logger
}

func NewRedisStore(addr, password string, db int, ttl time.Duration, log logger.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisStore{
		client:    client,
		keyPrefix: "gastroguide:session:",
		ttl:       ttl,
		logger:    logger.Component(log, "RedisStore"),
	}
}

// Get returns (nil, nil) for an unknown or expired session.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*model.ConversationSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}

	data, err := s.client.Get(ctx, s.keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.ConversationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *model.ConversationSession) error {
	if err := validateSession(session); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.keyPrefix+session.ID, data, s.ttl).Err()
}

// SaveWithOptimisticLock writes the session under WATCH. When another writer
// stored the same session in the meantime, both contexts are merged so no
// turn is lost. A concurrent write during the transaction triggers a retry.
func (s *RedisStore) SaveWithOptimisticLock(ctx context.Context, session *model.ConversationSession, maxRetries int) error {
	if err := validateSession(session); err != nil {
		return err
	}
	if maxRetries < 0 {
		return fmt.Errorf("%w: maxRetries cannot be negative", ErrInvalidParam)
	}

	key := s.keyPrefix + session.ID

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			toSave := session

			currentData, err := tx.Get(ctx, key).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if err == nil {
				var current model.ConversationSession
				if err := json.Unmarshal(currentData, &current); err != nil {
					return err
				}
				toSave = mergeSessions(&current, session)
			}

			data, err := json.Marshal(toSave)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, s.ttl)
				return nil
			})
			return err
		}, key)

		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}

		lastErr = err
		s.logger.Debug("session write conflict, retrying", map[string]interface{}{
			"session_id": session.ID,
			"attempt":    i + 1,
		})
		if i < maxRetries {
			time.Sleep(time.Millisecond * time.Duration(10*(i+1)))
		}
	}

	return fmt.Errorf("%w for session %s: %v", ErrMaxRetries, session.ID, lastErr)
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}
	return s.client.Del(ctx, s.keyPrefix+sessionID).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func validateSession(session *model.ConversationSession) error {
	if session == nil {
		return fmt.Errorf("%w: session is nil", ErrInvalidSession)
	}
	if session.ID == "" {
		return fmt.Errorf("%w: session.ID is empty", ErrInvalidSession)
	}
	if session.Context == nil {
		return fmt.Errorf("%w: session.Context is nil", ErrInvalidSession)
	}
	return nil
}

// mergeSessions combines a stored session with a locally updated copy.
func mergeSessions(current, newer *model.ConversationSession) *model.ConversationSession {
	merged := *newer
	merged.Context = model.Merge(current.Context, newer.Context)
	if current.CreatedAt != "" {
		merged.CreatedAt = current.CreatedAt
	}
	merged.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	return &merged
}
