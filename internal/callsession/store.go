package callsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	redisclient "medicare-call-server/internal/clients/redis"
	"medicare-call-server/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Store persists per-call conversation state keyed by call SID
type Store interface {
	Get(ctx context.Context, callSID string) (*Session, error)
	Save(ctx context.Context, callSID string, session *Session) error
	Delete(ctx context.Context, callSID string) error
}

// Sessions outlive webhook requests but not long calls; an hour is generous.
const sessionTTL = time.Hour

// RedisStore keeps call sessions in Redis so conversations survive restarts
// and multiple server instances.
type RedisStore struct {
	client *redisclient.Client
	logger *observability.Logger
}

func NewRedisStore(client *redisclient.Client, logger *observability.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func sessionKey(callSID string) string {
	return "callsession:" + callSID
}

func (s *RedisStore) Get(ctx context.Context, callSID string) (*Session, error) {
	data, err := s.client.GetClient().Get(ctx, sessionKey(callSID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		s.logger.Error(ctx, "failed to load call session", err)
		return nil, fmt.Errorf("failed to load call session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		s.logger.Error(ctx, "failed to decode call session", err)
		return nil, fmt.Errorf("failed to decode call session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, callSID string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode call session: %w", err)
	}

	if err := s.client.GetClient().Set(ctx, sessionKey(callSID), data, sessionTTL).Err(); err != nil {
		s.logger.Error(ctx, "failed to save call session", err)
		return fmt.Errorf("failed to save call session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, callSID string) error {
	if err := s.client.GetClient().Del(ctx, sessionKey(callSID)).Err(); err != nil {
		s.logger.Error(ctx, "failed to delete call session", err)
		return fmt.Errorf("failed to delete call session: %w", err)
	}
	return nil
}

// MemoryStore is the fallback when Redis is not configured. Sessions live in
// process memory, so restarts drop in-flight calls.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(_ context.Context, callSID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[callSID]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers can't mutate shared state without Save
	copied := *session
	copied.History = append([]Message(nil), session.History...)
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, callSID string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	copied.History = append([]Message(nil), session.History...)
	s.sessions[callSID] = &copied
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, callSID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, callSID)
	return nil
}
