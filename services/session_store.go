package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kendall-kelly/cafe-tropis-api/booking"
	"github.com/kendall-kelly/cafe-tropis-api/config"
)

// ErrSessionNotFound is returned for unknown or expired booking sessions
var ErrSessionNotFound = errors.New("booking session not found")

// SessionStore keeps in-progress booking sessions between requests
type SessionStore interface {
	Save(ctx context.Context, session *booking.Session) error
	Get(ctx context.Context, id string) (*booking.Session, error)
	Delete(ctx context.Context, id string) error
}

// NewSessionStore builds the store selected by SESSION_STORE
func NewSessionStore(ctx context.Context, cfg *config.Config) (SessionStore, error) {
	switch cfg.SessionStore {
	case "redis":
		return NewRedisSessionStore(ctx, cfg.RedisURL, cfg.SessionTTL)
	case "", "memory":
		return NewMemorySessionStore(cfg.SessionTTL), nil
	}
	return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. Sessions are stored
// serialized so callers never share a live session value.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

// NewMemorySessionStore creates an in-memory store whose entries expire after ttl
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (m *MemorySessionStore) Save(ctx context.Context, session *booking.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode booking session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (*booking.Session, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && m.ttl > 0 && m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(entry.data)
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// RedisSessionStore keeps sessions in Redis as JSON values with a TTL
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore connects to redisURL and checks the connection
func NewRedisSessionStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisSessionStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSessionStoreWithClient(client, ttl), nil
}

// NewRedisSessionStoreWithClient wraps an existing client
func NewRedisSessionStoreWithClient(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (r *RedisSessionStore) key(id string) string {
	return "cafe:booking:" + id
}

func (r *RedisSessionStore) Save(ctx context.Context, session *booking.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode booking session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save booking session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*booking.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	return decodeSession(data)
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}

func decodeSession(data []byte) (*booking.Session, error) {
	var session booking.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode booking session: %w", err)
	}
	return &session, nil
}
