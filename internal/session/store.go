package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession у пользователя нет действующего токена
var ErrNoSession = errors.New("session not found")

// Store хранилище bearer-токенов пациентов
type Store interface {
	Save(ctx context.Context, telegramID int64, token string) error
	Token(ctx context.Context, telegramID int64) (string, error)
	Delete(ctx context.Context, telegramID int64) error
}

func tokenKey(telegramID int64) string {
	return "session:token:" + strconv.FormatInt(telegramID, 10)
}

// RedisStore токены в Redis с TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создаёт хранилище поверх готового клиента
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, telegramID int64, token string) error {
	if err := s.client.Set(ctx, tokenKey(telegramID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Token(ctx context.Context, telegramID int64) (string, error) {
	token, err := s.client.Get(ctx, tokenKey(telegramID)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Delete(ctx context.Context, telegramID int64) error {
	if err := s.client.Del(ctx, tokenKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore токены в памяти процесса, когда Redis не настроен
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int64]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore создаёт хранилище в памяти
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, telegramID int64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{token: token}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[telegramID] = entry
	return nil
}

func (s *MemoryStore) Token(_ context.Context, telegramID int64) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[telegramID]
	s.mu.RUnlock()

	if !ok {
		return "", ErrNoSession
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, telegramID)
		s.mu.Unlock()
		return "", ErrNoSession
	}
	return entry.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, telegramID)
	return nil
}
