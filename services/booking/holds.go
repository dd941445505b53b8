package booking

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/utils"
)

// HoldStore is a short-lived table of reservation holds keyed by interval.
// A hold marks that some caller recently passed an availability check for
// the interval and has not yet booked it.
type HoldStore interface {
	// Acquire takes the hold for key unless another token already holds it.
	// Re-acquiring with the same token refreshes the TTL and succeeds.
	Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	// Holder returns the token holding key, or "" when there is no active hold.
	Holder(ctx context.Context, key string) (string, error)
	// Release drops the hold for key.
	Release(ctx context.Context, key string) error
}

// HoldKey builds the canonical hold key for an interval. Timestamps are
// normalized to UTC so equal instants with different offsets collide.
func HoldKey(start, end time.Time) string {
	return utils.HoldKeyPrefix + start.UTC().Format(time.RFC3339) + "/" + end.UTC().Format(time.RFC3339)
}

// RedisHoldStore keeps holds in Redis with native expiry.
type RedisHoldStore struct {
	Client *redis.Client
}

// NewRedisHoldStore wraps an existing Redis client.
func NewRedisHoldStore(client *redis.Client) *RedisHoldStore {
	return &RedisHoldStore{Client: client}
}

func (s *RedisHoldStore) Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	ok, err := s.Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	holder, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		// Hold expired between SetNX and Get; retry once.
		return s.Client.SetNX(ctx, key, token, ttl).Result()
	}
	if err != nil {
		return false, err
	}
	if holder == token {
		_ = s.Client.Expire(ctx, key, ttl).Err()
		return true, nil
	}
	return false, nil
}

func (s *RedisHoldStore) Holder(ctx context.Context, key string) (string, error) {
	holder, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return holder, nil
}

func (s *RedisHoldStore) Release(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}

// MemoryHoldStore keeps holds in-process for deployments without Redis.
// Expiry is enforced on access; a background sweep reclaims lapsed entries.
type MemoryHoldStore struct {
	mu    sync.Mutex
	holds map[string]models.SlotHold
	now   func() time.Time
}

// NewMemoryHoldStore creates an in-memory store and starts its sweeper.
func NewMemoryHoldStore() *MemoryHoldStore {
	s := &MemoryHoldStore{
		holds: make(map[string]models.SlotHold),
		now:   time.Now,
	}
	go s.sweep(time.Minute)
	return s
}

func (s *MemoryHoldStore) Acquire(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if hold, ok := s.holds[key]; ok && !hold.Expired(now) && hold.Token != token {
		return false, nil
	}
	s.holds[key] = models.SlotHold{
		Key:       key,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	return true, nil
}

func (s *MemoryHoldStore) Holder(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.holds[key]
	if !ok || hold.Expired(s.now()) {
		return "", nil
	}
	return hold.Token, nil
}

func (s *MemoryHoldStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holds, key)
	return nil
}

func (s *MemoryHoldStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := s.now()
		for key, hold := range s.holds {
			if hold.Expired(now) {
				delete(s.holds, key)
			}
		}
		s.mu.Unlock()
	}
}
