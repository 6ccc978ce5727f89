package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	pkgredis "github.com/angelmondragon/lavka-miniapp/pkg/redis"
)

const defaultIdempotencyEntries = 10000

// MemoryIdempotencyStore keeps idempotency records in process for deployments
// without redis. Entries expire after the ttl given at construction.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	records *expirable.LRU[string, string]
}

func NewMemoryIdempotencyStore(size int, ttl time.Duration) *MemoryIdempotencyStore {
	if size <= 0 {
		size = defaultIdempotencyEntries
	}
	if ttl <= 0 {
		ttl = CriticalIdempotencyTTL
	}
	return &MemoryIdempotencyStore{records: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (s *MemoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.records.Get(key); ok {
		return v, nil
	}
	return "", pkgredis.ErrNil
}

// SetNX ignores ttl in favour of the store-wide expiry.
func (s *MemoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records.Contains(key) {
		return false, nil
	}
	str, _ := value.(string)
	s.records.Add(key, str)
	return true, nil
}

func (s *MemoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return strings.Join([]string{"idempotency", scope, id}, ":")
}
