package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

type memoryCache struct {
	entries     *expirable.LRU[string, memoryEntry]
	serviceName string
	now         func() time.Time
}

// NewMemoryCache is an in-process Cache for tests and for running without
// redis. It holds at most size keys, none longer than maxTTL. A Set with a
// shorter ttl expires that key earlier.
func NewMemoryCache(serviceName string, size int, maxTTL time.Duration) Cache {
	return &memoryCache{
		entries:     expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		serviceName: serviceName,
		now:         time.Now,
	}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	e := memoryEntry{value: fmt.Sprint(value)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries.Add(key, e)
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	e, ok := m.entries.Get(key)
	if !ok {
		return "", nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.entries.Remove(key)
		return "", nil
	}
	return e.value, nil
}

func (m *memoryCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", m.serviceName, operation, key)
}
