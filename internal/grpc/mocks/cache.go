package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockCacher is a function-based mock of the handler cache. Unset funcs
// behave like an empty cache.
type MockCacher struct {
	GetFunc   func(ctx context.Context, key string, dest any) error
	SetFunc   func(ctx context.Context, key string, value any, expiration time.Duration) error
	CloseFunc func() error
}

func (m *MockCacher) Get(ctx context.Context, key string, dest any) error {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key, dest)
	}
	return redis.Nil
}

func (m *MockCacher) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

func (m *MockCacher) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MemoryCache keeps JSON-encoded values in a map, the way redis would.
// Expiration is ignored.
type MemoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	Gets    int
	Sets    int
	setDone chan string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte), setDone: make(chan string, 64)}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	raw, ok := c.data[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(raw, dest)
}

func (c *MemoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = raw
	c.Sets++
	c.mu.Unlock()
	select {
	case c.setDone <- key:
	default:
	}
	return nil
}

func (c *MemoryCache) Close() error { return nil }

// WaitSet blocks until a Set completes or timeout passes, returning the key.
func (c *MemoryCache) WaitSet(timeout time.Duration) (string, bool) {
	select {
	case key := <-c.setDone:
		return key, true
	case <-time.After(timeout):
		return "", false
	}
}

// Keys returns the stored keys.
func (c *MemoryCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.data))
	for k := range c.data {
		out = append(out, k)
	}
	return out
}
