package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	sweepInterval  = 30 * time.Second
	maxMemoryItems = 10000
)

type memoryItem struct {
	value     string
	expiresAt time.Time // zero = sem expiração
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// MemoryClient é um Client em memória de processo único.
// Usado quando o Redis não responde na subida e nos testes.
type MemoryClient struct {
	mu        sync.Mutex
	items     map[string]memoryItem
	now       func() time.Time
	lastSweep time.Time
	maxItems  int
}

// NewMemoryClient cria um cache em memória vazio.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{items: make(map[string]memoryItem), now: time.Now, maxItems: maxMemoryItems}
}

func (c *MemoryClient) lookup(key string) (memoryItem, bool) {
	item, ok := c.items[key]
	if !ok {
		return memoryItem{}, false
	}
	if item.expired(c.now()) {
		delete(c.items, key)
		return memoryItem{}, false
	}
	return item, true
}

// sweep remove as chaves vencidas a cada sweepInterval e, no limite de tamanho,
// descarta entradas até abrir espaço para uma nova chave.
func (c *MemoryClient) sweep(key string) {
	now := c.now()
	if now.Sub(c.lastSweep) >= sweepInterval || len(c.items) >= c.maxItems {
		for k, item := range c.items {
			if item.expired(now) {
				delete(c.items, k)
			}
		}
		c.lastSweep = now
	}
	if _, ok := c.items[key]; ok {
		return
	}
	for k := range c.items {
		if len(c.items) < c.maxItems {
			break
		}
		delete(c.items, k)
	}
}

func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}

	item := memoryItem{value: s}
	if expiration > 0 {
		item.expiresAt = c.now().Add(expiration)
	}
	c.sweep(key)
	c.items[key] = item
	return nil
}

func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

func (c *MemoryClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

// Incr segue a semântica do Redis: chave ausente vale 0 e o TTL é mantido.
func (c *MemoryClient) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, _ := c.lookup(key)
	c.sweep(key)
	n := int64(0)
	if item.value != "" {
		parsed, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("valor da chave %s não é inteiro", key)
		}
		n = parsed
	}
	n++
	item.value = strconv.FormatInt(n, 10)
	c.items[key] = item
	return n, nil
}
