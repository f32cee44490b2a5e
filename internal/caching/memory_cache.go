package caching

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// memoryCacheService keeps entries in process. Used when no redis address is configured.
type memoryCacheService struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCacheService() CacheService {
	return newMemoryCacheService(time.Now)
}

func newMemoryCacheService(now func() time.Time) *memoryCacheService {
	return &memoryCacheService{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (m *memoryCacheService) GetImageProbe(ctx context.Context, url string) (bool, bool, error) {
	val, err := m.GetString(ctx, imageProbeKey(url))
	if err != nil || val == "" {
		return false, false, err
	}
	return val == "1", true, nil
}

func (m *memoryCacheService) SetImageProbe(ctx context.Context, url string, exists bool, ttl time.Duration) error {
	return m.SetString(ctx, imageProbeKey(url), encodeProbe(exists), ttl)
}

func (m *memoryCacheService) InvalidateAllCache(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		if strings.HasPrefix(key, keyPrefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *memoryCacheService) GetString(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", nil
	}
	return entry.value, nil
}

func (m *memoryCacheService) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryCacheService) Ping(ctx context.Context) error {
	return nil
}

func (m *memoryCacheService) Close() error {
	return nil
}
