package cache

import (
	"strings"
	"sync"
	"time"
)

// Key builds a namespaced cache key, e.g. Key("transcript", candidateID)
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// MemoryStore is an in-memory key-value store with expiration.
// Transcripts are cached here between a processing run and any later
// reanalysis, so nothing ever touches disk.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	done  chan struct{}
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store and starts its janitor
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		done:  make(chan struct{}),
	}

	go store.cleanupExpired()

	return store
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = &memoryItem{
		value:      value,
		expireTime: time.Now().Add(expiration),
	}
}

// Get retrieves a value by key (returns false if not found or expired)
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists {
		return "", false
	}

	if time.Now().After(item.expireTime) {
		return "", false
	}

	return item.value, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// Close stops the janitor goroutine. Safe to call once.
func (ms *MemoryStore) Close() {
	close(ms.done)
}

// cleanupExpired periodically removes expired items until Close
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ms.done:
			return
		case <-ticker.C:
			ms.mu.Lock()
			now := time.Now()
			for key, item := range ms.items {
				if now.After(item.expireTime) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}
