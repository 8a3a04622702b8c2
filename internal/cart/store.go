package cart

import "sync"

// Store keeps one cart per session, keyed by the opaque session token. Carts
// are ephemeral: they live exactly as long as the session that owns them.
type Store interface {
	// Load returns the cart for sid. An unknown sid yields an empty cart.
	Load(sid string) (map[string]int, error)
	Save(sid string, items map[string]int) error
	Clear(sid string) error
}

// MemoryStore is a mutex-guarded in-process Store. The cart has no
// concurrency contract beyond last-write-wins per session, so a plain map
// under a lock is enough.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]map[string]int)}
}

func (s *MemoryStore) Load(sid string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.carts[sid]))
	for pid, qty := range s.carts[sid] {
		out[pid] = qty
	}
	return out, nil
}

func (s *MemoryStore) Save(sid string, items map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(map[string]int, len(items))
	for pid, qty := range items {
		stored[pid] = qty
	}
	s.carts[sid] = stored
	return nil
}

func (s *MemoryStore) Clear(sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sid)
	return nil
}
