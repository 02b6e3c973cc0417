// Package revocation tracks refresh tokens that were explicitly invalidated
// by logout before their natural expiration.
package revocation

import "sync"

// Registry is consulted before a refresh token is honoured.
type Registry interface {
	// Revoke marks token as unusable. Revoking twice is harmless.
	Revoke(token string)
	// IsRevoked reports whether token was revoked (exact string match).
	IsRevoked(token string) bool
}

// MemoryRegistry is a process-local Registry. Entries live until the
// process exits; nothing prunes tokens that have since expired.
type MemoryRegistry struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{tokens: make(map[string]struct{})}
}

func (r *MemoryRegistry) Revoke(token string) {
	r.mu.Lock()
	r.tokens[token] = struct{}{}
	r.mu.Unlock()
}

func (r *MemoryRegistry) IsRevoked(token string) bool {
	r.mu.RLock()
	_, ok := r.tokens[token]
	r.mu.RUnlock()
	return ok
}

// Len returns the number of revoked tokens held.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
