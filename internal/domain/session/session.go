// Package session tracks issued psychometric question sets awaiting answers.
package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Registry records which question ids were issued to a caller so the
// scoring path can validate the returned answers against exactly that set.
type Registry interface {
	// Issue records questionIDs under a fresh token and returns the token.
	Issue(ctx context.Context, questionIDs []string) string

	// Claim returns the question ids recorded under token and removes the
	// entry; a token can be claimed at most once. The second return is
	// false for unknown (or already claimed, or evicted) tokens.
	Claim(ctx context.Context, token string) ([]string, bool)

	Size() int64
}

// node is a singly-linked list entry; head is the most recently issued.
type node struct {
	token string
	ids   []string
	next  *node
}

// inMemoryRegistry implements Registry with a map plus a linked list used
// to evict the oldest session once maxSize is reached. Sessions are cheap
// and short-lived; losing the oldest under pressure only forces that
// caller to re-request questions.
type inMemoryRegistry struct {
	mu       sync.Mutex
	sessions map[string]*node
	head     *node
	maxSize  int
	size     atomic.Int64
}

// Default bound on concurrently open sessions.
const defaultMaxSize = 10000

// NewInMemoryRegistry creates a bounded in-memory registry.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.sessions = make(map[string]*node)
	return r
}

// Issue records questionIDs under a fresh uuid token, evicting the oldest
// open session when the registry is full.
func (r *inMemoryRegistry) Issue(ctx context.Context, questionIDs []string) string {
	ids := make([]string, len(questionIDs))
	copy(ids, questionIDs)
	token := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSize > 0 && len(r.sessions) >= r.maxSize {
		r.evictOldest()
	}

	n := &node{token: token, ids: ids, next: r.head}
	r.head = n
	r.sessions[token] = n
	r.size.Add(1)
	return token
}

// Claim looks up and removes the session recorded under token.
func (r *inMemoryRegistry) Claim(ctx context.Context, token string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	delete(r.sessions, token)
	r.unlink(n)
	r.size.Add(-1)
	return n.ids, true
}

// Size returns the number of open sessions.
func (r *inMemoryRegistry) Size() int64 {
	return r.size.Load()
}

// unlink removes n from the list. Must be called with r.mu held.
func (r *inMemoryRegistry) unlink(n *node) {
	if r.head == n {
		r.head = n.next
		return
	}
	current := r.head
	for current != nil && current.next != n {
		current = current.next
	}
	if current != nil {
		current.next = n.next
	}
}

// evictOldest drops the tail of the list, the least recently issued
// session. Must be called with r.mu held.
func (r *inMemoryRegistry) evictOldest() {
	if r.head == nil {
		return
	}
	if r.head.next == nil {
		delete(r.sessions, r.head.token)
		r.head = nil
		r.size.Add(-1)
		return
	}
	var prev *node
	current := r.head
	for current.next != nil {
		prev = current
		current = current.next
	}
	prev.next = nil
	delete(r.sessions, current.token)
	r.size.Add(-1)
}
