package order

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for operations against an unknown or
// already-closed draft session.
var ErrSessionNotFound = errors.New("draft session not found")

// Sessions is an in-memory registry of live order-creation drafts keyed
// by session id. Each draft lives from Open until Close (cancel or
// submit); nothing is persisted until the owning service submits.
type Sessions struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{drafts: make(map[string]*Draft)}
}

// Open starts a new draft session and returns its id.
func (s *Sessions) Open(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[id] = NewDraft()
	return id, nil
}

// With runs fn against the draft for id while holding the registry
// lock, so draft mutations from concurrent requests never interleave.
func (s *Sessions) With(ctx context.Context, id string, fn func(*Draft) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(draft)
}

// Close discards the draft for id. Closing an unknown session is a no-op.
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}
