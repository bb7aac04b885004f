package repo

import (
	"context"
	"sync"
	"time"
)

// Session is what the identity provider materializes for a logged-in subject.
type Session struct {
	UserID    string    `json:"user_id"` // provider subject
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionRepo interface {
	Create(ctx context.Context, token string, s Session) error
	Lookup(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type memorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{sessions: map[string]Session{}}
}

func (r *memorySessionRepo) Create(_ context.Context, token string, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = s
	return nil
}

func (r *memorySessionRepo) Lookup(_ context.Context, token string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *memorySessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}
