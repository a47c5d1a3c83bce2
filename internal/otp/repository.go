package otp

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

// Repository persists login attempt sessions between requests.
type Repository interface {
	// Get retrieves the session for an email. Returns apperrors.ErrNotFound
	// when no attempt is in progress.
	Get(ctx context.Context, email string) (*Session, error)

	// Save persists a session, overwriting any existing one for the email.
	Save(ctx context.Context, sess *Session) error

	// Delete removes the session for an email.
	Delete(ctx context.Context, email string) error
}

// MemoryRepository is an in-process Repository for tests and single-node
// development runs.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryRepository creates an empty in-memory session store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]Session)}
}

// Get retrieves the session for an email.
func (r *MemoryRepository) Get(_ context.Context, email string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[email]
	if !ok {
		return nil, apperrors.NotFound("otp session", email)
	}
	copied := sess
	return &copied, nil
}

// Save persists a session.
func (r *MemoryRepository) Save(_ context.Context, sess *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess.UpdatedAt = time.Now().UTC()
	r.sessions[sess.Email] = *sess
	return nil
}

// Delete removes the session for an email.
func (r *MemoryRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, email)
	return nil
}
