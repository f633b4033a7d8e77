package repository

import (
	"context"
	"sync"

	"github.com/atinyakov/flaggate/internal/models"
)

// MemoryAttemptRepository keeps attempts in memory. It is used when no
// database is configured.
type MemoryAttemptRepository struct {
	mu       sync.Mutex
	attempts map[string]models.Attempt
}

// NewMemoryAttemptRepository returns an empty in-memory repository.
func NewMemoryAttemptRepository() *MemoryAttemptRepository {
	return &MemoryAttemptRepository{attempts: make(map[string]models.Attempt)}
}

// RecordAttempt stores a. Re-recording the same ID is a no-op.
func (r *MemoryAttemptRepository) RecordAttempt(_ context.Context, a models.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.attempts[a.ID.String()]; !ok {
		r.attempts[a.ID.String()] = a
	}
	return nil
}

// Stats counts all and accepted attempts for a challenge.
func (r *MemoryAttemptRepository) Stats(_ context.Context, challenge string) (models.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var st models.Stats
	for _, a := range r.attempts {
		if a.Challenge != challenge {
			continue
		}
		st.Attempts++
		if a.Accepted {
			st.Solves++
		}
	}
	return st, nil
}
