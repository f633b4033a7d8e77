// Package models defines the core data structures shared by the attempt
// log, the services and the HTTP API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one recorded validation attempt against a challenge.
type Attempt struct {
	// ID is the unique identifier of the attempt.
	ID uuid.UUID `json:"id"`
	// Challenge is the name of the challenge played.
	Challenge string `json:"challenge"`
	// Accepted reports whether the flag was disclosed.
	Accepted bool `json:"accepted"`
	// Remote is the peer address, empty for local runs.
	Remote string `json:"remote,omitempty"`
	// CreatedAt is when the attempt finished.
	CreatedAt time.Time `json:"created_at"`
}

// Stats aggregates the attempts recorded for a challenge.
type Stats struct {
	// Attempts is the total number of attempts.
	Attempts int64 `json:"attempts"`
	// Solves is the number of accepted attempts.
	Solves int64 `json:"solves"`
}
