// Package service provides the challenge business logic: it plays attempts
// through the registered challenges and records them in the attempt log.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/flaggate/internal/challenge"
	"github.com/atinyakov/flaggate/internal/models"
)

// ErrUnknownChallenge is returned for a challenge name that is not registered.
var ErrUnknownChallenge = errors.New("unknown challenge")

// AttemptRepository defines the persistence operations required by the
// attempt service.
type AttemptRepository interface {
	// RecordAttempt stores a finished attempt.
	RecordAttempt(ctx context.Context, a models.Attempt) error
	// Stats aggregates the attempts of one challenge.
	Stats(ctx context.Context, challenge string) (models.Stats, error)
}

// Result is the outcome of a checked attempt.
type Result struct {
	Attempt models.Attempt
	// Flag is set only for accepted attempts.
	Flag string
}

// AttemptService plays attempts against registered challenges.
type AttemptService struct {
	repo       AttemptRepository
	challenges map[string]*challenge.Challenge
	log        *zap.Logger
	now        func() time.Time
}

// NewAttemptService constructs a service serving the given challenges.
func NewAttemptService(repo AttemptRepository, log *zap.Logger, challenges ...*challenge.Challenge) *AttemptService {
	byName := make(map[string]*challenge.Challenge, len(challenges))
	for _, c := range challenges {
		byName[c.Name] = c
	}
	return &AttemptService{repo: repo, challenges: byName, log: log, now: time.Now}
}

// Challenges returns the registered challenge names in sorted order.
func (s *AttemptService) Challenges() []string {
	names := make([]string, 0, len(s.challenges))
	for name := range s.challenges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *AttemptService) lookup(name string) (*challenge.Challenge, error) {
	c, ok := s.challenges[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChallenge, name)
	}
	return c, nil
}

// Play runs an interactive attempt over r and w, as a network session does.
func (s *AttemptService) Play(ctx context.Context, name, remote string, r io.Reader, w io.Writer) (models.Attempt, error) {
	c, err := s.lookup(name)
	if err != nil {
		return models.Attempt{}, err
	}

	out, err := c.Run(r, w)
	var a models.Attempt
	// A decided attempt is recorded even if the player hung up before
	// reading the answer.
	if out.State == challenge.Disclose || out.State == challenge.Reject {
		a = s.record(ctx, out, remote)
	}
	if err != nil {
		return a, fmt.Errorf("play %s: %w", name, err)
	}
	return a, nil
}

// Check validates input directly, without prompts.
func (s *AttemptService) Check(ctx context.Context, name, remote string, input []byte) (Result, error) {
	c, err := s.lookup(name)
	if err != nil {
		return Result{}, err
	}

	out, flag, err := c.Check(input)
	if err != nil {
		return Result{}, fmt.Errorf("check %s: %w", name, err)
	}
	return Result{Attempt: s.record(ctx, out, remote), Flag: flag}, nil
}

// Stats returns the aggregated attempts of a registered challenge.
func (s *AttemptService) Stats(ctx context.Context, name string) (models.Stats, error) {
	if _, err := s.lookup(name); err != nil {
		return models.Stats{}, err
	}
	return s.repo.Stats(ctx, name)
}

// record stores the attempt. A storage failure is logged and does not change
// what the player sees.
func (s *AttemptService) record(ctx context.Context, out challenge.Outcome, remote string) models.Attempt {
	a := models.Attempt{
		ID:        out.ID,
		Challenge: out.Challenge,
		Accepted:  out.Accepted,
		Remote:    remote,
		CreatedAt: s.now(),
	}

	fields := []zap.Field{
		zap.String("id", a.ID.String()),
		zap.String("challenge", a.Challenge),
		zap.Bool("accepted", a.Accepted),
		zap.String("remote", remote),
	}
	if out.Reason != nil {
		fields = append(fields, zap.NamedError("reason", out.Reason))
	}
	s.log.Info("attempt finished", fields...)

	if err := s.repo.RecordAttempt(ctx, a); err != nil {
		s.log.Error("failed to record attempt", zap.String("id", a.ID.String()), zap.Error(err))
	}
	return a
}
