// Package challenge runs a single challenge attempt end to end:
// prompt, read one line, validate it, then disclose the flag or reject.
package challenge

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/atinyakov/flaggate/internal/disclosure"
	"github.com/atinyakov/flaggate/internal/gate"
)

// State is a step of an attempt. Every attempt ends in Disclose or Reject.
type State int

const (
	AwaitInput State = iota
	Validate
	Disclose
	Reject
)

func (s State) String() string {
	switch s {
	case AwaitInput:
		return "await_input"
	case Validate:
		return "validate"
	case Disclose:
		return "disclose"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Gate validates one input line.
type Gate interface {
	Validate(line []byte) error
}

// Challenge describes one challenge program.
type Challenge struct {
	// Name identifies the challenge in logs, routes and the attempt log.
	Name string
	// Prompt is written before the input is read.
	Prompt string
	// Accept is written before the flag on success.
	Accept string
	// Reject is the only text written on failure.
	Reject string
	// NewGate returns a gate for a single attempt.
	NewGate func() Gate
	// Flag is the disclosed resource.
	Flag disclosure.Source
}

// Outcome summarises a finished attempt.
type Outcome struct {
	ID        uuid.UUID
	Challenge string
	Accepted  bool
	State     State
	// Reason is the validation error for rejected attempts.
	Reason error
}

// Run plays one attempt over r and w. A rejected attempt is not an error;
// the returned error is reserved for I/O failures and an unavailable flag.
func (c *Challenge) Run(r io.Reader, w io.Writer) (Outcome, error) {
	out := Outcome{ID: uuid.New(), Challenge: c.Name, State: AwaitInput}

	if _, err := io.WriteString(w, c.Prompt); err != nil {
		return out, fmt.Errorf("write prompt: %w", err)
	}

	line, err := gate.ReadLine(r)
	if err != nil {
		return out, fmt.Errorf("read input: %w", err)
	}

	flag, err := c.check(&out, line)
	if err != nil {
		return out, err
	}

	if !out.Accepted {
		if _, err := io.WriteString(w, c.Reject); err != nil {
			return out, fmt.Errorf("write rejection: %w", err)
		}
		return out, nil
	}

	if _, err := io.WriteString(w, c.Accept+flag); err != nil {
		return out, fmt.Errorf("write flag: %w", err)
	}
	return out, nil
}

// Check validates input without any prompt text and returns the flag when
// it is accepted.
func (c *Challenge) Check(input []byte) (Outcome, string, error) {
	out := Outcome{ID: uuid.New(), Challenge: c.Name, State: AwaitInput}
	line, err := gate.ReadLine(bytes.NewReader(input))
	if err != nil {
		return out, "", fmt.Errorf("read input: %w", err)
	}
	flag, err := c.check(&out, line)
	return out, flag, err
}

func (c *Challenge) check(out *Outcome, line []byte) (string, error) {
	out.State = Validate
	if err := c.NewGate().Validate(line); err != nil {
		if !errors.Is(err, gate.ErrInputMismatch) && !errors.Is(err, gate.ErrInputTooShort) {
			return "", fmt.Errorf("validate: %w", err)
		}
		out.State = Reject
		out.Reason = err
		return "", nil
	}

	flag, err := c.Flag.Flag()
	if err != nil {
		return "", err
	}
	out.State = Disclose
	out.Accepted = true
	return flag, nil
}
