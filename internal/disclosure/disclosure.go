// Package disclosure provides the flag resources revealed once a gate
// accepts its input.
package disclosure

import (
	"errors"
	"fmt"
	"os"

	"github.com/atinyakov/flaggate/internal/gate"
)

// ErrResourceUnavailable is returned when the flag cannot be produced.
var ErrResourceUnavailable = errors.New("flag resource unavailable")

// Source yields the flag text to disclose.
type Source interface {
	Flag() (string, error)
}

// FileSource reads the first line of a flag file.
type FileSource struct {
	// Path is the location of the flag file.
	Path string
}

// Flag opens the file and returns its first line, bounded the same way as
// user input. An empty file is treated as unavailable.
func (s FileSource) Flag() (string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	defer f.Close()

	line, err := gate.ReadLine(f)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrResourceUnavailable, s.Path, err)
	}
	if len(line) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrResourceUnavailable, s.Path)
	}
	return string(line), nil
}

// DefaultPrefix is the flag prefix baked into the lockbox flag. It may be
// replaced at link time with -ldflags "-X ...disclosure.DefaultPrefix=XYZ".
var DefaultPrefix = "ACI"

// FormattedSource assembles a flag from fixed tokens as
// "<header>: <prefix>{<code hex>_<word>_...}\n".
type FormattedSource struct {
	Header string
	Prefix string
	Code   uint32
	Words  []string
}

// NewLockboxSource returns the tokens of the lockbox flag.
func NewLockboxSource(prefix string) FormattedSource {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return FormattedSource{
		Header: "flag",
		Prefix: prefix,
		Code:   0xc0de,
		Words:  []string{"has", "mil", "grade", "crypto"},
	}
}

// Flag renders the tokens. It never fails.
func (s FormattedSource) Flag() (string, error) {
	body := fmt.Sprintf("%x", s.Code)
	for _, w := range s.Words {
		body += "_" + w
	}
	return fmt.Sprintf("%s: %s\x7b%s\x7d\n", s.Header, s.Prefix, body), nil
}
