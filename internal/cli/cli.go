// Package cli holds the main routine shared by the single-shot challenge
// binaries.
package cli

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/atinyakov/flaggate/internal/challenge"
	"github.com/atinyakov/flaggate/internal/config"
	"github.com/atinyakov/flaggate/internal/logger"
)

// Exit codes of the challenge binaries.
const (
	ExitAccepted = 0
	ExitRejected = 1
	ExitFatal    = 2
)

// Build carries the link-time build metadata.
type Build struct {
	Version string
	Date    string
}

// Main parses args, builds the challenge from the options and plays one
// attempt over stdin and stdout. It returns the process exit code.
func Main(
	name string,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
	build Build,
	newChallenge func(*config.Options) *challenge.Challenge,
) int {
	opts, err := config.ParseArgs(name, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitAccepted
		}
		fmt.Fprintln(stderr, err)
		return ExitFatal
	}

	if opts.ShowVersion {
		fmt.Fprintf(stdout, "Build version: %s\nBuild date: %s\n",
			cmp.Or(build.Version, "N/A"), cmp.Or(build.Date, "N/A"))
		return ExitAccepted
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(opts.LogLevel); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFatal
	}

	c := newChallenge(opts)
	out, err := c.Run(stdin, stdout)
	if err != nil {
		log.Log.Error("challenge failed",
			zap.String("challenge", c.Name),
			zap.String("state", out.State.String()),
			zap.Error(err))
		fmt.Fprintf(stderr, "%s: %v\n", c.Name, err)
		return ExitFatal
	}

	log.Log.Debug("attempt finished",
		zap.String("id", out.ID.String()),
		zap.String("challenge", c.Name),
		zap.Bool("accepted", out.Accepted))
	if !out.Accepted {
		return ExitRejected
	}
	return ExitAccepted
}
