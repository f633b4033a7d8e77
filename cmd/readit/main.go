// Package main is the read_it challenge: find the hidden message in the
// binary, type it in, and the contents of ./flag are revealed.
package main

import (
	"os"

	"github.com/atinyakov/flaggate/internal/challenge"
	"github.com/atinyakov/flaggate/internal/cli"
	"github.com/atinyakov/flaggate/internal/config"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	os.Exit(cli.Main(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr,
		cli.Build{Version: version, Date: buildDate},
		func(opts *config.Options) *challenge.Challenge {
			return challenge.ReadIt(opts.FlagFile)
		}))
}
