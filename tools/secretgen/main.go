// Package main regenerates the read_it build secrets: a random key and
// pair of secrets written as Go source, plus the flag file.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atinyakov/flaggate/internal/secretgen"
)

func main() {
	var (
		out        string
		flagFile   string
		flagValue  string
		flagFormat string
	)
	flag.StringVar(&out, "out", filepath.Join("internal", "gate", "secrets.go"), "path of the generated Go file")
	flag.StringVar(&flagFile, "flag-file", "flag", "path of the flag file to write")
	flag.StringVar(&flagValue, "flag", "", "flag to embed (required)")
	flag.StringVar(&flagFormat, "format", "picoCTF{%s}", "format used to shorten an over-long flag")
	flag.Parse()

	if flagValue == "" {
		log.Fatal("please provide -flag")
	}

	if err := generate(out, flagFile, flagValue, flagFormat); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("secrets written to %s, flag written to %s\n", out, flagFile)
}

// generate writes fresh secrets to out and the clamped flag to flagFile.
func generate(out, flagFile, flagValue, flagFormat string) error {
	clamped, err := secretgen.ClampFlag(rand.Reader, flagValue, flagFormat)
	if err != nil {
		return err
	}

	secrets, err := secretgen.Generate(rand.Reader)
	if err != nil {
		return err
	}
	src, err := secretgen.RenderSource(secrets)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, src, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := os.WriteFile(flagFile, []byte(clamped), 0600); err != nil {
		return fmt.Errorf("write %s: %w", flagFile, err)
	}
	return nil
}
