// Package secretgen generates the per-build secrets of the read_it challenge
// and renders them as Go source for the gate package.
package secretgen

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"go/format"
	"io"
	"math/big"
	"strings"
	"text/template"
)

// SecretLength is the length of the key and of both secrets.
const SecretLength = 16

// MaxFlagLength is the longest flag the read_it flag buffer reproduces intact.
const MaxFlagLength = 31

// Alphabet holds the printable characters secrets are drawn from: '(' to
// '[' and ']' to '~', so a secret never needs escaping in a C or Go string
// and never holds a quote or a backslash.
var Alphabet = func() string {
	var b strings.Builder
	for c := '('; c <= '['; c++ {
		b.WriteRune(c)
	}
	for c := ']'; c < 127; c++ {
		b.WriteRune(c)
	}
	return b.String()
}()

// Secrets are the compiled-in values of one read_it build.
type Secrets struct {
	Key     string
	Secret1 string
	Secret2 string
}

// RandomString draws n characters from alphabet using r.
func RandomString(r io.Reader, alphabet string, n int) (string, error) {
	if alphabet == "" {
		return "", errors.New("empty alphabet")
	}
	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(r, limit)
		if err != nil {
			return "", fmt.Errorf("random index: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// Generate draws a fresh key and pair of secrets from Alphabet.
func Generate(r io.Reader) (Secrets, error) {
	var s Secrets
	for _, dst := range []*string{&s.Key, &s.Secret1, &s.Secret2} {
		v, err := RandomString(r, Alphabet, SecretLength)
		if err != nil {
			return Secrets{}, err
		}
		*dst = v
	}
	return s, nil
}

// ClampFlag returns flag unchanged when it fits in MaxFlagLength. Otherwise
// it rebuilds the flag from flagFormat, replacing its "%s" with random hex
// so the result is at most 30 characters long.
func ClampFlag(r io.Reader, flag, flagFormat string) (string, error) {
	if len(flag) <= MaxFlagLength {
		return flag, nil
	}
	if !strings.Contains(flagFormat, "%s") {
		return "", fmt.Errorf("flag format %q has no %%s", flagFormat)
	}
	n := MaxFlagLength + 1 - len(flagFormat)
	if n < 0 {
		return "", fmt.Errorf("flag format %q is too long", flagFormat)
	}
	fill, err := RandomString(r, "0123456789abcdef", n)
	if err != nil {
		return "", err
	}
	return strings.Replace(flagFormat, "%s", fill, 1), nil
}

var sourceTemplate = template.Must(template.New("secrets").Parse(`// Code generated by secretgen. DO NOT EDIT.

package gate

var (
	readItSecret1 = Window([]byte({{printf "%q" .Secret1}}))
	readItSecret2 = Window([]byte({{printf "%q" .Secret2}}))
	readItKey = Window([]byte({{printf "%q" .Key}}))
)
`))

// RenderSource renders s as the gate package's secrets.go.
func RenderSource(s Secrets) ([]byte, error) {
	for name, v := range map[string]string{"key": s.Key, "secret1": s.Secret1, "secret2": s.Secret2} {
		if len(v) != SecretLength {
			return nil, fmt.Errorf("%s must be %d bytes, got %d", name, SecretLength, len(v))
		}
	}

	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("render secrets: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format secrets: %w", err)
	}
	return src, nil
}
