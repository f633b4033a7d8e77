package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/flaggate/internal/challenge"
	"github.com/atinyakov/flaggate/internal/config"
	"github.com/atinyakov/flaggate/internal/gate"
)

func isolate(t *testing.T) []string {
	t.Helper()
	for _, k := range []string{"CONFIG", "FLAG_FILE", "LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return []string{"-env", filepath.Join(t.TempDir(), "absent.env")}
}

func readIt(opts *config.Options) *challenge.Challenge { return challenge.ReadIt(opts.FlagFile) }

func lockbox(*config.Options) *challenge.Challenge { return challenge.Lockbox("") }

func TestCLIMain_Lockbox(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode int
		wantOut  string
	}{
		{"correct", "correct horse battery staple\n", ExitAccepted, "flag: ACI{c0de_has_mil_grade_crypto}\n"},
		{"wrong", "wrong\n", ExitRejected, "Wrong password so no flag for you!\n"},
		{"empty", "\n", ExitRejected, "Wrong password so no flag for you!\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Main("lockbox", isolate(t), strings.NewReader(tt.input), &stdout, &stderr, Build{}, lockbox)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, "Enter the password to get the flag: "+tt.wantOut, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestCLIMain_ReadIt(t *testing.T) {
	flagPath := filepath.Join(t.TempDir(), "flag")
	require.NoError(t, os.WriteFile(flagPath, []byte("picoCTF{cli}\n"), 0600))
	args := append(isolate(t), "-flag", flagPath)

	var stdout, stderr bytes.Buffer
	code := Main("readit", args, strings.NewReader(string(gate.SolveReadIt())+"\n"), &stdout, &stderr, Build{}, readIt)
	assert.Equal(t, ExitAccepted, code)
	assert.True(t, strings.HasSuffix(stdout.String(), "Correct! Here is your flag:\npicoCTF{cli}\n"))

	stdout.Reset()
	code = Main("readit", args, strings.NewReader("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA\n"), &stdout, &stderr, Build{}, readIt)
	assert.Equal(t, ExitRejected, code)
	assert.True(t, strings.HasSuffix(stdout.String(), ">>> Sorry, that's not correct!\n"))
}

func TestCLIMain_ReadItMissingFlagIsFatal(t *testing.T) {
	args := append(isolate(t), "-flag", filepath.Join(t.TempDir(), "missing"))

	var stdout, stderr bytes.Buffer
	code := Main("readit", args, strings.NewReader(string(gate.SolveReadIt())+"\n"), &stdout, &stderr, Build{}, readIt)
	assert.Equal(t, ExitFatal, code)
	assert.Contains(t, stderr.String(), "flag resource unavailable")
	assert.NotContains(t, stdout.String(), "Correct!")
}

func TestCLIMain_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := append(isolate(t), "-version")

	code := Main("lockbox", args, strings.NewReader(""), &stdout, &stderr, Build{Version: "v1.2.3"}, lockbox)
	assert.Equal(t, ExitAccepted, code)
	assert.Equal(t, "Build version: v1.2.3\nBuild date: N/A\n", stdout.String())
}

func TestCLIMain_BadArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := Main("lockbox", append(isolate(t), "-nope"), strings.NewReader(""), &stdout, &stderr, Build{}, lockbox)
	assert.Equal(t, ExitFatal, code)

	stderr.Reset()
	code = Main("lockbox", append(isolate(t), "-l", "loud"), strings.NewReader(""), &stdout, &stderr, Build{}, lockbox)
	assert.Equal(t, ExitFatal, code)
	assert.Contains(t, stderr.String(), "parse log level")
}
