package gate

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

const lockboxPassword = "correct horse battery staple"

func TestLockboxDigest(t *testing.T) {
	assert.Equal(t, sha256.Sum256([]byte(lockboxPassword)), lockboxDigest)
}

func TestTrimLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"\n", ""},
		{"abc\n", "abc"},
		{"abc\n\n", "abc\n"},
		{"abc \n", "abc "},
		{"abc\r\n", "abc\r"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(TrimLine([]byte(tt.in))), "TrimLine(%q)", tt.in)
	}
}

func TestHashGate_Validate(t *testing.T) {
	g := NewLockbox()

	assert.NoError(t, g.Validate([]byte(lockboxPassword+"\n")))
	assert.NoError(t, g.Validate([]byte(lockboxPassword)))

	for _, in := range []string{"", "\n", "wrong\n", lockboxPassword + " \n", lockboxPassword + "\n\n", " " + lockboxPassword} {
		assert.ErrorIs(t, g.Validate([]byte(in)), ErrInputMismatch, "input %q", in)
	}
}

func TestHashGate_RejectsSingleByteMutations(t *testing.T) {
	g := NewLockbox()
	for i := 0; i < len(lockboxPassword); i++ {
		mutated := []byte(lockboxPassword)
		mutated[i] ^= 0x01
		assert.ErrorIs(t, g.Validate(mutated), ErrInputMismatch, "mutation at %d", i)
	}
}
