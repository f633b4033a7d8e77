package gate

import (
	"bytes"
	"crypto/sha256"
	"fmt"
)

// lockboxDigest is SHA256("correct horse battery staple").
var lockboxDigest = [sha256.Size]byte{
	0xc4, 0xbb, 0xcb, 0x1f, 0xbe, 0xc9, 0x9d, 0x65,
	0xbf, 0x59, 0xd8, 0x5c, 0x8c, 0xb6, 0x2e, 0xe2,
	0xdb, 0x96, 0x3f, 0x0f, 0xe1, 0x06, 0xf4, 0x83,
	0xd9, 0xaf, 0xa7, 0x3b, 0xd4, 0xe3, 0x9a, 0x8a,
}

// HashGate accepts input whose SHA-256 digest equals Digest.
type HashGate struct {
	Digest [sha256.Size]byte
}

// NewLockbox returns a gate expecting the compiled-in lockbox password.
func NewLockbox() *HashGate {
	return &HashGate{Digest: lockboxDigest}
}

// TrimLine removes exactly one trailing '\n' from line, if present.
func TrimLine(line []byte) []byte {
	return bytes.TrimSuffix(line, []byte{'\n'})
}

// Validate hashes line without its terminator and compares the full digest.
func (g *HashGate) Validate(line []byte) error {
	sum := sha256.Sum256(TrimLine(line))
	if !equal(sum[:], g.Digest[:]) {
		return fmt.Errorf("%w: digest %x", ErrInputMismatch, sum[:4])
	}
	return nil
}
