// Package gate implements the input checks guarding each challenge flag:
// an XOR obfuscation gate and a SHA-256 password gate.
package gate

import "fmt"

const (
	// WindowSize is the length of each compared input window.
	WindowSize = 16
	// xorConstant is the fixed mask applied by TransformA.
	xorConstant = 0x17
)

// Window is one 16-byte slice of the user input.
type Window [WindowSize]byte

// TransformA masks every byte of w with a fixed constant. Applying it twice
// yields w again.
func TransformA(w Window) Window {
	var out Window
	for i := range w {
		out[i] = w[i] ^ xorConstant
	}
	return out
}

// KeySchedule owns the mutable key used by TransformB. Every call to
// TransformB advances the key, so a schedule must not be shared between
// independent validation attempts.
type KeySchedule struct {
	key Window
}

// NewKeySchedule returns a schedule starting from initial.
func NewKeySchedule(initial Window) *KeySchedule {
	return &KeySchedule{key: initial}
}

// Key returns a copy of the current key.
func (k *KeySchedule) Key() Window {
	return k.key
}

// advance shifts every key byte right by four and reduces it modulo 0x7f.
func (k *KeySchedule) advance() {
	for i := range k.key {
		k.key[i] = (k.key[i] >> 4) % 0x7f
	}
}

// TransformB advances the key once and masks w with the advanced key.
func (k *KeySchedule) TransformB(w Window) Window {
	k.advance()

	var out Window
	for i := range w {
		out[i] = w[i] ^ k.key[i]
	}
	return out
}

// ObfuscationGate accepts input whose first window masks to Secret1 and
// whose second window masks to Secret2.
type ObfuscationGate struct {
	Secret1  Window
	Secret2  Window
	schedule *KeySchedule
}

// NewObfuscationGate returns a gate with its own key schedule seeded from key.
func NewObfuscationGate(secret1, secret2, key Window) *ObfuscationGate {
	return &ObfuscationGate{
		Secret1:  secret1,
		Secret2:  secret2,
		schedule: NewKeySchedule(key),
	}
}

// NewReadIt returns a gate loaded with the compiled-in read_it secrets and a
// fresh key.
func NewReadIt() *ObfuscationGate {
	return NewObfuscationGate(readItSecret1, readItSecret2, readItKey)
}

// Validate checks line, which may still carry its line terminator. Both
// windows are transformed before either comparison, so the key advances
// exactly once per call whatever the outcome.
func (g *ObfuscationGate) Validate(line []byte) error {
	if len(line) < 2*WindowSize {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrInputTooShort, len(line), 2*WindowSize)
	}

	var first, second Window
	copy(first[:], line[:WindowSize])
	copy(second[:], line[WindowSize:2*WindowSize])

	part1 := TransformA(first)
	part2 := g.schedule.TransformB(second)

	if !equal(part1[:], g.Secret1[:]) {
		return fmt.Errorf("%w: first window", ErrInputMismatch)
	}
	if !equal(part2[:], g.Secret2[:]) {
		return fmt.Errorf("%w: second window", ErrInputMismatch)
	}
	return nil
}

// Solve builds the 32-byte input accepted by a gate whose key schedule
// starts from key.
func Solve(secret1, secret2, key Window) []byte {
	part1 := TransformA(secret1)
	part2 := NewKeySchedule(key).TransformB(secret2)

	answer := make([]byte, 0, 2*WindowSize)
	answer = append(answer, part1[:]...)
	return append(answer, part2[:]...)
}

// SolveReadIt is Solve applied to the compiled-in read_it secrets.
func SolveReadIt() []byte {
	return Solve(readItSecret1, readItSecret2, readItKey)
}
