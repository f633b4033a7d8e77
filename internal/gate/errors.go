package gate

import "errors"

var (
	// ErrInputMismatch is returned when the transformed or hashed input
	// differs from the stored reference value.
	ErrInputMismatch = errors.New("input does not match")
	// ErrInputTooShort is returned when the input line does not carry
	// enough bytes to fill both comparison windows.
	ErrInputTooShort = errors.New("input too short")
)
