package challenge

import (
	"github.com/atinyakov/flaggate/internal/disclosure"
	"github.com/atinyakov/flaggate/internal/gate"
)

// Names of the built-in challenges.
const (
	ReadItName  = "readit"
	LockboxName = "lockbox"
)

// ReadIt returns the XOR obfuscation challenge, disclosing the first line
// of the file at flagPath.
func ReadIt(flagPath string) *Challenge {
	return &Challenge{
		Name:    ReadItName,
		Prompt:  "There's a hidden message in this binary\nFind it, and get a flag!\n>>> ",
		Accept:  "Correct! Here is your flag:\n",
		Reject:  "Sorry, that's not correct!\n",
		NewGate: func() Gate { return gate.NewReadIt() },
		Flag:    disclosure.FileSource{Path: flagPath},
	}
}

// Lockbox returns the password challenge. An empty prefix selects
// disclosure.DefaultPrefix.
func Lockbox(prefix string) *Challenge {
	return &Challenge{
		Name:    LockboxName,
		Prompt:  "Enter the password to get the flag: ",
		Reject:  "Wrong password so no flag for you!\n",
		NewGate: func() Gate { return gate.NewLockbox() },
		Flag:    disclosure.NewLockboxSource(prefix),
	}
}
