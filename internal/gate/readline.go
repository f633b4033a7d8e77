package gate

import (
	"bufio"
	"crypto/subtle"
	"errors"
	"io"
)

// LineCapacity is the size of the input buffer, terminator included.
const LineCapacity = 64

// ReadLine reads one line from r the way fgets fills a LineCapacity buffer:
// at most LineCapacity-1 bytes are captured and reading stops after the
// first '\n', which is kept. Hitting EOF before any byte is read yields an
// empty line and a nil error.
//
// When r is not a *bufio.Reader it is wrapped in one, so any bytes buffered
// past the line are lost to the caller.
func ReadLine(r io.Reader) ([]byte, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, LineCapacity)
	}

	line := make([]byte, 0, LineCapacity)
	for len(line) < LineCapacity-1 {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return line, nil
			}
			return line, err
		}
		line = append(line, b)
		if b == '\n' {
			break
		}
	}
	return line, nil
}

// equal reports whether a and b hold the same bytes in time that does not
// depend on where they differ.
func equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
