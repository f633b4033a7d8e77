package gate

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestReadLine(t *testing.T) {
	long := strings.Repeat("x", 100)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty stream", "", ""},
		{"terminator only", "\n", "\n"},
		{"keeps terminator", "hello\nworld\n", "hello\n"},
		{"no terminator", "hello", "hello"},
		{"bounded", long + "\n", long[:LineCapacity-1]},
		{"exactly capacity", strings.Repeat("y", LineCapacity-2) + "\n", strings.Repeat("y", LineCapacity-2) + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLine(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReadLine_SharedBufferedReader(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("one\ntwo\n"))

	first, err := ReadLine(br)
	require.NoError(t, err)
	second, err := ReadLine(br)
	require.NoError(t, err)

	assert.Equal(t, "one\n", string(first))
	assert.Equal(t, "two\n", string(second))
}

func TestReadLine_Error(t *testing.T) {
	_, err := ReadLine(failingReader{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}
