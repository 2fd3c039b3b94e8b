package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := Plain(&buf)

	require.NoError(t, p.Print(
		Entry{Kind: "unknown_option", Message: "unknown option '--prot'", Hint: "--port"},
		Entry{Message: "bad"},
	))

	assert.Equal(t,
		"error: unknown option '--prot' [unknown_option] (did you mean '--port'?)\nerror: bad\n",
		buf.String())
}

func TestNewOnBufferIsPlain(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	require.NoError(t, New(&buf).Print(Entry{Message: "x"}))
	assert.Equal(t, "error: x\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrintReturnsWriteError(t *testing.T) {
	assert.Error(t, Plain(failingWriter{}).Print(Entry{Message: "x"}))
}
