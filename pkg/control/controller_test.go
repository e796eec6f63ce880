package control_test

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
)

func TestANSIController(t *testing.T) {
	c := control.NewANSIController()
	assert.Equal(t, "ansi", c.Name())

	t.Run("apply writes and flushes", func(t *testing.T) {
		var buf bytes.Buffer
		w := bufio.NewWriter(&buf)
		err := c.Apply(w, control.NewRequest(control.Red, control.NoColor, control.Bright))
		require.NoError(t, err)
		assert.Equal(t, "\x1b[1;31m", buf.String())
	})

	t.Run("empty request writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Apply(&buf, control.Request{}))
		assert.Empty(t, buf.String())
	})

	t.Run("reset", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Reset(&buf))
		assert.Equal(t, control.ResetCode, buf.String())
	})

	t.Run("size of a non terminal", func(t *testing.T) {
		_, _, err := c.Size(&bytes.Buffer{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotSupported))
	})

	t.Run("sink errors propagate", func(t *testing.T) {
		err := c.Apply(failingWriter{}, control.NewRequest(control.Red, control.NoColor))
		assert.ErrorIs(t, err, errSink)
	})
}

func TestNullController(t *testing.T) {
	c := control.NewNullController()
	var buf bytes.Buffer

	assert.NoError(t, c.Apply(&buf, control.NewRequest(control.Red, control.Blue, control.Bright)))
	assert.NoError(t, c.Reset(&buf))
	assert.Empty(t, buf.String())

	_, _, err := c.Size(&buf)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotSupported))
}

var errSink = stderrors.New("sink closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errSink }
