package stream_test

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/stream"
)

// recorder keeps every chunk written and counts flushes.
type recorder struct {
	chunks  []string
	flushes int
}

func (r *recorder) Write(p []byte) (int, error) {
	r.chunks = append(r.chunks, string(p))
	return len(p), nil
}

func (r *recorder) Flush() error {
	r.flushes++
	return nil
}

func marker(fg control.Color, attrs ...control.Attribute) string {
	return control.Encode(control.NewRequest(fg, control.NoColor, attrs...))
}

func TestWriteSplitsPlainTextAndMarkers(t *testing.T) {
	rec := &recorder{}
	s := stream.New(rec, control.NewNullController())

	text := "plain" + marker(control.Red, control.Bright) + "plain2"
	n, err := s.Write([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, len(text), n)

	assert.Equal(t, []string{"plain", "plain2"}, rec.chunks)
	assert.Equal(t, 3, rec.flushes, "one flush per chunk")
}

func TestWriteStripsSentinels(t *testing.T) {
	rec := &recorder{}
	s := stream.New(rec, control.NewANSIController())

	_, err := s.WriteString("a\x01\x1b[1;32m\x02b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "\x1b[1;32m", "b"}, rec.chunks)
}

func TestWriteThroughANSINormalizesMarkers(t *testing.T) {
	var buf bytes.Buffer
	s := stream.New(&buf, control.NewANSIController())

	_, err := fmt.Fprintf(s, "x\x1b[99;1;33mwarn\x1b[0my")
	require.NoError(t, err)
	assert.Equal(t, "x\x1b[1;33mwarn\x1b[0my", buf.String())
}

func TestWriteWithoutMarkers(t *testing.T) {
	rec := &recorder{}
	s := stream.New(rec, control.NewANSIController())

	_, err := s.WriteString("just text\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"just text\n"}, rec.chunks)

	_, err = s.WriteString("")
	require.NoError(t, err)
	assert.Len(t, rec.chunks, 1)
}

func TestAdjacentMarkers(t *testing.T) {
	var buf bytes.Buffer
	s := stream.New(&buf, control.NewNullController())

	_, err := s.WriteString(marker(control.Red) + marker(control.NoColor, control.Default) + "ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", buf.String())
}

func TestUnknownCodesAreInert(t *testing.T) {
	console := control.NewMemoryConsole(0x17)
	ctrl, err := control.NewNativeController(console)
	require.NoError(t, err)
	before := ctrl.State()

	var buf bytes.Buffer
	s := stream.New(&buf, ctrl)
	_, err = s.WriteString("a\x1b[99mb\x1b[mc")
	require.NoError(t, err)

	assert.Equal(t, "abc", buf.String())
	assert.Equal(t, uint16(0x17), console.Word())
	assert.Empty(t, console.History)
	assert.Equal(t, before, ctrl.State())
}

// Writing an encoded request through the stream must leave the native
// console exactly where a direct Apply would.
func TestMarkerRoundTripMatchesDirectApply(t *testing.T) {
	colors := append([]control.Color{control.NoColor}, control.Colors()...)
	var requests []control.Request
	for _, a := range control.Attributes() {
		for _, fg := range colors {
			for _, bg := range colors {
				requests = append(requests, control.NewRequest(fg, bg, a))
			}
		}
	}
	requests = append(requests,
		control.NewRequest(control.Red, control.NoColor, control.Bright, control.Reverse, control.Dim),
		control.NewRequest(control.NoColor, control.Blue, control.Hidden, control.Reverse),
	)

	// each request is checked on top of a few different histories
	prefixes := [][]control.Request{
		nil,
		{control.NewRequest(control.NoColor, control.NoColor, control.Reverse)},
		{control.NewRequest(control.Green, control.Black, control.Dim)},
	}

	for _, prefix := range prefixes {
		for _, req := range requests {
			direct, directConsole := native(t)
			viaStream, streamConsole := native(t)
			s := stream.New(&bytes.Buffer{}, viaStream)

			for _, p := range prefix {
				require.NoError(t, direct.Apply(nil, p))
				require.NoError(t, viaStream.Apply(nil, p))
			}

			require.NoError(t, direct.Apply(nil, req))
			_, err := s.WriteString("before" + control.Encode(req) + "after")
			require.NoError(t, err)

			assert.Equal(t, directConsole.Word(), streamConsole.Word(), "word after %s", req)
			assert.Equal(t, direct.State(), viaStream.State(), "state after %s", req)
		}
	}
}

func native(t *testing.T) (*control.NativeController, *control.MemoryConsole) {
	t.Helper()
	console := control.NewMemoryConsole(0x07)
	c, err := control.NewNativeController(console)
	require.NoError(t, err)
	return c, console
}

var errBroken = stderrors.New("broken pipe")

type brokenWriter struct{ after int }

func (b *brokenWriter) Write(p []byte) (int, error) {
	if b.after <= 0 {
		return 0, errBroken
	}
	b.after--
	return len(p), nil
}

func TestSinkErrorsPropagate(t *testing.T) {
	s := stream.New(&brokenWriter{after: 1}, control.NewANSIController())

	_, err := s.WriteString("ok" + marker(control.Red) + "lost")
	assert.ErrorIs(t, err, errBroken)

	_, err = s.Write([]byte("more"))
	assert.ErrorIs(t, err, errBroken)
}

func TestRawWriteSkipsMarkerHandling(t *testing.T) {
	var buf bytes.Buffer
	s := stream.New(&buf, control.NewNullController())

	require.NoError(t, s.RawWrite("\x1b[1mraw"))
	assert.Equal(t, "\x1b[1mraw", buf.String())
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	s := stream.New(&buf, control.NewNullController())

	require.NoError(t, s.WriteLines([]string{"one", marker(control.Red) + "two"}))
	assert.Equal(t, "one\ntwo", buf.String())
}

func TestApplyAndReset(t *testing.T) {
	var buf bytes.Buffer
	s := stream.New(&buf, control.NewANSIController())

	require.NoError(t, s.Apply(control.NewRequest(control.Cyan, control.NoColor)))
	require.NoError(t, s.Reset())
	assert.Equal(t, "\x1b[36m"+control.ResetCode, buf.String())
	assert.False(t, s.IsTerminal())
	assert.Equal(t, ^uintptr(0), s.Fd())
}

func TestNilControllerDefaultsToNull(t *testing.T) {
	var buf bytes.Buffer
	s := stream.New(&buf, nil)

	_, err := s.WriteString(marker(control.Red) + "x")
	require.NoError(t, err)
	assert.Equal(t, "x", buf.String())
	assert.Equal(t, "none", s.Controller().Name())
}

// A pair of streams on one native console never interleaves the
// read-modify-write of the attribute word.
func TestPairSerializesWrites(t *testing.T) {
	console := control.NewMemoryConsole(0x07)
	ctrl, err := control.NewNativeController(console)
	require.NoError(t, err)

	var out, errOut safeBuffer
	stdout, stderr := stream.Pair(&out, &errOut, ctrl)

	reverse := control.Encode(control.NewRequest(control.NoColor, control.NoColor, control.Reverse))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = stdout.WriteString("o" + reverse)
		}()
		go func() {
			defer wg.Done()
			_, _ = stderr.WriteString("e" + reverse)
		}()
	}
	wg.Wait()

	// an even number of reverses restores the start
	assert.Equal(t, uint16(0x07), console.Word())
	assert.Equal(t, 50, len(out.String()))
	assert.Equal(t, 50, len(errOut.String()))
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
