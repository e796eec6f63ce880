package topics

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/markers.md":       {Data: []byte("# Markers\n\nStyle markers")},
		"help/option-color.txt": {Data: []byte("Color help")},
		"help/config.txxt":      {Data: []byte("Configuration Guide")},
		"help/ignore.json":      {Data: []byte("{}")},
	}
}

func TestScan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm, err := New(testFS(), Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"markers", "option-color"}, tm.ListTopics())
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm, err := New(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"config"}, tm.ListTopics())

		topic, ok := tm.GetTopic("config")
		require.True(t, ok)
		assert.Equal(t, "Configuration Guide", topic.Content)
		assert.Equal(t, ".txxt", topic.Format())
	})
}

func TestGetTopic(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"markers", "markers", true},
		{"option-color", "option-color", true},
		{"color", "option-color", true},
		{"--color", "option-color", true},
		{"-color", "option-color", true},
		{"-c", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestWriteList(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	tm.WriteList(&buf, "lazypony")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  markers\n")
	assert.Contains(t, out, "Option topics:\n  --color\n")
	assert.Contains(t, out, "Use 'lazypony help <topic>'")

	empty, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)
	buf.Reset()
	empty.WriteList(&buf, "lazypony")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestFormatRenderer(t *testing.T) {
	upper := RendererFunc(func(content, format string) string { return strings.ToUpper(content) })
	r := FormatRenderer{".txt": upper}

	assert.Equal(t, "HI", r.Render("hi", ".txt"))
	assert.Equal(t, "hi", r.Render("hi", ".md"))
}

func TestGlamourRendererWithoutColor(t *testing.T) {
	r := NewGlamourRenderer(false)
	out := r.Render("# Title\n\nBody text", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Body text")
	assert.NotContains(t, out, "38;5;")

	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func newRoot(tm *TopicManager, buf *bytes.Buffer) *cobra.Command {
	root := &cobra.Command{Use: "lazypony"}
	root.AddCommand(&cobra.Command{Use: "demo", Short: "Show the palette", Run: func(*cobra.Command, []string) {}})
	out := func() io.Writer { return buf }
	root.AddCommand(tm.Command(out))
	tm.Install(root, out)
	root.SetOut(buf)
	root.SetErr(buf)
	return root
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"help topic", []string{"help", "color"}, "Color help"},
		{"help topics", []string{"help", "topics"}, "Available help topics:"},
		{"topics list", []string{"topics"}, "General topics:"},
		{"topics show", []string{"topics", "--", "--color"}, "Color help"},
		{"help command", []string{"help", "demo"}, "Show the palette"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, err := New(testFS(), Options{})
			require.NoError(t, err)
			var buf bytes.Buffer
			root := newRoot(tm, &buf)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestTopicsUnknown(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)
	var buf bytes.Buffer
	root := newRoot(tm, &buf)
	root.SetArgs([]string{"topics", "nope"})
	assert.Error(t, root.Execute())
}
