package topics

// Renderer turns topic content into terminal output. format is the topic
// file extension.
type Renderer interface {
	Render(content string, format string) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content, format string) string

func (f RendererFunc) Render(content, format string) string { return f(content, format) }

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// FormatRenderer picks a renderer by extension, falling back to plain text.
type FormatRenderer map[string]Renderer

func (f FormatRenderer) Render(content, format string) string {
	if r, ok := f[format]; ok {
		return r.Render(content, format)
	}
	return content
}
