package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic_data_generator/generator"
)

func TestHTMLEncoderRendersAndSanitizes(t *testing.T) {
	body := generator.DocumentBody{Blocks: []string{
		"# Cloud <Strategy>",
		"## Scope\n\nSome **bold** text.<script>alert(1)</script>",
		"- one\n- two",
	}}

	out, err := NewHTMLEncoder().EncodeDocument(body)
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "<title>Cloud &lt;Strategy&gt;</title>")
	assert.Contains(t, page, "<strong>bold</strong>")
	assert.Contains(t, page, "<li>one</li>")
	assert.Contains(t, page, "<h2>Scope</h2>")
	assert.NotContains(t, page, "<script>")
}

func TestHTMLEncoderDefaultTitle(t *testing.T) {
	out, err := NewHTMLEncoder().EncodeDocument(generator.DocumentBody{Blocks: []string{"no headings here"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>"+defaultHTMLTitle+"</title>")
}
