package encoder

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic_data_generator/generator"
)

func TestPDFEncoderProducesValidDocument(t *testing.T) {
	var body generator.DocumentBody
	body.Blocks = append(body.Blocks, "# Quarterly Report")
	for i := 1; i <= 6; i++ {
		text := ""
		for j := 0; j < 12; j++ {
			text += fmt.Sprintf("Paragraph %d of section %d with enough words to wrap across the line width. ", j, i)
		}
		body.AppendSection(fmt.Sprintf("Section %d", i), "## Findings\n\n"+text+"\n\n- bullet\n\n1. numbered")
	}
	body.Finalize()

	enc := NewPDFEncoder(PDFOptions{Validate: true})
	out, err := enc.EncodeDocument(body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	pages, err := PageCount(out)
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func TestPDFEncoderDefaults(t *testing.T) {
	enc := NewPDFEncoder(PDFOptions{})
	assert.Equal(t, "Letter", enc.opts.PageSize)
	assert.Equal(t, "Helvetica", enc.opts.FontFamily)

	out, err := NewPDFEncoder(PDFOptions{PageSize: "A4"}).EncodeDocument(generator.DocumentBody{Blocks: []string{"Title only"}})
	require.NoError(t, err)
	pages, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestPageCountRejectsGarbage(t *testing.T) {
	_, err := PageCount([]byte("not a pdf"))
	assert.Error(t, err)
}
