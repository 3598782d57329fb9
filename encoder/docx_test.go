package encoder

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic_data_generator/generator"
)

func readZipPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestDOCXEncoderPackage(t *testing.T) {
	body := generator.DocumentBody{Blocks: []string{
		"# R&D Roadmap",
		"## Goals\n\nShip <fast> & safe.\nSecond line.",
		"- item one",
		"2. step two",
	}}

	out, err := DOCXEncoder{}.EncodeDocument(body)
	require.NoError(t, err)

	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml"} {
		assert.NotEmpty(t, readZipPart(t, out, part), part)
	}

	doc := readZipPart(t, out, "word/document.xml")
	assert.Contains(t, doc, `<w:pStyle w:val="Title"/></w:pPr><w:r><w:t xml:space="preserve">R&amp;D Roadmap</w:t>`)
	assert.Contains(t, doc, `<w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t xml:space="preserve">Goals</w:t>`)
	assert.Contains(t, doc, `Ship &lt;fast&gt; &amp; safe.</w:t><w:br/><w:t xml:space="preserve">Second line.`)
	assert.Contains(t, doc, `<w:pStyle w:val="ListBullet"/></w:pPr><w:r><w:t xml:space="preserve">- item one`)
	assert.Contains(t, doc, `<w:pStyle w:val="ListNumber"/>`)
}
