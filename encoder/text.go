package encoder

import (
	"strings"

	"synthetic_data_generator/generator"
)

const textBanner = "================================================================================\n" +
	"SYNTHETIC DOCUMENT - GENERATED CONTENT\n" +
	"================================================================================\n\n"

// TextEncoder writes the body as plain text under a fixed banner.
type TextEncoder struct{}

func (TextEncoder) EncodeDocument(body generator.DocumentBody) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(textBanner)
	sb.WriteString(StripMarkdownHeadings(body.Text()))
	return []byte(sb.String()), nil
}

// StripMarkdownHeadings removes heading markers at the start of each line,
// after any indentation, which is kept. '#' elsewhere in a line is left alone.
func StripMarkdownHeadings(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		rest := strings.TrimLeft(line, " \t")
		lines[i] = line[:len(line)-len(rest)] + stripHeadingMarker(rest)
	}
	return strings.Join(lines, "\n")
}
