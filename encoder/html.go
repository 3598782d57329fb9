package encoder

import (
	"bytes"
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"synthetic_data_generator/generator"
)

const defaultHTMLTitle = "Synthetic Document"

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 820px; margin: 2em auto; line-height: 1.6; color: #222; }
h1, h2 { color: #2f5496; }
</style>
</head>
<body>
%s
</body>
</html>
`

// HTMLEncoder renders Markdown through goldmark and sanitizes the result.
type HTMLEncoder struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewHTMLEncoder() *HTMLEncoder {
	return &HTMLEncoder{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

func (e *HTMLEncoder) EncodeDocument(body generator.DocumentBody) ([]byte, error) {
	text := body.Text()
	var rendered bytes.Buffer
	if err := e.md.Convert([]byte(text), &rendered); err != nil {
		return nil, fmt.Errorf("html: render markdown: %w", err)
	}
	clean := e.policy.SanitizeBytes(rendered.Bytes())

	title := generator.ExtractTitle(text)
	if title == "" {
		title = defaultHTMLTitle
	}
	return []byte(fmt.Sprintf(htmlPage, html.EscapeString(title), clean)), nil
}
