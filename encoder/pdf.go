package encoder

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"synthetic_data_generator/generator"
)

// PDFOptions controls page layout of the PDF encoder.
type PDFOptions struct {
	PageSize   string
	FontFamily string
	// Validate re-reads the output with pdfcpu before returning it.
	Validate bool
}

type PDFEncoder struct {
	opts PDFOptions
}

func NewPDFEncoder(opts PDFOptions) *PDFEncoder {
	if opts.PageSize == "" {
		opts.PageSize = "Letter"
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "Helvetica"
	}
	return &PDFEncoder{opts: opts}
}

type pdfStyle struct {
	style      string
	size       float64
	lineHeight float64
	indent     float64
	after      float64
}

var pdfStyles = map[BlockKind]pdfStyle{
	BlockTitle:     {"B", 18, 9, 0, 8},
	BlockHeading1:  {"B", 14, 7, 0, 3},
	BlockHeading2:  {"B", 12, 6, 0, 2},
	BlockBullet:    {"", 11, 5.5, 6, 2},
	BlockNumbered:  {"", 11, 5.5, 6, 2},
	BlockParagraph: {"", 11, 5.5, 0, 4},
}

const pdfMargin = 25.0

func (e *PDFEncoder) EncodeDocument(body generator.DocumentBody) ([]byte, error) {
	pdf := fpdf.New("P", "mm", e.opts.PageSize, "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Synthetic Document", true)
	pdf.AddPage()

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, b := range Classify(body.Text()) {
		st := pdfStyles[b.Kind]
		pdf.SetFont(e.opts.FontFamily, st.style, st.size)
		pdf.SetX(pdfMargin + st.indent)
		pdf.MultiCell(0, st.lineHeight, tr(b.Text), "", "L", false)
		pdf.Ln(st.after)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf: layout: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	if e.opts.Validate {
		if _, err := PageCount(buf.Bytes()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// PageCount validates a PDF and returns its number of pages.
func PageCount(data []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("pdf: validate: %w", err)
	}
	return ctx.PageCount, nil
}
