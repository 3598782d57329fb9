package encoder

import (
	"strconv"

	"synthetic_data_generator/apperrors"
	"synthetic_data_generator/generator"
)

// Options selects the optional capabilities of a registry.
type Options struct {
	PDFEnabled bool
	PDF        PDFOptions
}

// Registry 按格式分发编码器；PDF 能力可关闭。
type Registry struct {
	documents map[Format]DocumentEncoder
	tables    map[Format]TableEncoder
}

func NewRegistry(opts Options) *Registry {
	r := &Registry{
		documents: map[Format]DocumentEncoder{
			FormatDOCX: DOCXEncoder{},
			FormatTXT:  TextEncoder{},
			FormatHTML: NewHTMLEncoder(),
		},
		tables: map[Format]TableEncoder{
			FormatXLSX: XLSXEncoder{},
			FormatCSV:  CSVEncoder{},
		},
	}
	if opts.PDFEnabled {
		r.documents[FormatPDF] = NewPDFEncoder(opts.PDF)
	}
	return r
}

// Available reports whether f can be produced by this registry.
func (r *Registry) Available(f Format) bool {
	if _, ok := r.documents[f]; ok {
		return true
	}
	_, ok := r.tables[f]
	return ok
}

func (r *Registry) Document(f Format) (DocumentEncoder, error) {
	if enc, ok := r.documents[f]; ok {
		return enc, nil
	}
	return nil, r.missing(f)
}

func (r *Registry) Table(f Format) (TableEncoder, error) {
	if enc, ok := r.tables[f]; ok {
		return enc, nil
	}
	return nil, r.missing(f)
}

func (r *Registry) missing(f Format) error {
	if f == FormatPDF {
		return apperrors.New(apperrors.CodeCapabilityUnavailable, "PDF generation is not available on this server")
	}
	return apperrors.Newf(apperrors.CodeUnsupportedFormat, "Unsupported file format: %s", f)
}

// Formats lists the formats this registry can produce, in display order.
func (r *Registry) Formats() []Format {
	var out []Format
	for _, f := range AllFormats {
		if r.Available(f) {
			out = append(out, f)
		}
	}
	return out
}

// FormatOption describes how a UI should ask for size and content for one format.
type FormatOption struct {
	Format         Format   `json:"format"`
	Kind           Kind     `json:"kind"`
	SizeLabel      string   `json:"size_label"`
	SizeOptions    []string `json:"size_options"`
	ContentLabel   string   `json:"content_label"`
	ContentOptions []string `json:"content_options"`
}

var (
	pageOptions   = []int{1, 2, 3, 4, 5, 10, 20, 30, 40, 50}
	rowOptions    = []int{10, 20, 30, 40, 50, 100, 250, 500, 1000, 2000}
	columnOptions = []int{5, 10, 15, 20, 25, 30, 50, 100}
)

// Catalog returns the size and content choices of every available format.
func (r *Registry) Catalog() []FormatOption {
	types := make([]string, len(generator.DocumentTypes))
	for i, t := range generator.DocumentTypes {
		types[i] = string(t)
	}

	var out []FormatOption
	for _, f := range r.Formats() {
		opt := FormatOption{Format: f, Kind: f.Kind()}
		if f.Kind() == KindDocument {
			opt.SizeLabel = "Number of Pages"
			opt.SizeOptions = itoaAll(pageOptions)
			opt.ContentLabel = "Document Type"
			opt.ContentOptions = types
		} else {
			opt.SizeLabel = "Number of Rows"
			opt.SizeOptions = itoaAll(rowOptions)
			opt.ContentLabel = "Number of Columns"
			opt.ContentOptions = itoaAll(columnOptions)
		}
		out = append(out, opt)
	}
	return out
}

func itoaAll(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
