// Package encoder turns assembled document bodies and tables into file bytes.
package encoder

import (
	"strings"

	"synthetic_data_generator/apperrors"
	"synthetic_data_generator/generator"
)

// Format is the user-facing format identifier.
type Format string

const (
	FormatDOCX Format = "Word Document (.docx)"
	FormatPDF  Format = "PDF Document (.pdf)"
	FormatTXT  Format = "Text File (.txt)"
	FormatHTML Format = "HTML Document (.html)"
	FormatXLSX Format = "Excel Spreadsheet (.xlsx)"
	FormatCSV  Format = "CSV File (.csv)"
)

// AllFormats in display order.
var AllFormats = []Format{FormatDOCX, FormatPDF, FormatTXT, FormatHTML, FormatXLSX, FormatCSV}

type Kind string

const (
	KindDocument Kind = "document"
	KindTable    Kind = "table"
)

var formatInfo = map[Format]struct {
	kind   Kind
	suffix string
	mime   string
}{
	FormatDOCX: {KindDocument, ".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	FormatPDF:  {KindDocument, ".pdf", "application/pdf"},
	FormatTXT:  {KindDocument, ".txt", "text/plain; charset=utf-8"},
	FormatHTML: {KindDocument, ".html", "text/html; charset=utf-8"},
	FormatXLSX: {KindTable, ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	FormatCSV:  {KindTable, ".csv", "text/csv; charset=utf-8"},
}

// ParseFormat matches a format identifier exactly (surrounding spaces ignored).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimSpace(s))
	if _, ok := formatInfo[f]; !ok {
		return "", apperrors.Newf(apperrors.CodeUnsupportedFormat, "Unsupported file format: %s", s)
	}
	return f, nil
}

func (f Format) Kind() Kind       { return formatInfo[f].kind }
func (f Format) Suffix() string   { return formatInfo[f].suffix }
func (f Format) MIMEType() string { return formatInfo[f].mime }

// DocumentEncoder renders a document body.
type DocumentEncoder interface {
	EncodeDocument(body generator.DocumentBody) ([]byte, error)
}

// TableEncoder renders a table with its header row.
type TableEncoder interface {
	EncodeTable(spec generator.TableSpec) ([]byte, error)
}
