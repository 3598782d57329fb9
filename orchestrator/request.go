package orchestrator

import (
	"strconv"
	"strings"

	"synthetic_data_generator/apperrors"
	"synthetic_data_generator/encoder"
	"synthetic_data_generator/generator"
)

const defaultSubject = "general topics"

// Request 一次生成请求。DocumentType 仅对文档格式有效，Columns 仅对表格格式有效。
type Request struct {
	Format       encoder.Format
	Size         int
	DocumentType generator.DocumentType
	Columns      int
	Subject      string
}

// Limits bounds the size parameters of a request.
type Limits struct {
	MaxPages   int
	MaxRows    int
	MaxColumns int
}

var DefaultLimits = Limits{MaxPages: 50, MaxRows: 2000, MaxColumns: 100}

// ParseRequest converts the string inputs of a form or command line into a Request.
// The document type is kept as given; Generate rejects unknown types.
func ParseRequest(format, size, content, subject string) (Request, error) {
	f, err := encoder.ParseFormat(format)
	if err != nil {
		return Request{}, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil {
		return Request{}, apperrors.Newf(apperrors.CodeInvalidParam, "Invalid size: %s", size)
	}

	req := Request{Format: f, Size: n, Subject: subject}
	if f.Kind() == encoder.KindDocument {
		req.DocumentType = generator.DocumentType(strings.TrimSpace(content))
		return req, nil
	}
	cols, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return Request{}, apperrors.Newf(apperrors.CodeInvalidParam, "Invalid number of columns: %s", content)
	}
	req.Columns = cols
	return req, nil
}

// Secondary renders the content parameter the way the UI shows it.
func (r Request) Secondary() string {
	if r.Format.Kind() == encoder.KindTable {
		return strconv.Itoa(r.Columns)
	}
	return string(r.DocumentType)
}

func normalizeSubject(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultSubject
	}
	return s
}

func checkRange(name string, v, max int) error {
	if v < 1 || v > max {
		return apperrors.Newf(apperrors.CodeInvalidParam, "%s must be between 1 and %d", name, max)
	}
	return nil
}
