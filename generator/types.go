package generator

import (
	"strings"

	"synthetic_data_generator/apperrors"
)

// DocumentType 文档体裁（决定分节模板与整篇提示词）。
type DocumentType string

const (
	Whitepaper DocumentType = "whitepaper"
	Article    DocumentType = "article"
	Report     DocumentType = "report"
	Proposal   DocumentType = "proposal"
	Design     DocumentType = "design"
)

// DocumentTypes lists the recognized types in display order.
var DocumentTypes = []DocumentType{Whitepaper, Article, Report, Proposal, Design}

func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseDocumentType 校验体裁字符串，未知类型返回 InvalidContentType。
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", invalidContentType(s)
	}
	return t, nil
}

func invalidContentType(s string) error {
	names := make([]string, len(DocumentTypes))
	for i, t := range DocumentTypes {
		names[i] = string(t)
	}
	return apperrors.Newf(apperrors.CodeInvalidContentType,
		"Invalid content type: %s. Choose from [%s]", s, strings.Join(names, ", "))
}

// Section 一个独立生成的章节；规划后不再修改。
type Section struct {
	Title         string
	Instruction   string
	TargetWords   int
	Ordinal       int
	TotalSections int
	DocumentPages int
}

// DisclaimerText closes every sectioned document.
const DisclaimerText = "This document has been synthetically generated using AI for demonstration purposes. " +
	"All content, data, recommendations, and analysis are artificially created and should not be used for actual " +
	"business decisions, implementation, or as factual reference material. Please consult appropriate experts and " +
	"conduct proper research for real-world applications."

// DocumentBody 按顺序拼装的正文块。
type DocumentBody struct {
	Blocks []string
}

// AppendSection adds one "# title" block.
func (b *DocumentBody) AppendSection(title, text string) {
	b.Blocks = append(b.Blocks, "# "+title+"\n\n"+text)
}

// Finalize appends the disclaimer block.
func (b *DocumentBody) Finalize() {
	b.AppendSection("Disclaimer", DisclaimerText)
}

// Text joins the blocks with blank lines.
func (b DocumentBody) Text() string {
	return strings.Join(b.Blocks, "\n\n")
}

// TableSpec 固定表头的矩形表格。
type TableSpec struct {
	Headers []string
	Rows    [][]string
}
