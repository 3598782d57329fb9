package generator

import (
	"context"
	"errors"

	"synthetic_data_generator/logger"
)

const (
	// 三页及以上走分节生成
	IterativeMinPages   = 3
	SectionTokenHint    = 2000
	SingleShotTokenHint = 6000
)

// Assembler 根据页数选择单次或分节生成，拼装完整文档正文。
type Assembler struct {
	llm LLMClient
}

func NewAssembler(llm LLMClient) (*Assembler, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Assembler{llm: llm}, nil
}

// Assemble builds the document body. Model failures never abort the document:
// the affected block carries an "Error: ..." line instead. Only an unknown
// content type on the single-shot path or a cancelled context returns an error.
func (a *Assembler) Assemble(ctx context.Context, contentType DocumentType, pages int, subject string) (DocumentBody, error) {
	if pages >= IterativeMinPages {
		return a.assembleIterative(ctx, contentType, pages, subject)
	}
	return a.assembleSingleShot(ctx, contentType, pages, subject)
}

func (a *Assembler) assembleSingleShot(ctx context.Context, contentType DocumentType, pages int, subject string) (DocumentBody, error) {
	user, err := BuildWholeDocumentPrompt(contentType, pages, subject)
	if err != nil {
		return DocumentBody{}, err
	}
	logger.Info(ctx, "generating document in one call", "content_type", contentType, "pages", pages)
	text := a.complete(ctx, Prompt{System: documentSystemPrompt, User: user, MaxTokens: SingleShotTokenHint}, "document")
	return DocumentBody{Blocks: []string{text}}, nil
}

func (a *Assembler) assembleIterative(ctx context.Context, contentType DocumentType, pages int, subject string) (DocumentBody, error) {
	plan := PlanSections(contentType, pages)
	logger.Info(ctx, "generating document iteratively", "content_type", contentType, "pages", pages, "sections", len(plan))

	body := DocumentBody{Blocks: make([]string, 0, len(plan)+1)}
	for _, sec := range plan {
		if err := ctx.Err(); err != nil {
			return DocumentBody{}, err
		}
		logger.Info(ctx, "generating section", "ordinal", sec.Ordinal, "total", sec.TotalSections, "title", sec.Title)
		text := a.complete(ctx, Prompt{
			System:    documentSystemPrompt,
			User:      BuildSectionPrompt(sec, contentType, subject),
			MaxTokens: SectionTokenHint,
		}, sec.Title)
		body.AppendSection(sec.Title, text)
	}
	body.Finalize()

	logger.Info(ctx, "document assembled", "sections", len(plan), "words", WordCount(body.Text()))
	return body, nil
}

// complete 调用模型；失败时返回可见的错误文本，不中断整篇生成。
func (a *Assembler) complete(ctx context.Context, p Prompt, label string) string {
	out, err := a.llm.Complete(ctx, p)
	if err != nil {
		logger.Warn(ctx, "generation failed, embedding error text", "section", label, "error", err.Error())
		return "Error: " + err.Error()
	}
	return out
}
