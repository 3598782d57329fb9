package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic_data_generator/apperrors"
)

func TestBuildSectionPrompt(t *testing.T) {
	plan := PlanSections(Whitepaper, 5)
	prompt := BuildSectionPrompt(plan[1], Whitepaper, "quantum networking")

	assert.Contains(t, prompt, "Write a detailed introduction covering the background, context, and importance of the topic for a whitepaper about quantum networking.")
	assert.Contains(t, prompt, "- Write approximately 300 words for this section")
	assert.Contains(t, prompt, "- This is section 2 of 5 in a 5-page document")
	assert.Contains(t, prompt, "Topic: quantum networking")
	assert.Contains(t, prompt, "Document Type: whitepaper")
	assert.Contains(t, prompt, "Section: Introduction and Background")
}

func TestBuildWholeDocumentPromptStructure(t *testing.T) {
	short, err := BuildWholeDocumentPrompt(Whitepaper, 2, "edge caching")
	require.NoError(t, err)
	assert.Contains(t, short, "technical whitepaper on edge caching that is EXACTLY 2 pages long (approximately 550 words)")
	assert.Contains(t, short, "- Page 2: Conclusions and References (1 full page)")
	assert.NotContains(t, short, "Pages 3-")
	assert.NotContains(t, short, "Findings and Results")
	assert.Contains(t, short, "- Target approximately 550 total words")
	assert.Contains(t, short, "Note at the end that this is synthetically created data.")

	long, err := BuildWholeDocumentPrompt(Whitepaper, 6, "edge caching")
	require.NoError(t, err)
	assert.Contains(t, long, "- Pages 3-4: Technical Analysis, Methodology, Implementation Details (2 pages)")
	assert.Contains(t, long, "- Page 5: Findings and Results (1 full page)")

	article, err := BuildWholeDocumentPrompt(Article, 1, "tea")
	require.NoError(t, err)
	assert.Contains(t, article, "- Page 1: Introduction and overview")
	assert.NotContains(t, article, "Main content")
	assert.NotContains(t, article, "\n\n\n")

	design, err := BuildWholeDocumentPrompt(Design, 7, "payments")
	require.NoError(t, err)
	assert.Contains(t, design, "- Pages 5-6: Implementation Details and Testing")
	assert.Contains(t, design, "- Page 7: Deployment and Maintenance")
}

func TestBuildWholeDocumentPromptAllTypes(t *testing.T) {
	for _, ct := range DocumentTypes {
		for _, pages := range []int{1, 2} {
			prompt, err := BuildWholeDocumentPrompt(ct, pages, "x")
			require.NoError(t, err, "type=%s", ct)
			assert.NotEmpty(t, prompt)
		}
	}
}

func TestBuildWholeDocumentPromptRejectsUnknownType(t *testing.T) {
	_, err := BuildWholeDocumentPrompt(DocumentType("memo"), 1, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidContentType))
	assert.Contains(t, apperrors.UserMessage(err), "Invalid content type: memo")
}

func TestParseDocumentType(t *testing.T) {
	got, err := ParseDocumentType(" report ")
	require.NoError(t, err)
	assert.Equal(t, Report, got)

	_, err = ParseDocumentType("memo")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidContentType))
}
