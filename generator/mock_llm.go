package generator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// Table prompts get comma-separated rows, everything else a short Markdown section.
type MockLLM struct{}

var mockTableShape = regexp.MustCompile(`Create (\d+) rows of data with these columns: (.+)`)

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if match := mockTableShape.FindStringSubmatch(prompt.User); match != nil {
		rows, _ := strconv.Atoi(match[1])
		headers := strings.Split(match[2], ", ")
		var sb strings.Builder
		for i := 1; i <= rows; i++ {
			cells := make([]string, len(headers))
			for j, h := range headers {
				cells[j] = fmt.Sprintf("%s_%d", strings.TrimSpace(h), i)
			}
			sb.WriteString(strings.Join(cells, ","))
			sb.WriteString("\n")
		}
		return sb.String(), nil
	}

	lead, _, _ := strings.Cut(prompt.User, "\n")
	var sb strings.Builder
	sb.WriteString("## Overview\n\n")
	sb.WriteString("This placeholder text stands in for generated content. Request: ")
	sb.WriteString(strings.TrimSpace(lead))
	sb.WriteString("\n\n")
	sb.WriteString("- First key point\n- Second key point\n\n")
	sb.WriteString("1. Assess the current state\n2. Plan the rollout\n\n")
	sb.WriteString("This content is synthetic and for demonstration only.")
	return sb.String(), nil
}
