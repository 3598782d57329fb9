package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的一次请求。MaxTokens 为 0 时使用提供方默认值。
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

const (
	singleShotWordsPerPage = 275

	documentSystemPrompt = "You are a professional writer producing synthetic demonstration content. " +
		"Respond with the requested content only, formatted as Markdown."
)

// BuildSectionPrompt 生成单个章节的提示词。
func BuildSectionPrompt(sec Section, contentType DocumentType, subject string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s for a %s about %s.\n\n", sec.Instruction, contentType, subject))
	sb.WriteString("REQUIREMENTS:\n")
	sb.WriteString(fmt.Sprintf("- Write approximately %d words for this section\n", sec.TargetWords))
	sb.WriteString(fmt.Sprintf("- Include detailed explanations with specific examples related to %s\n", subject))
	sb.WriteString("- Use professional, technical language appropriate for the topic\n")
	sb.WriteString("- Make this section substantial and comprehensive with multiple paragraphs\n")
	sb.WriteString("- Include subsections, bullet points, and numbered lists where appropriate\n")
	sb.WriteString("- Provide concrete examples and detailed analysis\n")
	sb.WriteString(fmt.Sprintf("- This is section %d of %d in a %d-page document\n\n",
		sec.Ordinal, sec.TotalSections, sec.DocumentPages))
	sb.WriteString(fmt.Sprintf("Topic: %s\n", subject))
	sb.WriteString(fmt.Sprintf("Document Type: %s\n", contentType))
	sb.WriteString(fmt.Sprintf("Section: %s\n\n", sec.Title))
	sb.WriteString("Write detailed, professional content that thoroughly covers this section with substantial depth and analysis.")
	return sb.String()
}

// BuildWholeDocumentPrompt 生成整篇文档的提示词（短文档单次生成）。
// 页码与章节的对应关系随页数变化；未知体裁返回 InvalidContentType。
func BuildWholeDocumentPrompt(contentType DocumentType, pages int, subject string) (string, error) {
	words := pages * singleShotWordsPerPage

	var opening, closing string
	var structure, content []string
	switch contentType {
	case Whitepaper:
		opening = fmt.Sprintf("Write a comprehensive technical whitepaper on %s", subject)
		structure = []string{
			"- Page 1: Executive Summary (1 full page)",
			"- Page 2: Introduction and Background (1 full page)",
			when(pages > 4, fmt.Sprintf("- Pages 3-%d: Technical Analysis, Methodology, Implementation Details (%d pages)", pages-2, pages-4)),
			when(pages > 3, fmt.Sprintf("- Page %d: Findings and Results (1 full page)", pages-1)),
			fmt.Sprintf("- Page %d: Conclusions and References (1 full page)", pages),
		}
		content = []string{
			"- Write detailed paragraphs with 4-6 sentences each",
			"- Include specific technical details and examples",
			"- Add subsections with descriptive headings",
			"- Ensure each section is substantive and detailed",
			fmt.Sprintf("- The document must be exactly %d pages when printed", pages),
		}
		closing = "Make it detailed, professional, and comprehensive."
	case Article:
		opening = fmt.Sprintf("Write a detailed article about %s", subject)
		structure = []string{
			"- Page 1: Introduction and overview",
			when(pages > 2, fmt.Sprintf("- Pages 2-%d: Main content with multiple detailed sections (%d pages)", pages-1, pages-2)),
			fmt.Sprintf("- Page %d: Conclusion and key takeaways", pages),
		}
		content = []string{
			"- Write in-depth paragraphs with 5-7 sentences each",
			"- Include practical examples and case studies",
			"- Add multiple subsections with detailed explanations",
			"- Use bullet points and numbered lists where appropriate",
			fmt.Sprintf("- The article must be exactly %d pages when printed", pages),
		}
		closing = "Include multiple sections, subsections, and practical examples."
	case Report:
		opening = fmt.Sprintf("Write a comprehensive business report on %s", subject)
		structure = []string{
			"- Page 1: Executive Summary and Key Findings",
			"- Page 2: Introduction and Methodology",
			when(pages > 4, fmt.Sprintf("- Pages 3-%d: Detailed Analysis and Data (%d pages)", pages-2, pages-4)),
			when(pages > 3, fmt.Sprintf("- Page %d: Strategic Recommendations (1 full page)", pages-1)),
			fmt.Sprintf("- Page %d: Conclusions and Next Steps", pages),
		}
		content = []string{
			"- Include detailed data analysis descriptions",
			"- Add charts and graphs descriptions (describe what they would show)",
			"- Write comprehensive strategic recommendations",
			"- Include market analysis and competitive landscape",
			fmt.Sprintf("- The report must be exactly %d pages when printed", pages),
		}
		closing = "Make it detailed and professional with strategic recommendations."
	case Proposal:
		opening = fmt.Sprintf("Write a detailed project proposal for %s", subject)
		structure = []string{
			"- Page 1: Project Overview and Objectives",
			"- Page 2: Detailed Scope and Requirements",
			when(pages > 3, "- Page 3: Timeline and Milestones"),
			when(pages > 4, "- Page 4: Budget and Resource Allocation"),
			when(pages > 4, fmt.Sprintf("- Pages 5-%d: Implementation Plan and Risk Analysis", pages-1)),
			fmt.Sprintf("- Page %d: Expected Outcomes and Success Metrics", pages),
		}
		content = []string{
			"- Detailed project scope with specific deliverables",
			"- Comprehensive timeline with multiple phases",
			"- Detailed budget breakdown with justifications",
			"- Risk analysis with mitigation strategies",
			fmt.Sprintf("- The proposal must be exactly %d pages when printed", pages),
		}
		closing = "Include scope, timeline, budget considerations and risk analysis."
	case Design:
		opening = fmt.Sprintf("Write a detailed design document for an IT project on %s", subject)
		structure = []string{
			"- Page 1: System Overview and Architecture",
			"- Page 2: Technical Requirements and Components",
			when(pages > 3, "- Page 3: Interface Design and Data Flow"),
			when(pages > 4, "- Page 4: Security and Performance Considerations"),
			when(pages > 4, fmt.Sprintf("- Pages 5-%d: Implementation Details and Testing", pages-1)),
			fmt.Sprintf("- Page %d: Deployment and Maintenance", pages),
		}
		content = []string{
			"- Detailed system architecture descriptions",
			"- Technical component specifications",
			"- Interface design with specific examples",
			"- Data flow diagrams descriptions",
			"- Security protocols and performance metrics",
			fmt.Sprintf("- The document must be exactly %d pages when printed", pages),
		}
		closing = "Include architecture, components, interfaces and data flow."
	default:
		return "", invalidContentType(string(contentType))
	}
	content = append(content, fmt.Sprintf("- Target approximately %d total words", words))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s that is EXACTLY %d pages long (approximately %d words).\n\n", opening, pages, words))
	sb.WriteString("STRUCTURE REQUIREMENTS:\n")
	writeLines(&sb, structure)
	sb.WriteString("\nCONTENT REQUIREMENTS:\n")
	writeLines(&sb, content)
	sb.WriteString("\n")
	sb.WriteString(closing)
	sb.WriteString(" Note at the end that this is synthetically created data.")
	return sb.String(), nil
}

func when(cond bool, line string) string {
	if !cond {
		return ""
	}
	return line
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, line := range lines {
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
