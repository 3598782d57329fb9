package generator

const (
	// single-shot prompts use singleShotWordsPerPage instead
	wordsPerPage       = 300
	minPlannedSections = 3
)

type sectionTemplate struct {
	title       string
	instruction string
}

var sectionTemplates = map[DocumentType][]sectionTemplate{
	Whitepaper: {
		{"Executive Summary", "Write a comprehensive 1-page executive summary with key findings and recommendations"},
		{"Introduction and Background", "Write a detailed introduction covering the background, context, and importance of the topic"},
		{"Technical Analysis", "Write an in-depth technical analysis section with detailed explanations and technical specifications"},
		{"Methodology", "Write a detailed methodology section explaining approaches, frameworks, and implementation strategies"},
		{"Implementation Details", "Write comprehensive implementation details including step-by-step processes and technical requirements"},
		{"Results and Findings", "Write detailed results and findings with data analysis and performance metrics"},
		{"Future Considerations", "Write about future implications, scalability, and evolution of the technology"},
		{"Conclusions and References", "Write comprehensive conclusions with actionable recommendations and references"},
	},
	Article: {
		{"Introduction", "Write a comprehensive introduction that sets the context and engages the reader"},
		{"Main Analysis", "Write the main analysis section with detailed content and thorough examination"},
		{"Case Studies and Examples", "Write detailed case studies and real-world examples with specific scenarios"},
		{"Industry Impact and Implications", "Write about industry impact, market implications, and economic effects"},
		{"Current Trends and Developments", "Write about current trends, recent developments, and emerging patterns"},
		{"Best Practices and Recommendations", "Write about best practices, recommendations, and actionable insights"},
		{"Future Outlook", "Write about future trends, predictions, and long-term implications"},
		{"Conclusion", "Write a comprehensive conclusion that summarizes key points and provides final thoughts"},
	},
	Report: {
		{"Executive Summary", "Write an executive summary with key findings, recommendations, and critical insights"},
		{"Introduction and Methodology", "Write introduction covering scope, objectives, and detailed methodology"},
		{"Market Analysis", "Write detailed market analysis including size, trends, competitors, and opportunities"},
		{"Data Analysis and Insights", "Write comprehensive data analysis with statistical insights and interpretations"},
		{"Strategic Recommendations", "Write strategic recommendations with detailed implementation guidance"},
		{"Risk Assessment", "Write thorough risk assessment including potential challenges and mitigation strategies"},
		{"Implementation Plan", "Write detailed implementation plan with timelines, resources, and success metrics"},
		{"Financial Analysis", "Write financial analysis including costs, benefits, and ROI projections"},
		{"Conclusions and Next Steps", "Write conclusions with clear next steps and action items"},
	},
	Proposal: {
		{"Project Overview and Objectives", "Write project overview covering goals, scope, and strategic alignment"},
		{"Scope and Requirements", "Write detailed scope definition and comprehensive requirements analysis"},
		{"Timeline and Milestones", "Write comprehensive timeline with detailed milestones and deliverable schedules"},
		{"Budget and Resource Allocation", "Write detailed budget breakdown and resource allocation plans"},
		{"Implementation Strategy", "Write implementation strategy with detailed methodology and approach"},
		{"Risk Analysis and Mitigation", "Write comprehensive risk analysis with detailed mitigation strategies"},
		{"Team and Expertise", "Write about team composition, expertise, and organizational capabilities"},
		{"Quality Assurance", "Write about quality assurance processes, testing, and validation procedures"},
		{"Expected Outcomes and Success Metrics", "Write about expected outcomes, success criteria, and measurement methods"},
	},
	Design: {
		{"System Overview and Architecture", "Write system overview covering high-level architecture and design principles"},
		{"Technical Requirements", "Write detailed technical requirements including functional and non-functional specifications"},
		{"Interface Design and User Experience", "Write about interface design, user experience, and interaction patterns"},
		{"Data Architecture and Flow", "Write about data architecture, database design, and information flow"},
		{"Security and Performance", "Write about security considerations, performance requirements, and scalability"},
		{"Implementation Details", "Write detailed implementation specifications including technologies and frameworks"},
		{"Testing and Quality Assurance", "Write about testing strategies, quality assurance processes, and validation methods"},
		{"Deployment and Infrastructure", "Write about deployment architecture, infrastructure requirements, and operational considerations"},
		{"Maintenance and Support", "Write about maintenance procedures, support processes, and long-term sustainability"},
	},
}

// 超出模板长度时循环追加的通用章节。
var fillerSections = []sectionTemplate{
	{"Additional Technical Analysis", "Write additional detailed technical analysis with deeper insights"},
	{"Supplementary Research", "Write supplementary research findings and supporting evidence"},
	{"Extended Case Studies", "Write extended case studies with more detailed examples"},
	{"Advanced Considerations", "Write about advanced considerations and complex scenarios"},
}

// PlanSections 计算分节方案。未知体裁按 article 处理，从不失败。
//
// The plan uses min(len(template), max(pages, 3)) template sections, then
// extends with filler sections until it has pages entries. Every section gets
// floor(pages*300 / len(plan)) words.
func PlanSections(contentType DocumentType, pages int) []Section {
	templates, ok := sectionTemplates[contentType]
	if !ok {
		templates = sectionTemplates[Article]
	}

	count := min(len(templates), max(pages, minPlannedSections))
	selected := make([]sectionTemplate, 0, max(count, pages))
	selected = append(selected, templates[:count]...)
	for i := 0; len(selected) < pages; i++ {
		selected = append(selected, fillerSections[i%len(fillerSections)])
	}

	words := pages * wordsPerPage / len(selected)
	plan := make([]Section, len(selected))
	for i, tpl := range selected {
		plan[i] = Section{
			Title:         tpl.title,
			Instruction:   tpl.instruction,
			TargetWords:   words,
			Ordinal:       i + 1,
			TotalSections: len(selected),
			DocumentPages: pages,
		}
	}
	return plan
}
