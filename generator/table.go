package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"synthetic_data_generator/logger"
)

// 按主题关键词匹配表头，顺序即优先级。
var subjectHeaders = []struct {
	keyword string
	headers []string
}{
	{"artificial intelligence", []string{"AI_Model", "Accuracy_Score", "Training_Data", "Algorithm_Type", "Performance_Metric"}},
	{"data protection", []string{"Data_Category", "Protection_Level", "Compliance_Status", "Risk_Score", "Last_Audit"}},
	{"renewable energy", []string{"Energy_Source", "Capacity_MW", "Efficiency_Rate", "Location", "Installation_Date"}},
	{"healthcare", []string{"Patient_ID", "Treatment_Type", "Outcome_Score", "Duration_Days", "Cost_USD"}},
	{"finance", []string{"Transaction_ID", "Amount", "Currency", "Status", "Processing_Date"}},
	{"marketing", []string{"Campaign_Name", "Reach", "Engagement_Rate", "ROI_Percent", "Channel"}},
}

var genericHeaders = []string{"ID", "Name", "Value", "Status", "Date"}

var (
	repairStatuses    = []string{"Active", "Inactive", "Pending", "Complete"}
	syntheticStatuses = []string{"Active", "Inactive", "Pending", "Complete", "Processing", "Verified"}
	skippedLines      = map[string]bool{"": true, "data": true, "rows": true, "format:": true}
)

const tableSystemPrompt = "You generate synthetic tabular data. Respond with comma-separated data rows only."

// ResolveHeaders picks the header set for a subject and resizes it to columns.
func ResolveHeaders(subject string, columns int) []string {
	base := genericHeaders
	lower := strings.ToLower(subject)
	for _, entry := range subjectHeaders {
		if strings.Contains(lower, entry.keyword) {
			base = entry.headers
			break
		}
	}

	headers := make([]string, columns)
	for i := range headers {
		if i < len(base) {
			headers[i] = base[i]
		} else {
			headers[i] = fmt.Sprintf("Field_%d", i+1)
		}
	}
	return headers
}

// BuildTablePrompt 生成整表数据的提示词。
func BuildTablePrompt(headers []string, rows int, subject string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generate realistic synthetic data for %s. Create %d rows of data with these columns: %s\n\n",
		subject, rows, strings.Join(headers, ", ")))
	sb.WriteString("IMPORTANT: Return ONLY the data rows in CSV format. Do NOT include:\n")
	sb.WriteString("- Column headers\n")
	sb.WriteString("- The word \"csv\" \n")
	sb.WriteString("- Any explanatory text\n")
	sb.WriteString("- Markdown code fences\n")
	sb.WriteString("- Quotation marks around the entire response\n\n")
	sb.WriteString("Format each row as: value1,value2,value3,etc\n\n")
	sb.WriteString(fmt.Sprintf("Generate %d rows of realistic data related to %s. Make the data contextually appropriate and varied.",
		rows, subject))
	return sb.String()
}

// TableStats reports where the rows of a table came from.
type TableStats struct {
	Parsed      int
	Synthesized int
	Skipped     int
}

// TableSynthesizer 一次请求生成整表，解析修复后保证行列数严格符合要求。
// Not safe for concurrent use: it owns its random source.
type TableSynthesizer struct {
	llm LLMClient
	rng *rand.Rand
}

func NewTableSynthesizer(llm LLMClient, rng *rand.Rand) (*TableSynthesizer, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	return &TableSynthesizer{llm: llm, rng: rng}, nil
}

// Synthesize always returns exactly rows x columns cells. A failed model call
// or unusable output is replaced by synthetic rows.
func (s *TableSynthesizer) Synthesize(ctx context.Context, rows, columns int, subject string) (TableSpec, TableStats) {
	headers := ResolveHeaders(subject, columns)
	prompt := Prompt{System: tableSystemPrompt, User: BuildTablePrompt(headers, rows, subject)}

	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		logger.Warn(ctx, "table generation failed, using synthetic rows", "error", err.Error())
		raw = ""
	}

	parsed, skipped := s.safeParse(ctx, raw, rows, columns, subject)
	stats := TableStats{Parsed: len(parsed), Skipped: skipped}
	data := s.padWithSynthetic(parsed, rows, columns, subject)
	stats.Synthesized = len(data) - stats.Parsed

	logger.Info(ctx, "table synthesized", "rows", rows, "columns", columns,
		"parsed", stats.Parsed, "synthesized", stats.Synthesized, "skipped_lines", stats.Skipped)
	return TableSpec{Headers: headers, Rows: data}, stats
}

func (s *TableSynthesizer) safeParse(ctx context.Context, raw string, rows, columns int, subject string) (parsed [][]string, skipped int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn(ctx, "table parsing failed, generating every row", "panic", fmt.Sprint(r))
			parsed, skipped = nil, 0
		}
	}()
	return s.parseAndRepair(raw, rows, columns, subject)
}

// parseAndRepair keeps usable comma-separated lines, pads short rows and
// truncates long ones. It stops after rows accepted lines.
func (s *TableSynthesizer) parseAndRepair(raw string, rows, columns int, subject string) ([][]string, int) {
	var data [][]string
	skipped := 0
	for _, line := range strings.Split(raw, "\n") {
		if len(data) >= rows {
			break
		}
		cleaned := strings.TrimSpace(line)
		if skipLine(cleaned) {
			skipped++
			continue
		}

		cells := strings.Split(cleaned, ",")
		row := make([]string, 0, columns)
		for _, cell := range cells {
			row = append(row, cleanCell(cell))
		}

		if len(row) > columns {
			row = row[:columns]
		}
		rowNumber := len(data) + 1
		for i := len(row); i < columns; i++ {
			row = append(row, s.repairCell(i, subject, rowNumber))
		}
		data = append(data, row)
	}
	return data, skipped
}

func skipLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case line == "":
		return true
	case strings.HasPrefix(lower, "column_"), strings.HasPrefix(lower, "csv"):
		return true
	case strings.HasPrefix(line, "```"):
		return true
	case skippedLines[lower]:
		return true
	case len(strings.Split(line, ",")) < 2:
		return true
	}
	return false
}

func cleanCell(cell string) string {
	return strings.Trim(strings.Trim(strings.TrimSpace(cell), `"`), "'")
}

func (s *TableSynthesizer) repairCell(col int, subject string, rowNumber int) string {
	switch col {
	case 0:
		return itemName(subject, rowNumber)
	case 1:
		return strconv.Itoa(s.rng.IntN(1000) + 1)
	case 2:
		return repairStatuses[s.rng.IntN(len(repairStatuses))]
	case 3:
		return s.date()
	default:
		return fmt.Sprintf("Value_%d", s.rng.IntN(100)+1)
	}
}

// padWithSynthetic appends fully synthetic rows until there are rows of them.
func (s *TableSynthesizer) padWithSynthetic(data [][]string, rows, columns int, subject string) [][]string {
	out := make([][]string, 0, rows)
	out = append(out, data...)
	for len(out) < rows {
		rowNumber := len(out) + 1
		row := make([]string, columns)
		for col := range row {
			row[col] = s.syntheticCell(col, subject, rowNumber)
		}
		out = append(out, row)
	}
	return out[:rows]
}

func (s *TableSynthesizer) syntheticCell(col int, subject string, rowNumber int) string {
	switch col {
	case 0:
		return itemName(subject, rowNumber)
	case 1:
		return strconv.Itoa(s.rng.IntN(1000) + 1)
	case 2:
		return syntheticStatuses[s.rng.IntN(len(syntheticStatuses))]
	case 3:
		return s.date()
	case 4:
		return fmt.Sprintf("%d%%", s.rng.IntN(100)+1)
	default:
		return fmt.Sprintf("%s_Data_%d", underscored(subject), s.rng.IntN(100)+1)
	}
}

func (s *TableSynthesizer) date() string {
	month := s.rng.IntN(12) + 1
	day := s.rng.IntN(28) + 1
	return fmt.Sprintf("2024-%02d-%02d", month, day)
}

func itemName(subject string, rowNumber int) string {
	return fmt.Sprintf("%s_Item_%d", underscored(subject), rowNumber)
}

func underscored(subject string) string {
	return strings.ReplaceAll(subject, " ", "_")
}
