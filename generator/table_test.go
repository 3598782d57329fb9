package generator

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSynth(t *testing.T, llm LLMClient) *TableSynthesizer {
	t.Helper()
	s, err := NewTableSynthesizer(llm, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return s
}

func TestResolveHeaders(t *testing.T) {
	assert.Equal(t, []string{"ID", "Name", "Value", "Status", "Date"}, ResolveHeaders("Our AI strategy", 5))
	assert.Equal(t, []string{"AI_Model", "Accuracy_Score"}, ResolveHeaders("Artificial Intelligence in healthcare", 2))
	assert.Equal(t, []string{"Patient_ID", "Treatment_Type", "Outcome_Score"}, ResolveHeaders("rural HEALTHCARE", 3))
	assert.Equal(t,
		[]string{"Transaction_ID", "Amount", "Currency", "Status", "Processing_Date", "Field_6", "Field_7"},
		ResolveHeaders("personal finance", 7))
	assert.Equal(t, []string{"Campaign_Name"}, ResolveHeaders("marketing", 1))
}

func TestSynthesizeFinanceScenario(t *testing.T) {
	s := newSynth(t, fixedLLM("TXN1,100\nbadline\nTXN2,200,extra\n"))

	spec, stats := s.Synthesize(context.Background(), 3, 2, "finance")

	assert.Equal(t, []string{"Transaction_ID", "Amount"}, spec.Headers)
	require.Len(t, spec.Rows, 3)
	assert.Equal(t, []string{"TXN1", "100"}, spec.Rows[0])
	assert.Equal(t, []string{"TXN2", "200"}, spec.Rows[1])
	assert.Equal(t, "finance_Item_3", spec.Rows[2][0])
	n, err := strconv.Atoi(spec.Rows[2][1])
	require.NoError(t, err)
	assert.True(t, n >= 1 && n <= 1000)

	assert.Equal(t, 2, stats.Parsed)
	assert.Equal(t, 1, stats.Synthesized)
}

func TestSynthesizeAlwaysRectangular(t *testing.T) {
	outputs := map[string]*recordingLLM{
		"empty":       fixedLLM(""),
		"whitespace":  fixedLLM("   \n\t\n"),
		"single bad":  fixedLLM("badline"),
		"over wide":   fixedLLM("a,b,c,d,e,f,g,h,i,j,k,l\n1,2,3,4,5,6,7,8,9,10,11,12"),
		"ragged":      fixedLLM("a,b\nc,d,e\nf,g,h,i,j\n,\n"),
		"fenced":      fixedLLM("```csv\nx,y,z\n```"),
		"prose":       fixedLLM("Here is your data:\nSure, here you go\nrow one, row two"),
		"model error": failingLLM(errors.New("timeout")),
	}
	for name, llm := range outputs {
		for _, rows := range []int{1, 5, 17} {
			for _, cols := range []int{1, 2, 5, 8} {
				s := newSynth(t, llm)
				spec, _ := s.Synthesize(context.Background(), rows, cols, "test subject")
				require.Len(t, spec.Headers, cols, name)
				require.Len(t, spec.Rows, rows, name)
				for _, row := range spec.Rows {
					require.Len(t, row, cols, "%s rows=%d cols=%d", name, rows, cols)
				}
			}
		}
	}
}

func TestParseAndRepairSkipsNoise(t *testing.T) {
	s := newSynth(t, fixedLLM(""))
	raw := strings.Join([]string{
		"csv",
		"CSV data below",
		"Column_1,Column_2",
		"```",
		"Data",
		"ROWS",
		"format:",
		"",
		"single",
		`"Alpha", 'Beta' , Gamma `,
		"```",
	}, "\n")

	rows, skipped := s.parseAndRepair(raw, 10, 3, "x")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, rows[0])
	assert.Equal(t, 10, skipped)
}

func TestParseAndRepairStopsAtRowCount(t *testing.T) {
	s := newSynth(t, fixedLLM(""))
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "r"+strconv.Itoa(i)+",v")
	}
	rows, _ := s.parseAndRepair(strings.Join(lines, "\n"), 3, 2, "x")
	require.Len(t, rows, 3)
	assert.Equal(t, "r2", rows[2][0])
}

func TestParseAndRepairPadsShortRows(t *testing.T) {
	s := newSynth(t, fixedLLM(""))
	rows, _ := s.parseAndRepair("first,1\nsecond,2", 5, 6, "x")
	require.Len(t, rows, 2)

	for _, row := range rows {
		require.Len(t, row, 6)
		assert.Contains(t, repairStatuses, row[2])
		assert.Regexp(t, datePattern, row[3])
		assert.Regexp(t, `^Value_([1-9]|[1-9][0-9]|100)$`, row[4])
		assert.Regexp(t, `^Value_([1-9]|[1-9][0-9]|100)$`, row[5])
	}
	assert.Equal(t, "second", rows[1][0])
}

var datePattern = regexp.MustCompile(`^2024-(0[1-9]|1[0-2])-(0[1-9]|1[0-9]|2[0-8])$`)

func TestPadWithSyntheticCells(t *testing.T) {
	s := newSynth(t, fixedLLM(""))
	existing := [][]string{{"a", "b", "c", "d", "e", "f", "g"}}

	rows := s.padWithSynthetic(existing, 4, 7, "renewable energy")
	require.Len(t, rows, 4)
	assert.Equal(t, existing[0], rows[0])

	for i, row := range rows[1:] {
		assert.Equal(t, "renewable_energy_Item_"+strconv.Itoa(i+2), row[0])
		n, err := strconv.Atoi(row[1])
		require.NoError(t, err)
		assert.True(t, n >= 1 && n <= 1000)
		assert.Contains(t, syntheticStatuses, row[2])
		assert.Regexp(t, datePattern, row[3])
		assert.Regexp(t, `^([1-9]|[1-9][0-9]|100)%$`, row[4])
		assert.True(t, strings.HasPrefix(row[5], "renewable_energy_Data_"))
		assert.True(t, strings.HasPrefix(row[6], "renewable_energy_Data_"))
	}
}

func TestSynthesizeIsDeterministicForSeed(t *testing.T) {
	run := func() TableSpec {
		s, err := NewTableSynthesizer(failingLLM(errors.New("down")), rand.New(rand.NewPCG(42, 7)))
		require.NoError(t, err)
		spec, _ := s.Synthesize(context.Background(), 20, 6, "marketing")
		return spec
	}
	assert.Equal(t, run(), run())
}

func TestSynthesizePromptShape(t *testing.T) {
	llm := fixedLLM("")
	s := newSynth(t, llm)
	s.Synthesize(context.Background(), 12, 3, "healthcare")

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0].User,
		"Generate realistic synthetic data for healthcare. Create 12 rows of data with these columns: Patient_ID, Treatment_Type, Outcome_Score")
	assert.Contains(t, llm.prompts[0].User, "Return ONLY the data rows in CSV format")
	assert.Contains(t, llm.prompts[0].User, "- Markdown code fences\n")
	assert.Zero(t, llm.prompts[0].MaxTokens)
}

func TestNewTableSynthesizerValidates(t *testing.T) {
	_, err := NewTableSynthesizer(nil, rand.New(rand.NewPCG(1, 1)))
	assert.Error(t, err)
	_, err = NewTableSynthesizer(fixedLLM(""), nil)
	assert.Error(t, err)
}
