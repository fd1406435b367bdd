package parser

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog/log"

	"ddp-generator/internal/models"
)

// stepGroups is the number of capture groups a step pattern must define:
// number, name, supplier, input, process, output, customer.
const stepGroups = 7

// StepExtractor turns raw step text into step records.
type StepExtractor struct {
	re *regexp2.Regexp
}

// NewStepExtractor compiles pattern with dot-matches-newline semantics.
func NewStepExtractor(pattern string) (*StepExtractor, error) {
	if pattern == "" {
		pattern = models.StepRegex
	}
	re, err := regexp2.Compile(pattern, regexp2.Singleline)
	if err != nil {
		return nil, fmt.Errorf("failed to compile step pattern: %w", err)
	}
	// group 0 is the whole match
	if n := len(re.GetGroupNumbers()) - 1; n < stepGroups {
		return nil, fmt.Errorf("step pattern defines %d capture groups, need %d", n, stepGroups)
	}
	return &StepExtractor{re: re}, nil
}

var defaultExtractor *StepExtractor

func init() {
	e, err := NewStepExtractor(models.StepRegex)
	if err != nil {
		panic(err)
	}
	defaultExtractor = e
}

// ExtractSteps parses text with the built-in step pattern.
func ExtractSteps(text string) []models.StepRecord {
	return defaultExtractor.Extract(text)
}

// Blocks returns the raw fields of every matched block in source order.
// Blocks that do not match the full pattern are skipped.
func (e *StepExtractor) Blocks(text string) []models.SIPOCBlock {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var blocks []models.SIPOCBlock
	m, err := e.re.FindStringMatch(text)
	for m != nil && err == nil {
		blocks = append(blocks, models.SIPOCBlock{
			Number:   group(m, 1),
			Name:     group(m, 2),
			Supplier: group(m, 3),
			Input:    group(m, 4),
			Process:  group(m, 5),
			Output:   group(m, 6),
			Customer: group(m, 7),
		})
		m, err = e.re.FindNextMatch(m)
	}
	if err != nil {
		log.Warn().Err(err).Int("matched", len(blocks)).Msg("Step matching stopped early")
	}
	return blocks
}

// Extract parses text into step records. It never fails; an empty result
// means no block matched.
func (e *StepExtractor) Extract(text string) []models.StepRecord {
	blocks := e.Blocks(text)
	if len(blocks) == 0 {
		return nil
	}
	steps := make([]models.StepRecord, 0, len(blocks))
	for _, b := range blocks {
		steps = append(steps, NewStepRecord(b))
	}
	return steps
}

// NewStepRecord derives the description and rules of a block.
func NewStepRecord(b models.SIPOCBlock) models.StepRecord {
	rules := strings.Join([]string{
		models.InputLabel + strings.TrimSpace(b.Input),
		models.OutputLabel + strings.TrimSpace(b.Output),
		models.SupplierLabel + strings.TrimSpace(b.Supplier),
		models.CustomerLabel + strings.TrimSpace(b.Customer),
	}, "\n")

	return models.StepRecord{
		Number:      strings.TrimSpace(b.Number),
		Name:        strings.TrimSpace(b.Name),
		Description: models.DescriptionPrefix + strings.ToLower(strings.TrimSpace(b.Process)),
		Rules:       rules,
	}
}

func group(m *regexp2.Match, n int) string {
	g := m.GroupByNumber(n)
	if g == nil {
		return ""
	}
	return g.String()
}
