// Package validate cross-checks mapped output against an independently
// extracted ground-truth corpus. It is read-only and diagnostic: every
// finding is collected and reported, none aborts processing.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mkhairi/xbrlfacts/internal/model"
	"github.com/mkhairi/xbrlfacts/internal/normalize"
)

// numericLike matches cells that plausibly carry a numeric value
var numericLike = regexp.MustCompile(`[0-9,.()]`)

// Validator detects extraction regressions in a mapped document
type Validator struct {
	corrections *normalize.Corrections
}

// New creates a validator. A nil corrections table selects the defaults.
func New(c *normalize.Corrections) *Validator {
	if c == nil {
		c = normalize.DefaultCorrections()
	}
	return &Validator{corrections: c}
}

// Check runs all issue detectors over the document, its facts, and the
// ground-truth corpus. Issues are returned in full; detection never
// short-circuits on the first hit.
func (v *Validator) Check(doc *model.Document, facts []model.Fact, corpus string) []model.ValidationIssue {
	issues := make([]model.ValidationIssue, 0)
	issues = append(issues, v.checkNumeric(doc, corpus)...)
	issues = append(issues, v.checkCorruption(doc)...)
	issues = append(issues, v.checkMissing(doc, facts, corpus)...)
	return issues
}

// checkNumeric flags numeric-looking cells whose normalized form does not
// appear verbatim in the corpus.
func (v *Validator) checkNumeric(doc *model.Document, corpus string) []model.ValidationIssue {
	var issues []model.ValidationIssue

	for _, table := range doc.Tables {
		for rIdx, row := range table.Data {
			if rIdx == table.HeaderRowIndex {
				continue
			}
			for cIdx, cell := range row {
				if cIdx == 0 || strings.TrimSpace(cell) == "" {
					continue
				}
				if !numericLike.MatchString(cell) {
					continue
				}
				cleaned := normalize.NumericCell(cell)
				if cleaned == "" || strings.Contains(corpus, cleaned) {
					continue
				}
				issues = append(issues, model.ValidationIssue{
					Kind:       model.IssueNumericMismatch,
					Location:   fmt.Sprintf("%s[%d][%d]", table.Name, rIdx, cIdx),
					Detail:     fmt.Sprintf("extracted %q (normalized %q) not found in ground truth", cell, cleaned),
					Suggestion: "check for missing parenthesis or OCR corruption",
				})
			}
		}
	}

	return issues
}

// checkCorruption flags text blocks containing known-bad substrings
func (v *Validator) checkCorruption(doc *model.Document) []model.ValidationIssue {
	var issues []model.ValidationIssue

	for i, block := range doc.TextBlocks {
		for _, ind := range v.corrections.OCRIndicators {
			if ind.Old == "" || !strings.Contains(block.Text, ind.Old) {
				continue
			}
			issues = append(issues, model.ValidationIssue{
				Kind:       model.IssueOCRCorruption,
				Location:   fmt.Sprintf("TextBlock_%d", i),
				Detail:     snippet(block.Text),
				Suggestion: fmt.Sprintf("replace %q with %q", ind.Old, ind.New),
			})
		}
	}

	return issues
}

// checkMissing flags critical phrases present in the corpus but absent from
// the serialized fact/text-block output.
func (v *Validator) checkMissing(doc *model.Document, facts []model.Fact, corpus string) []model.ValidationIssue {
	serialized := serializeOutput(doc, facts)
	var issues []model.ValidationIssue

	for _, phrase := range v.corrections.CriticalPhrases {
		if !strings.Contains(corpus, phrase) {
			continue
		}
		if strings.Contains(serialized, phrase) {
			continue
		}
		issues = append(issues, model.ValidationIssue{
			Kind:       model.IssueMissingContent,
			Detail:     fmt.Sprintf("critical phrase %q absent from mapped output", phrase),
			Suggestion: "ensure the footnote or critical value is captured upstream",
		})
	}

	return issues
}

// serializeOutput renders the searchable form of the engine's output
func serializeOutput(doc *model.Document, facts []model.Fact) string {
	var b strings.Builder
	for _, block := range doc.TextBlocks {
		b.WriteString(block.Text)
		b.WriteByte('\n')
	}
	if data, err := json.Marshal(facts); err == nil {
		b.Write(data)
	}
	return b.String()
}

// snippet truncates long block text for issue details
func snippet(s string) string {
	const max = 100
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
