package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkhairi/xbrlfacts/internal/model"
)

// Renderer writes mapping output to files and the terminal
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderFactsJSON writes the fact sequence as a JSON array
func (r *Renderer) RenderFactsJSON(facts []model.Fact, path string) error {
	data, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal facts: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RenderReportJSON writes the mapping report
func (r *Renderer) RenderReportJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RenderIssuesJSON writes cross-validation issues
func (r *Renderer) RenderIssuesJSON(issues []model.ValidationIssue, path string) error {
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RenderSummary prints a short human-readable summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s (run %s)\n", report.SourceName, report.RunID)
	fmt.Printf("  Rows seen:       %d\n", report.Stats.RowsSeen)
	fmt.Printf("  Rows w/o label:  %d\n", report.Stats.RowsNoLabel)
	fmt.Printf("  Rows unresolved: %d\n", report.Stats.RowsUnresolved)
	fmt.Printf("  Facts emitted:   %d\n", report.Stats.FactsEmitted)
	for _, method := range []model.Method{model.MethodExactReference, model.MethodExactTaxonomy, model.MethodFuzzy} {
		if n := report.MethodCounts[method]; n > 0 {
			fmt.Printf("    %-16s %d\n", string(method)+":", n)
		}
	}
}

// RenderIssueSummary prints cross-validation findings to stdout
func (r *Renderer) RenderIssueSummary(issues []model.ValidationIssue) {
	if len(issues) == 0 {
		fmt.Println("✓ No issues found. Extraction appears accurate.")
		return
	}
	fmt.Printf("⚠ Found %d potential issues:\n\n", len(issues))
	for _, issue := range issues {
		loc := issue.Location
		if loc == "" {
			loc = "-"
		}
		fmt.Printf("- [%s] %s\n", issue.Kind, loc)
		fmt.Printf("  Detail: %s\n", issue.Detail)
		if issue.Suggestion != "" {
			fmt.Printf("  Suggestion: %s\n", issue.Suggestion)
		}
		fmt.Println()
	}
}
