// Package mapper converts extracted tables into taxonomy-tagged facts.
package mapper

import (
	"strings"

	"github.com/mkhairi/xbrlfacts/internal/match"
	"github.com/mkhairi/xbrlfacts/internal/model"
)

// Mapper generates facts from tables using a shared matcher
type Mapper struct {
	matcher *match.Matcher
}

// New creates a mapper
func New(m *match.Matcher) *Mapper {
	return &Mapper{matcher: m}
}

// MapTables emits one fact per (resolved row, non-empty value cell) pair.
// Column 0 of each non-header row is the label; the label is resolved once
// per row and every fact in the row shares that resolution. Rows with an
// empty label or an unresolved label emit nothing and are only visible in
// the returned stats. MapTables is pure: identical inputs yield identical
// facts in identical order.
func (g *Mapper) MapTables(tables []model.Table) ([]model.Fact, model.MappingStats) {
	facts := make([]model.Fact, 0)
	var stats model.MappingStats

	for _, table := range tables {
		for rowIdx, row := range table.Data {
			if rowIdx == table.HeaderRowIndex {
				continue
			}
			stats.RowsSeen++

			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				stats.RowsNoLabel++
				continue
			}
			label := row[0]

			res := g.matcher.Resolve(label)
			if res.Method == model.MethodUnresolved {
				stats.RowsUnresolved++
				continue
			}

			for colIdx := 1; colIdx < len(row); colIdx++ {
				value := row[colIdx]
				if strings.TrimSpace(value) == "" {
					continue
				}
				facts = append(facts, model.Fact{
					ConceptName: res.ConceptName,
					Value:       value,
					Source: model.Source{
						TableName:   table.Name,
						RowIndex:    rowIdx,
						ColumnIndex: colIdx,
						LabelText:   label,
					},
					Confidence: res.Confidence,
					Method:     res.Method,
				})
				stats.FactsEmitted++
			}
		}
	}

	return facts, stats
}

// CountMethods tallies facts per resolution method
func CountMethods(facts []model.Fact) map[model.Method]int {
	counts := make(map[model.Method]int)
	for _, f := range facts {
		counts[f.Method]++
	}
	return counts
}
