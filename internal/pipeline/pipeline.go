// Package pipeline wires the loaders, matcher, mapper, and validator into
// the complete document-to-facts flow.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mkhairi/xbrlfacts/internal/cache"
	"github.com/mkhairi/xbrlfacts/internal/ingest"
	"github.com/mkhairi/xbrlfacts/internal/mapper"
	"github.com/mkhairi/xbrlfacts/internal/match"
	"github.com/mkhairi/xbrlfacts/internal/model"
	"github.com/mkhairi/xbrlfacts/internal/normalize"
	"github.com/mkhairi/xbrlfacts/internal/reference"
	"github.com/mkhairi/xbrlfacts/internal/taxonomy"
	"github.com/mkhairi/xbrlfacts/internal/validate"
)

// Pipeline orchestrates the complete mapping process. All indices are loaded
// at construction and immutable afterwards, so one pipeline can map many
// documents, concurrently if desired.
type Pipeline struct {
	normalizer *normalize.Normalizer
	matcher    *match.Matcher
	mapper     *mapper.Mapper
	validator  *validate.Validator
	renderer   *Renderer
	config     *model.Config
}

// New creates a pipeline from the given configuration. An empty concept
// index is fatal here: matching against nothing must never masquerade as a
// genuinely-empty-result run.
func New(cfg *model.Config) (*Pipeline, error) {
	corrections := normalize.DefaultCorrections()
	if cfg.Corrections.Path != "" {
		c, err := normalize.LoadCorrections(cfg.Corrections.Path)
		if err != nil {
			return nil, fmt.Errorf("load corrections: %w", err)
		}
		corrections = c
	}

	idx, err := taxonomy.Load(cfg.Taxonomy.Dir)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	if idx.Len() == 0 {
		return nil, fmt.Errorf("taxonomy at %s contains no concepts", cfg.Taxonomy.Dir)
	}

	ref := reference.FromPairs(nil)
	if cfg.Reference.Path != "" {
		loaded, err := reference.Load(cfg.Reference.Path)
		if err != nil {
			// The reference layer is an optional overlay; degrade
			// loudly and match on the taxonomy alone.
			if errors.Is(err, reference.ErrColumnsNotFound) {
				fmt.Fprintf(os.Stderr, "Warning: %v (matching without reference layer)\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: reference load failed: %v (matching without reference layer)\n", err)
			}
		} else {
			ref = loaded
		}
	}

	m := match.New(idx, ref, cfg.Matching.FuzzyThreshold)
	if cfg.Matching.CacheEnabled {
		ttl := cfg.Matching.CacheTTL
		if ttl <= 0 {
			ttl = 15 * time.Minute
		}
		m.SetCache(cache.NewResolutionCache(ttl, 2*ttl))
	}

	return &Pipeline{
		normalizer: normalize.New(corrections),
		matcher:    m,
		mapper:     mapper.New(m),
		validator:  validate.New(corrections),
		renderer:   NewRenderer(),
		config:     cfg,
	}, nil
}

// MapResult is the outcome of mapping one ingested document
type MapResult struct {
	Doc    *model.Document
	Facts  []model.Fact
	Report *model.Report
}

// MapDocument ingests one document file and maps its tables to facts
func (p *Pipeline) MapDocument(path string) (*MapResult, error) {
	doc, err := ingest.Load(path, p.normalizer)
	if err != nil {
		return nil, err
	}

	facts, stats := p.mapper.MapTables(doc.Tables)

	report := &model.Report{
		RunID:        ulid.Make().String(),
		SourceName:   doc.SourceName,
		GeneratedAt:  time.Now().UTC(),
		Stats:        stats,
		MethodCounts: mapper.CountMethods(facts),
	}

	return &MapResult{Doc: doc, Facts: facts, Report: report}, nil
}

// Validate maps a document and cross-checks the result against a
// ground-truth corpus file.
func (p *Pipeline) Validate(docPath, corpusPath string) ([]model.ValidationIssue, *MapResult, error) {
	result, err := p.MapDocument(docPath)
	if err != nil {
		return nil, nil, fmt.Errorf("map document: %w", err)
	}

	corpus, err := os.ReadFile(corpusPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read ground truth: %w", err)
	}

	issues := p.validator.Check(result.Doc, result.Facts, string(corpus))
	return issues, result, nil
}

// RenderResult writes the facts and report files and prints the summary
func (p *Pipeline) RenderResult(result *MapResult, factsPath, reportPath string, verbose bool) error {
	if factsPath != "" {
		if err := p.renderer.RenderFactsJSON(result.Facts, factsPath); err != nil {
			return fmt.Errorf("render facts: %w", err)
		}
		result.Report.FactsPath = factsPath
		if verbose {
			fmt.Printf("✓ Wrote facts: %s\n", factsPath)
		}
	}

	if reportPath != "" {
		if err := p.renderer.RenderReportJSON(result.Report, reportPath); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote report: %s\n", reportPath)
		}
	}

	p.renderer.RenderSummary(result.Report)
	return nil
}

// RenderIssues writes cross-validation issues as JSON
func (p *Pipeline) RenderIssues(issues []model.ValidationIssue, path string) error {
	return p.renderer.RenderIssuesJSON(issues, path)
}

// RenderIssueSummary prints cross-validation findings to stdout
func (p *Pipeline) RenderIssueSummary(issues []model.ValidationIssue) {
	p.renderer.RenderIssueSummary(issues)
}
