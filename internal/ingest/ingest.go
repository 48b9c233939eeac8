// Package ingest decodes and sanitizes documents produced by the upstream
// document-extraction step. Shape problems are rejected here with structured
// errors so malformed input never reaches the matching layer.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkhairi/xbrlfacts/internal/model"
	"github.com/mkhairi/xbrlfacts/internal/normalize"
)

// Load reads an ingested document from a JSON file. SourceName defaults to
// the file name when the document does not carry one.
func Load(path string, n *normalize.Normalizer) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f, n)
	if err != nil {
		return nil, fmt.Errorf("ingest: %s: %w", path, err)
	}
	if doc.SourceName == "" {
		doc.SourceName = filepath.Base(path)
	}
	return doc, nil
}

// Decode parses and sanitizes a document record
func Decode(r io.Reader, n *normalize.Normalizer) (*model.Document, error) {
	var doc model.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}

	sanitize(&doc, n)
	return &doc, nil
}

// validate rejects shapes the engine cannot process
func validate(doc *model.Document) error {
	for i, table := range doc.Tables {
		if table.HeaderRowIndex < 0 {
			return fmt.Errorf("table %d (%q): negative header_row_index %d",
				i, table.Name, table.HeaderRowIndex)
		}
	}
	for i, block := range doc.TextBlocks {
		switch block.Kind {
		case "", model.TextBlockParagraph, model.TextBlockFootnote:
		default:
			return fmt.Errorf("text block %d: unknown kind %q", i, block.Kind)
		}
	}
	return nil
}

// sanitize applies the correction pipeline to incoming content. Label cells
// (column 0) pass through untouched: labels are matched raw, and the
// aggressive character-level fixes would mangle words. Value cells get the
// numeric cleanup; text blocks lose their HTML wrappers and get the text
// correction table.
func sanitize(doc *model.Document, n *normalize.Normalizer) {
	for ti := range doc.Tables {
		table := &doc.Tables[ti]
		for ri := range table.Data {
			if ri == table.HeaderRowIndex {
				continue
			}
			row := table.Data[ri]
			for ci := 1; ci < len(row); ci++ {
				row[ci] = normalize.NumericCell(row[ci])
			}
		}
	}

	for bi := range doc.TextBlocks {
		block := &doc.TextBlocks[bi]
		block.Text = n.Text(StripHTML(block.Text))
		if block.Kind == "" {
			block.Kind = model.TextBlockParagraph
		}
	}
}

// DefaultOutputName names the facts file for an ingested document, matching
// the upstream convention of suffixing processing stages.
func DefaultOutputName(docPath string) string {
	base := filepath.Base(docPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "mapped_" + base + ".json"
}
