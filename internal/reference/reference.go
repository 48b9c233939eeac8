// Package reference loads the curated label-to-concept dictionary from a
// reference workbook. The dictionary is an optional, high-confidence overlay
// consulted before any taxonomy lookup.
package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrColumnsNotFound indicates the workbook has no identifiable label and
// element/concept columns. Non-fatal: matching proceeds without the
// reference layer.
var ErrColumnsNotFound = errors.New("reference: label and element columns not found")

// Dictionary maps curated label text to taxonomy concept names. Lookups are
// case-insensitive and whitespace-trimmed. Immutable after load.
type Dictionary struct {
	entries map[string]string
}

// Key normalizes a label for dictionary lookup
func Key(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// FromPairs builds a dictionary from (label, concept) pairs, last-wins
func FromPairs(pairs [][2]string) *Dictionary {
	d := &Dictionary{entries: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		label, concept := strings.TrimSpace(p[0]), strings.TrimSpace(p[1])
		if label == "" || concept == "" {
			continue
		}
		d.entries[Key(label)] = concept
	}
	return d
}

// Load reads the first sheet of an xlsx workbook. The label column is the
// first header containing "label" (case-insensitive substring); the concept
// column is the first remaining header containing "element" or "concept".
// Rows with an empty label or concept are skipped; duplicate labels
// last-wins. When no qualifying columns exist the returned dictionary is
// empty and the error is ErrColumnsNotFound.
func Load(path string) (*Dictionary, error) {
	empty := FromPairs(nil)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return empty, fmt.Errorf("reference: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return empty, fmt.Errorf("reference: %s: %w", path, ErrColumnsNotFound)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return empty, fmt.Errorf("reference: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return empty, fmt.Errorf("reference: %s: %w", path, ErrColumnsNotFound)
	}

	labelCol, conceptCol := -1, -1
	for i, header := range rows[0] {
		h := strings.ToLower(header)
		switch {
		case labelCol < 0 && strings.Contains(h, "label"):
			labelCol = i
		case conceptCol < 0 && (strings.Contains(h, "element") || strings.Contains(h, "concept")):
			conceptCol = i
		}
	}
	if labelCol < 0 || conceptCol < 0 {
		return empty, fmt.Errorf("reference: %s: %w", path, ErrColumnsNotFound)
	}

	d := &Dictionary{entries: make(map[string]string)}
	for _, row := range rows[1:] {
		if labelCol >= len(row) || conceptCol >= len(row) {
			continue
		}
		label := strings.TrimSpace(row[labelCol])
		concept := strings.TrimSpace(row[conceptCol])
		if label == "" || concept == "" {
			continue
		}
		d.entries[Key(label)] = concept
	}

	return d, nil
}

// Lookup resolves a label to its curated concept name
func (d *Dictionary) Lookup(label string) (string, bool) {
	concept, ok := d.entries[Key(label)]
	return concept, ok
}

// Len returns the number of dictionary entries
func (d *Dictionary) Len() int {
	return len(d.entries)
}
