// Package taxonomy builds the concept index from an XBRL label linkbase.
//
// Concepts are kept in explicit load order (file and element traversal
// order) because the matcher's tie-breaks are defined in terms of it; the
// index never relies on map iteration order.
package taxonomy

import (
	"encoding/xml"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkhairi/xbrlfacts/internal/model"
)

// Index is the read-only concept index. It is immutable once loaded and
// safe for concurrent readers.
type Index struct {
	concepts   []*model.Concept
	byName     map[string]*model.Concept
	hasPrimary map[string]bool
}

// New creates an empty index
func New() *Index {
	return &Index{
		byName:     make(map[string]*model.Concept),
		hasPrimary: make(map[string]bool),
	}
}

// Load scans dir recursively for the first file whose name ends in
// "label.xml" and builds the index from it. On failure it returns an empty
// index together with a *LoadError (file missing or unreadable) or a
// *ParseError (malformed XML); the caller decides whether that is fatal.
func Load(dir string) (*Index, error) {
	idx := New()

	path, err := findLinkbase(dir)
	if err != nil {
		return idx, &LoadError{Path: dir, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return idx, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := idx.parse(f); err != nil {
		// A half-parsed index must not be matched against.
		return New(), &ParseError{Path: path, Err: err}
	}

	return idx, nil
}

// findLinkbase walks dir and returns the first label linkbase path
func findLinkbase(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found == "" && !d.IsDir() && strings.HasSuffix(d.Name(), "label.xml") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", ErrLinkbaseNotFound
	}
	return found, nil
}

// parse walks the linkbase token stream. Namespace URIs are resolved by the
// decoder from the document's own declarations, so only local element names
// are matched; taxonomy files disagree on prefixes.
func (idx *Index) parse(r io.Reader) error {
	dec := xml.NewDecoder(r)

	linkDepth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "labelLink" {
				linkDepth++
				continue
			}
			if linkDepth > 0 && t.Name.Local == "label" {
				if err := idx.readLabel(dec, t); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "labelLink" && linkDepth > 0 {
				linkDepth--
			}
		}
	}

	return nil
}

// readLabel consumes one label resource element and records it
func (idx *Index) readLabel(dec *xml.Decoder, start xml.StartElement) error {
	var ref, lang, role string
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "resource":
			ref = a.Value
		case "href":
			if ref == "" {
				ref = a.Value
			}
		case "lang":
			lang = a.Value
		case "role":
			role = a.Value
		}
	}

	var text strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			text.Write(t)
		}
	}

	if ref == "" {
		return nil
	}
	name := ref
	if i := strings.LastIndex(ref, "#"); i >= 0 {
		name = ref[i+1:]
	}
	if name == "" {
		return nil
	}
	if lang == "" {
		lang = "en"
	}

	// Empty label text is recorded, not dropped.
	idx.Add(name, model.Label{Lang: lang, Role: role, Text: strings.TrimSpace(text.String())})
	return nil
}

// Add records a label for the named concept, creating the concept on first
// sight. A duplicate (lang, role) pair overwrites the earlier text in place,
// preserving its position. The primary label is the first English label seen
// and is never overwritten. Add exists for the loader and for building
// indices from non-file sources; an index must not be mutated once handed
// to a matcher.
func (idx *Index) Add(name string, label model.Label) {
	c, ok := idx.byName[name]
	if !ok {
		c = &model.Concept{Name: name}
		idx.byName[name] = c
		idx.concepts = append(idx.concepts, c)
	}

	replaced := false
	for i := range c.Labels {
		if c.Labels[i].Lang == label.Lang && c.Labels[i].Role == label.Role {
			c.Labels[i].Text = label.Text
			replaced = true
			break
		}
	}
	if !replaced {
		c.Labels = append(c.Labels, label)
	}

	if label.Lang == "en" && !idx.hasPrimary[name] {
		c.PrimaryLabel = label.Text
		idx.hasPrimary[name] = true
	}
}

// Concepts returns all concepts in load order
func (idx *Index) Concepts() []*model.Concept {
	return idx.concepts
}

// Get returns the concept with the given taxonomy name
func (idx *Index) Get(name string) (*model.Concept, bool) {
	c, ok := idx.byName[name]
	return c, ok
}

// Len returns the number of loaded concepts
func (idx *Index) Len() int {
	return len(idx.concepts)
}
