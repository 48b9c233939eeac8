// Package match resolves extracted row labels to taxonomy concepts.
//
// Resolution is a fixed cascade: exact lookup in the curated reference
// dictionary, exact lookup against taxonomy labels, then fuzzy partial-ratio
// scoring. The first stage to succeed wins; the method tag records which
// stage produced the hit, never re-derived afterwards.
package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/mkhairi/xbrlfacts/internal/cache"
	"github.com/mkhairi/xbrlfacts/internal/model"
	"github.com/mkhairi/xbrlfacts/internal/reference"
	"github.com/mkhairi/xbrlfacts/internal/taxonomy"
)

// DefaultThreshold is the minimum partial-ratio score (0-100) for a fuzzy match
const DefaultThreshold = 80

// Matcher resolves labels against an immutable concept index and reference
// dictionary. It owns both for its lifetime and never mutates them, so a
// single Matcher is safe for concurrent use.
type Matcher struct {
	index     *taxonomy.Index
	reference *reference.Dictionary
	threshold int
	memo      *cache.ResolutionCache
}

// New creates a matcher. A threshold <= 0 selects DefaultThreshold.
func New(idx *taxonomy.Index, ref *reference.Dictionary, threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if ref == nil {
		ref = reference.FromPairs(nil)
	}
	return &Matcher{
		index:     idx,
		reference: ref,
		threshold: threshold,
	}
}

// SetCache enables resolution memoization. Pass nil to disable.
func (m *Matcher) SetCache(c *cache.ResolutionCache) {
	m.memo = c
}

// Threshold returns the configured fuzzy threshold
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Resolve maps one extracted label to a concept. A score equal to the
// threshold counts as a match. Ties between equally scored concepts keep the
// earliest-loaded concept; this is a deliberate, documented tie-break, not
// incidental iteration order.
func (m *Matcher) Resolve(label string) model.Resolution {
	key := reference.Key(label)
	if key == "" {
		return model.Resolution{Method: model.MethodUnresolved}
	}

	if m.memo != nil {
		if res, ok := m.memo.Get(key); ok {
			return res
		}
	}

	res := m.resolve(key)

	if m.memo != nil {
		m.memo.Set(key, res)
	}
	return res
}

// resolve runs the cascade on a normalized label key
func (m *Matcher) resolve(key string) model.Resolution {
	if concept, ok := m.reference.Lookup(key); ok {
		return model.Resolution{
			ConceptName: concept,
			Confidence:  1.0,
			Method:      model.MethodExactReference,
		}
	}

	// Exact equality has no quality gradient: stop at the first concept in
	// load order that carries a matching label.
	for _, c := range m.index.Concepts() {
		for _, l := range c.Labels {
			if l.Text != "" && reference.Key(l.Text) == key {
				return model.Resolution{
					ConceptName: c.Name,
					Confidence:  1.0,
					Method:      model.MethodExactTaxonomy,
				}
			}
		}
	}

	best := 0
	bestConcept := ""
	for _, c := range m.index.Concepts() {
		for _, l := range c.Labels {
			if l.Text == "" {
				continue
			}
			score := fuzzy.PartialRatio(key, strings.ToLower(l.Text))
			if score > best { // strict: first-seen concept wins ties
				best = score
				bestConcept = c.Name
			}
		}
	}

	if best >= m.threshold {
		return model.Resolution{
			ConceptName: bestConcept,
			Confidence:  float64(best) / 100.0,
			Method:      model.MethodFuzzy,
		}
	}

	return model.Resolution{Method: model.MethodUnresolved}
}
