// Package normalize cleans extracted strings before they enter matching.
// Both entry points are total: malformed input degrades to a best-effort
// cleaned string, never an error.
package normalize

import (
	"strings"
	"unicode"
)

// Normalizer applies the text correction table. The table is fixed at
// construction; Normalizer is safe for concurrent use.
type Normalizer struct {
	table []Replacement
}

// New creates a normalizer from the given correction tables
func New(c *Corrections) *Normalizer {
	if c == nil {
		c = DefaultCorrections()
	}
	return &Normalizer{table: c.Text}
}

// Text applies the ordered correction table in a single left-to-right scan.
// At each position the first matching pattern wins and the scan resumes
// after the replacement, so overlapping patterns never double-replace.
// Idempotent for inputs that contain no remaining patterns after one pass.
func (n *Normalizer) Text(s string) string {
	if s == "" || len(n.table) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		matched := false
		for _, r := range n.table {
			if r.Old != "" && strings.HasPrefix(s[i:], r.Old) {
				b.WriteString(r.New)
				i += len(r.Old)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(s[i])
			i++
		}
	}

	return b.String()
}

// NumericCell standardizes a numeric table cell. Blank cells are returned
// unchanged. Unmatched parentheses are balanced (trailing or leading filler
// is stripped first), then every rune outside digits, comma, period, hyphen,
// parentheses, percent, and whitespace is removed, and the result trimmed.
func NumericCell(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}

	open := strings.Count(s, "(")
	closed := strings.Count(s, ")")
	if open > closed {
		s = strings.TrimRight(s, "_~ ") + ")"
	} else if closed > open {
		s = "(" + strings.TrimLeft(s, "_~ ")
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' || r == '.' || r == '-' || r == '(' || r == ')' || r == '%':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
