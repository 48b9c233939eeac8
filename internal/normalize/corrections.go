package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Replacement is one ordered wrong-to-right substitution
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Corrections is the process-wide table of known OCR-confusion fixes and
// extraction-quality indicators. It is loaded once at startup and immutable
// thereafter; every consumer reads it concurrently without locking.
type Corrections struct {
	// Text lists substring fixes applied during text normalization, in
	// priority order. Earlier entries win when patterns overlap.
	Text []Replacement `yaml:"text"`

	// OCRIndicators lists substrings whose presence in a text block marks
	// it as corrupted, with the suggested replacement.
	OCRIndicators []Replacement `yaml:"ocr_indicators"`

	// CriticalPhrases lists content that must survive extraction; the
	// cross-validator flags any phrase present in the ground truth but
	// absent from the mapped output.
	CriticalPhrases []string `yaml:"critical_phrases"`
}

// DefaultCorrections returns the built-in tables. Multi-character fixes come
// before the aggressive single-character ones so a longer pattern is never
// shadowed by a substring of itself.
func DefaultCorrections() *Corrections {
	return &Corrections{
		Text: []Replacement{
			{Old: "Kegistration", New: "Registration"},
			{Old: "Kegistraton", New: "Registration"},
			{Old: "Kegisrraton", New: "Registration"},
			{Old: "tnanaianpeaiod", New: "financial period"},
			{Old: "Zoumpad", New: "audited"},
			{Old: "comapny", New: "company"},
			{Old: "concemn", New: "concern"},
			{Old: "IVo", New: "No"},
			{Old: "t0", New: "to"},
			{Old: "l", New: "1"},
			{Old: "O", New: "0"},
		},
		OCRIndicators: []Replacement{
			{Old: "Kegistration", New: "Registration"},
			{Old: "t0", New: "to"},
			{Old: "comapny", New: "company"},
			{Old: "concemn", New: "concern"},
			{Old: "Zoumpad", New: "audited"},
			{Old: "tnanaianpeaiod", New: "financial period"},
		},
		CriticalPhrases: []string{
			"*Deemed interest by virtue of her spouse's interest",
			"RM418,988",
			"Omesti Bemed Sdn. Bhd.",
		},
	}
}

// LoadCorrections reads a correction table from a YAML file. Sections left
// empty in the file fall back to the built-in defaults so an override file
// can extend just one table.
func LoadCorrections(path string) (*Corrections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corrections: read %s: %w", path, err)
	}

	var c Corrections
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("corrections: parse %s: %w", path, err)
	}

	defaults := DefaultCorrections()
	if len(c.Text) == 0 {
		c.Text = defaults.Text
	}
	if len(c.OCRIndicators) == 0 {
		c.OCRIndicators = defaults.OCRIndicators
	}
	if len(c.CriticalPhrases) == 0 {
		c.CriticalPhrases = defaults.CriticalPhrases
	}

	return &c, nil
}
