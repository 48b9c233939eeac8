package model

import (
	"runtime"
	"time"
)

// Config holds all engine configuration
type Config struct {
	Taxonomy    TaxonomyConfig    `yaml:"taxonomy" json:"taxonomy"`
	Reference   ReferenceConfig   `yaml:"reference" json:"reference"`
	Matching    MatchingConfig    `yaml:"matching" json:"matching"`
	Corrections CorrectionsConfig `yaml:"corrections" json:"corrections"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// TaxonomyConfig locates the taxonomy label linkbase
type TaxonomyConfig struct {
	Dir string `yaml:"dir" json:"dir"` // Scanned recursively for a file ending in label.xml
}

// ReferenceConfig locates the curated reference workbook
type ReferenceConfig struct {
	Path string `yaml:"path" json:"path"` // Optional; matching proceeds without the reference layer when empty
}

// MatchingConfig tunes label resolution
type MatchingConfig struct {
	FuzzyThreshold int           `yaml:"fuzzy_threshold" json:"fuzzy_threshold"` // Partial-ratio score (0-100) required for a fuzzy match
	CacheEnabled   bool          `yaml:"cache_enabled" json:"cache_enabled"`     // Memoize resolutions across repeated labels
	CacheTTL       time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// CorrectionsConfig locates an optional correction-table override file
type CorrectionsConfig struct {
	Path string `yaml:"path" json:"path"` // YAML file; built-in defaults are used when empty
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	MapWorkers int `yaml:"map_workers" json:"map_workers"`
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir     string `yaml:"dir" json:"dir"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Taxonomy:  TaxonomyConfig{Dir: "taxonomies"},
		Reference: ReferenceConfig{},
		Matching: MatchingConfig{
			FuzzyThreshold: 80,
			CacheEnabled:   true,
			CacheTTL:       15 * time.Minute,
		},
		Corrections: CorrectionsConfig{},
		Concurrency: ConcurrencyConfig{MapWorkers: runtime.NumCPU()},
		Output:      OutputConfig{Dir: "mapped_facts"},
	}
}
