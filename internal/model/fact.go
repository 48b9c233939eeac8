package model

// Method identifies which lookup path resolved a label to a concept
type Method string

const (
	MethodExactReference Method = "exact_reference" // Exact hit in the curated reference dictionary
	MethodExactTaxonomy  Method = "exact_taxonomy"  // Exact hit against a taxonomy label
	MethodFuzzy          Method = "fuzzy"           // Partial-ratio similarity at or above the threshold
	MethodUnresolved     Method = "unresolved"      // No lookup path produced a concept
)

// Source pins a fact to the table cell it was extracted from
type Source struct {
	TableName   string `json:"table_name"`
	RowIndex    int    `json:"row_index"`
	ColumnIndex int    `json:"column_index"`
	LabelText   string `json:"label_text"`
}

// Fact is a single resolved (concept, value) pair with provenance and
// confidence. Facts are created once by the mapper and never mutated.
type Fact struct {
	ConceptName string  `json:"concept_name"`
	Value       string  `json:"value"`
	Source      Source  `json:"source"`
	Confidence  float64 `json:"confidence"` // 1.0 for exact matches, score/100 for fuzzy
	Method      Method  `json:"method"`
}
