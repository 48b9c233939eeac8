package model

// Label is a single human-readable label attached to a taxonomy concept,
// identified by its language tag and label role.
type Label struct {
	Lang string `json:"lang"`
	Role string `json:"role,omitempty"`
	Text string `json:"text"`
}

// Concept is a uniquely named taxonomy element representing a reportable
// financial line item. Concepts are immutable once the index is loaded.
type Concept struct {
	Name         string  `json:"name"`                    // Unique taxonomy name (fragment after # in the linkbase reference)
	Labels       []Label `json:"labels"`                  // Label variants in linkbase order; duplicate (lang, role) pairs overwrite in place
	PrimaryLabel string  `json:"primary_label,omitempty"` // First English label seen; never overwritten
}

// Resolution is the outcome of resolving one extracted row label against the
// taxonomy. ConceptName is empty when Method is MethodUnresolved.
type Resolution struct {
	ConceptName string  `json:"concept_name,omitempty"`
	Confidence  float64 `json:"confidence"`
	Method      Method  `json:"method"`
}
