package model

// IssueKind classifies a cross-validation finding
type IssueKind string

const (
	IssueNumericMismatch IssueKind = "numeric_mismatch" // Normalized cell value absent from the ground-truth corpus
	IssueOCRCorruption   IssueKind = "ocr_corruption"   // Known-bad substring present in a text block
	IssueMissingContent  IssueKind = "missing_content"  // Critical phrase in the corpus but not in the output
)

// ValidationIssue is a non-fatal diagnostic produced by the cross-validator.
// Issues are reported in full and never persisted with the fact output.
type ValidationIssue struct {
	Kind       IssueKind `json:"kind"`
	Location   string    `json:"location,omitempty"`
	Detail     string    `json:"detail"`
	Suggestion string    `json:"suggestion,omitempty"`
}
