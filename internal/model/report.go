package model

import "time"

// MappingStats aggregates row-level outcomes of one mapping run. Rows that
// resolve to no concept are skipped silently, not errored, so these counts
// are the only way to observe the triage.
type MappingStats struct {
	RowsSeen       int `json:"rows_seen"`       // Non-header rows considered
	RowsNoLabel    int `json:"rows_no_label"`   // Rows skipped for an empty or missing label cell
	RowsUnresolved int `json:"rows_unresolved"` // Rows whose label matched no concept
	FactsEmitted   int `json:"facts_emitted"`
}

// Report summarizes the mapping of a single ingested document
type Report struct {
	RunID        string         `json:"run_id"`
	SourceName   string         `json:"source_name"`
	GeneratedAt  time.Time      `json:"generated_at"`
	Stats        MappingStats   `json:"stats"`
	MethodCounts map[Method]int `json:"method_counts"` // Facts emitted per resolution method
	FactsPath    string         `json:"facts_path,omitempty"`
}
