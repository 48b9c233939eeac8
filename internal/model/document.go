package model

// TextBlockKind categorizes a text block from the upstream extraction
type TextBlockKind string

const (
	TextBlockParagraph TextBlockKind = "paragraph"
	TextBlockFootnote  TextBlockKind = "footnote"
)

// Table is a row-major grid of cell strings produced by the upstream
// document-extraction step. Column 0 of each non-header row is treated as
// the line-item label; columns 1..N carry period values.
type Table struct {
	Name           string     `json:"name"`
	Data           [][]string `json:"data"`
	HeaderRowIndex int        `json:"header_row_index"` // Excluded from fact extraction; may be any row index
}

// TextBlock is a paragraph or footnote extracted alongside the tables
type TextBlock struct {
	Text       string        `json:"text"`
	PageNumber *int          `json:"page_number,omitempty"`
	Kind       TextBlockKind `json:"kind,omitempty"`
}

// Document is the structured record delivered by the upstream extraction
// collaborator. The engine never mutates a Document after ingest.
type Document struct {
	SourceName string      `json:"source_name"`
	Tables     []Table     `json:"tables"`
	TextBlocks []TextBlock `json:"text_blocks"`
}
