package validate

import (
	"testing"

	"github.com/mkhairi/xbrlfacts/internal/model"
	"github.com/mkhairi/xbrlfacts/internal/normalize"
)

func docWithCell(cell string) *model.Document {
	return &model.Document{
		SourceName: "afs.pdf",
		Tables: []model.Table{{
			Name:           "Table_0",
			HeaderRowIndex: 0,
			Data: [][]string{
				{"Label", "2024"},
				{"Revenue", cell},
			},
		}},
	}
}

func TestCheck_NumericMismatch(t *testing.T) {
	v := New(nil)
	doc := docWithCell("(418,988)")

	issues := v.Check(doc, nil, "the corpus mentions 418,988 without parentheses")

	found := false
	for _, is := range issues {
		if is.Kind == model.IssueNumericMismatch {
			found = true
			if is.Location != "Table_0[1][1]" {
				t.Errorf("Unexpected location %q", is.Location)
			}
		}
	}
	if !found {
		t.Error("Expected a numeric_mismatch issue")
	}
}

func TestCheck_NumericPresentInCorpus(t *testing.T) {
	v := New(nil)
	doc := docWithCell("(418,988)")

	issues := v.Check(doc, nil, "loss for the year of (418,988) was recorded")

	for _, is := range issues {
		if is.Kind == model.IssueNumericMismatch {
			t.Errorf("Unexpected mismatch: %+v", is)
		}
	}
}

func TestCheck_HeaderAndLabelCellsIgnored(t *testing.T) {
	v := New(nil)
	doc := &model.Document{
		Tables: []model.Table{{
			Name:           "t",
			HeaderRowIndex: 0,
			Data: [][]string{
				{"Label", "2024"}, // header: "2024" won't be in corpus
				{"Property, plant and equipment", "99"},
			},
		}},
	}

	issues := v.Check(doc, nil, "balance 99 brought forward")

	if len(issues) != 0 {
		t.Errorf("Expected no issues, got %+v", issues)
	}
}

func TestCheck_OCRCorruption(t *testing.T) {
	v := New(nil)
	doc := &model.Document{
		TextBlocks: []model.TextBlock{
			{Text: "Kegistration number of the comapny"},
			{Text: "clean paragraph"},
		},
	}

	issues := v.Check(doc, nil, "")

	var corrupt []model.ValidationIssue
	for _, is := range issues {
		if is.Kind == model.IssueOCRCorruption {
			corrupt = append(corrupt, is)
		}
	}
	// Both bad substrings in block 0 must be reported; detection never
	// stops at the first hit.
	if len(corrupt) != 2 {
		t.Fatalf("Expected 2 corruption issues, got %d: %+v", len(corrupt), corrupt)
	}
	for _, is := range corrupt {
		if is.Location != "TextBlock_0" {
			t.Errorf("Unexpected location %q", is.Location)
		}
	}
}

func TestCheck_MissingContent(t *testing.T) {
	corrections := &normalize.Corrections{
		CriticalPhrases: []string{"Deemed interest footnote", "RM418,988"},
	}
	v := New(corrections)
	doc := &model.Document{
		TextBlocks: []model.TextBlock{{Text: "carrying amount RM418,988 as disclosed"}},
	}

	corpus := "Deemed interest footnote ... RM418,988"
	issues := v.Check(doc, nil, corpus)

	var missing []model.ValidationIssue
	for _, is := range issues {
		if is.Kind == model.IssueMissingContent {
			missing = append(missing, is)
		}
	}
	if len(missing) != 1 {
		t.Fatalf("Expected 1 missing_content issue, got %d: %+v", len(missing), missing)
	}
}

func TestCheck_PhraseAbsentFromCorpusNotFlagged(t *testing.T) {
	corrections := &normalize.Corrections{
		CriticalPhrases: []string{"phrase nobody wrote"},
	}
	v := New(corrections)

	issues := v.Check(&model.Document{}, nil, "unrelated corpus")

	if len(issues) != 0 {
		t.Errorf("Expected no issues for phrase absent from corpus, got %+v", issues)
	}
}

func TestCheck_FactsSatisfyMissingContent(t *testing.T) {
	corrections := &normalize.Corrections{
		CriticalPhrases: []string{"418,988"},
	}
	v := New(corrections)
	facts := []model.Fact{{
		ConceptName: "mfrs_Loss",
		Value:       "418,988",
		Method:      model.MethodExactTaxonomy,
		Confidence:  1.0,
	}}

	issues := v.Check(&model.Document{}, facts, "the loss of 418,988")

	if len(issues) != 0 {
		t.Errorf("Expected fact value to satisfy critical phrase, got %+v", issues)
	}
}

func TestCheck_CollectsAllKinds(t *testing.T) {
	v := New(nil)
	doc := &model.Document{
		Tables: []model.Table{{
			Name:           "t",
			HeaderRowIndex: 0,
			Data: [][]string{
				{"Label", "2024"},
				{"Revenue", "123,456"},
			},
		}},
		TextBlocks: []model.TextBlock{{Text: "going concemn basis"}},
	}

	corpus := "Omesti Bemed Sdn. Bhd. reported results"
	issues := v.Check(doc, nil, corpus)

	kinds := map[model.IssueKind]int{}
	for _, is := range issues {
		kinds[is.Kind]++
	}
	if kinds[model.IssueNumericMismatch] == 0 {
		t.Error("Expected a numeric_mismatch issue")
	}
	if kinds[model.IssueOCRCorruption] == 0 {
		t.Error("Expected an ocr_corruption issue")
	}
	if kinds[model.IssueMissingContent] == 0 {
		t.Error("Expected a missing_content issue")
	}
}
