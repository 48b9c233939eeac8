package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkhairi/xbrlfacts/internal/model"
)

const testLinkbase = `<?xml version="1.0" encoding="UTF-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
               xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:labelLink>
    <link:label xlink:resource="#mfrs_Revenue" xml:lang="en">Revenue</link:label>
    <link:label xlink:resource="#mfrs_CostOfSales" xml:lang="en">Cost of sales</link:label>
  </link:labelLink>
</link:linkbase>`

const testDocument = `{
  "source_name": "afs-2024.pdf",
  "tables": [
    {
      "name": "Table_0",
      "header_row_index": 0,
      "data": [
        ["Label", "2024", "2023"],
        ["Revenue", "1,000", "900"],
        ["Cost of sales", "(400", "(380)"]
      ]
    }
  ],
  "text_blocks": [
    {"text": "<p>Results for the tnanaianpeaiod</p>", "page_number": 1}
  ]
}`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ssmxt_label.xml"), []byte(testLinkbase), 0o644); err != nil {
		t.Fatalf("write linkbase: %v", err)
	}

	cfg := model.DefaultConfig()
	cfg.Taxonomy.Dir = dir
	return cfg
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "afs_ingested.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func TestNew_EmptyTaxonomyIsFatal(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Taxonomy.Dir = t.TempDir()

	if _, err := New(cfg); err == nil {
		t.Fatal("Expected error for taxonomy directory without a linkbase")
	}
}

func TestNew_MissingReferenceDegrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.Reference.Path = filepath.Join(t.TempDir(), "absent.xlsx")

	if _, err := New(cfg); err != nil {
		t.Fatalf("Expected reference failure to be non-fatal, got %v", err)
	}
}

func TestMapDocument_EndToEnd(t *testing.T) {
	p, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result, err := p.MapDocument(writeDocument(t, testDocument))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Facts) != 4 {
		t.Fatalf("Expected 4 facts, got %d", len(result.Facts))
	}
	first := result.Facts[0]
	if first.ConceptName != "mfrs_Revenue" || first.Value != "1,000" {
		t.Errorf("Unexpected first fact: %+v", first)
	}
	if first.Method != model.MethodExactTaxonomy || first.Confidence != 1.0 {
		t.Errorf("Expected exact taxonomy hit, got %+v", first)
	}

	// Ingest normalization balanced the parenthesis before mapping.
	cost := result.Facts[2]
	if cost.Value != "(400)" {
		t.Errorf("Expected normalized value '(400)', got %q", cost.Value)
	}

	// Text correction ran during ingest.
	if result.Doc.TextBlocks[0].Text != "Results for the financial period" {
		t.Errorf("Unexpected text block: %q", result.Doc.TextBlocks[0].Text)
	}

	report := result.Report
	if report.RunID == "" || report.SourceName != "afs-2024.pdf" {
		t.Errorf("Unexpected report identity: %+v", report)
	}
	if report.Stats.FactsEmitted != 4 || report.MethodCounts[model.MethodExactTaxonomy] != 4 {
		t.Errorf("Unexpected report stats: %+v", report)
	}
}

func TestRenderResult_WritesFactsAndReport(t *testing.T) {
	p, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	result, err := p.MapDocument(writeDocument(t, testDocument))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	outDir := t.TempDir()
	factsPath := filepath.Join(outDir, "facts.json")
	reportPath := filepath.Join(outDir, "report.json")
	if err := p.RenderResult(result, factsPath, reportPath, false); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var facts []model.Fact
	data, err := os.ReadFile(factsPath)
	if err != nil {
		t.Fatalf("read facts: %v", err)
	}
	if err := json.Unmarshal(data, &facts); err != nil {
		t.Fatalf("unmarshal facts: %v", err)
	}
	if len(facts) != 4 {
		t.Errorf("Expected 4 facts round-tripped, got %d", len(facts))
	}

	var report model.Report
	data, err = os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if report.FactsPath != factsPath {
		t.Errorf("Expected facts path recorded, got %q", report.FactsPath)
	}
}

func TestValidate_ReportsIssues(t *testing.T) {
	p, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	docPath := writeDocument(t, testDocument)
	corpusPath := filepath.Join(t.TempDir(), "truth.txt")
	// Ground truth contains 1,000 and (380) but not (400) or 900.
	corpus := "Revenue of 1,000 against cost of (380) for the financial period"
	if err := os.WriteFile(corpusPath, []byte(corpus), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	issues, result, err := p.Validate(docPath, corpusPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result == nil || len(result.Facts) == 0 {
		t.Fatal("Expected mapping result alongside issues")
	}

	mismatches := 0
	for _, is := range issues {
		if is.Kind == model.IssueNumericMismatch {
			mismatches++
		}
	}
	if mismatches != 2 {
		t.Errorf("Expected 2 numeric mismatches, got %d: %+v", mismatches, issues)
	}
}

func TestMapDocument_Deterministic(t *testing.T) {
	p, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	docPath := writeDocument(t, testDocument)

	a, err := p.MapDocument(docPath)
	if err != nil {
		t.Fatalf("first map: %v", err)
	}
	b, err := p.MapDocument(docPath)
	if err != nil {
		t.Fatalf("second map: %v", err)
	}

	aj, _ := json.Marshal(a.Facts)
	bj, _ := json.Marshal(b.Facts)
	if string(aj) != string(bj) {
		t.Error("Expected identical fact sequences across repeated runs")
	}
}
