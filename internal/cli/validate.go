package cli

import (
	"fmt"
	"os"

	"github.com/mkhairi/xbrlfacts/internal/pipeline"
	"github.com/spf13/cobra"
)

var outIssues string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <ingested.json> <groundtruth.txt>",
	Short: "Cross-check an ingested document against a ground-truth corpus",
	Long: `Validate maps a document, then compares both the document and the
emitted facts against a plain-text ground-truth corpus:
- Flag numeric cells whose cleaned value never appears in the corpus
- Flag text blocks still carrying known OCR corruption patterns
- Flag critical phrases present in the corpus but absent from the output

Example:
  xbrlfacts validate afs_ingested.json afs_fulltext.txt
  xbrlfacts validate afs_ingested.json afs_fulltext.txt --json issues.json`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&outIssues, "json", "", "output issues JSON path (optional)")

	// Inherit flags from map command
	validateCmd.Flags().StringVar(&taxonomyDir, "taxonomy", "", "taxonomy directory containing a label linkbase")
	validateCmd.Flags().StringVar(&referencePath, "reference", "", "reference dictionary workbook (.xlsx, optional)")
	validateCmd.Flags().StringVar(&correctionsPath, "corrections", "", "correction tables override file (.yaml, optional)")
	validateCmd.Flags().IntVar(&fuzzyThreshold, "threshold", 0, "fuzzy match score threshold 0-100 (default from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	corpusPath := args[1]

	cfg := buildConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Validating: %s\n", docPath)
		fmt.Fprintf(os.Stderr, "Ground truth: %s\n", corpusPath)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	issues, result, err := p.Validate(docPath, corpusPath)
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Mapped %d facts\n", result.Report.Stats.FactsEmitted)
		fmt.Fprintf(os.Stderr, "✓ Checked %d tables and %d text blocks\n",
			len(result.Doc.Tables), len(result.Doc.TextBlocks))
		fmt.Fprintln(os.Stderr)
	}

	if outIssues != "" {
		if err := p.RenderIssues(issues, outIssues); err != nil {
			return fmt.Errorf("render issues: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote issues: %s\n", outIssues)
		}
	}

	p.RenderIssueSummary(issues)

	if len(issues) > 0 {
		return fmt.Errorf("%d validation issues found", len(issues))
	}
	return nil
}
