package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mkhairi/xbrlfacts/internal/ingest"
	"github.com/mkhairi/xbrlfacts/internal/pipeline"
	"github.com/mkhairi/xbrlfacts/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Map every ingested document in a directory in parallel",
	Long: `Batch maps multiple ingested documents concurrently:
- Discover *.json document files in the input directory
- Map documents in parallel with a configurable worker count
- Write one facts file and one report per document

Example:
  xbrlfacts batch ./ingested
  xbrlfacts batch ./ingested --concurrency 8 --output-dir ./mapped_facts
  xbrlfacts batch ./ingested --taxonomy ./taxonomies --reference mapping.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory for facts and reports (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from map command
	batchCmd.Flags().StringVar(&taxonomyDir, "taxonomy", "", "taxonomy directory containing a label linkbase")
	batchCmd.Flags().StringVar(&referencePath, "reference", "", "reference dictionary workbook (.xlsx, optional)")
	batchCmd.Flags().StringVar(&correctionsPath, "corrections", "", "correction tables override file (.yaml, optional)")
	batchCmd.Flags().IntVar(&fuzzyThreshold, "threshold", 0, "fuzzy match score threshold 0-100 (default from config)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable resolution memoization")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	if concurrency > 0 {
		cfg.Concurrency.MapWorkers = concurrency
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return fmt.Errorf("no *.json documents found in %s", dir)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  XBRLFacts Batch Mapping\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Documents:    %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.MapWorkers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One pipeline serves all workers; its indices are immutable after load.
	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p.MapDocument, cfg.Concurrency.MapWorkers)

	fmt.Fprintf(os.Stderr, "⚙️  Mapping documents with %d workers...\n", cfg.Concurrency.MapWorkers)
	fmt.Fprintf(os.Stderr, "\n")

	results := processor.Process(ctx, paths)

	successCount := 0
	failureCount := 0

	for _, res := range results {
		if res.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Err)
			continue
		}

		successCount++

		factsPath := filepath.Join(cfg.Output.Dir, ingest.DefaultOutputName(res.Path))
		reportPath := factsPath[:len(factsPath)-len(".json")] + "_report.json"
		if err := p.RenderResult(res.Result, factsPath, reportPath, false); err != nil {
			failureCount++
			successCount--
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write output: %v\n", res.Path, err)
			continue
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(results))
	}
	return nil
}
