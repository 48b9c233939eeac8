package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkhairi/xbrlfacts/internal/ingest"
	"github.com/mkhairi/xbrlfacts/internal/model"
	"github.com/mkhairi/xbrlfacts/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	taxonomyDir     string
	referencePath   string
	correctionsPath string
	fuzzyThreshold  int
	outFacts        string
	outReport       string
	noCache         bool
)

// mapCmd represents the map command
var mapCmd = &cobra.Command{
	Use:   "map <ingested.json>",
	Short: "Map an ingested document's labels to taxonomy concepts",
	Long: `Map reads one ingested document file and resolves each table row
label to an XBRL taxonomy concept:
- Load the taxonomy label linkbase and optional reference dictionary
- Resolve labels via exact reference, exact taxonomy, then fuzzy match
- Emit one confidence-scored fact per numeric value cell
- Write the facts and a mapping report as JSON

Example:
  xbrlfacts map afs_ingested.json --taxonomy ./taxonomies
  xbrlfacts map afs_ingested.json --reference mapping.xlsx --threshold 85
  xbrlfacts map afs_ingested.json --out facts.json --report report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)

	// Input flags
	mapCmd.Flags().StringVar(&taxonomyDir, "taxonomy", "", "taxonomy directory containing a label linkbase")
	mapCmd.Flags().StringVar(&referencePath, "reference", "", "reference dictionary workbook (.xlsx, optional)")
	mapCmd.Flags().StringVar(&correctionsPath, "corrections", "", "correction tables override file (.yaml, optional)")

	// Matching flags
	mapCmd.Flags().IntVar(&fuzzyThreshold, "threshold", 0, "fuzzy match score threshold 0-100 (default from config)")
	mapCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable resolution memoization")

	// Output flags
	mapCmd.Flags().StringVar(&outFacts, "out", "", "output facts JSON path (default: <output dir>/mapped_<name>.json)")
	mapCmd.Flags().StringVar(&outReport, "report", "", "output report JSON path (optional)")
}

// buildConfig layers viper-sourced settings over the defaults, then flags
// over both. Shared by map, batch, and validate.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("taxonomy.dir"); v != "" {
		cfg.Taxonomy.Dir = v
	}
	if v := viper.GetString("reference.path"); v != "" {
		cfg.Reference.Path = v
	}
	if v := viper.GetString("corrections.path"); v != "" {
		cfg.Corrections.Path = v
	}
	if v := viper.GetInt("matching.fuzzy_threshold"); v > 0 {
		cfg.Matching.FuzzyThreshold = v
	}
	if viper.IsSet("matching.cache_enabled") {
		cfg.Matching.CacheEnabled = viper.GetBool("matching.cache_enabled")
	}
	if v := viper.GetDuration("matching.cache_ttl"); v > 0 {
		cfg.Matching.CacheTTL = v
	}
	if v := viper.GetInt("concurrency.map_workers"); v > 0 {
		cfg.Concurrency.MapWorkers = v
	}
	if v := viper.GetString("output.dir"); v != "" {
		cfg.Output.Dir = v
	}

	if taxonomyDir != "" {
		cfg.Taxonomy.Dir = taxonomyDir
	}
	if referencePath != "" {
		cfg.Reference.Path = referencePath
	}
	if correctionsPath != "" {
		cfg.Corrections.Path = correctionsPath
	}
	if fuzzyThreshold > 0 {
		cfg.Matching.FuzzyThreshold = fuzzyThreshold
	}
	if noCache {
		cfg.Matching.CacheEnabled = false
	}
	cfg.Output.Verbose = verbose

	return cfg
}

func runMap(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	cfg := buildConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Mapping: %s\n", docPath)
		fmt.Fprintf(os.Stderr, "Taxonomy: %s\n", cfg.Taxonomy.Dir)
		if cfg.Reference.Path != "" {
			fmt.Fprintf(os.Stderr, "Reference: %s\n", cfg.Reference.Path)
		}
		fmt.Fprintf(os.Stderr, "Threshold: %d\n", cfg.Matching.FuzzyThreshold)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Matching.CacheEnabled)
		fmt.Fprintln(os.Stderr)
	}

	// Create pipeline
	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	start := time.Now()
	result, err := p.MapDocument(docPath)
	if err != nil {
		return fmt.Errorf("map failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Mapped %d rows to %d facts in %v\n",
			result.Report.Stats.RowsSeen, result.Report.Stats.FactsEmitted, time.Since(start).Round(time.Millisecond))
		fmt.Fprintln(os.Stderr)
	}

	factsPath := outFacts
	if factsPath == "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		factsPath = filepath.Join(cfg.Output.Dir, ingest.DefaultOutputName(docPath))
	}

	if err := p.RenderResult(result, factsPath, outReport, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
