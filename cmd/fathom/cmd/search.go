package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fathom-search/fathom/internal/hybrid"
	"github.com/fathom-search/fathom/internal/output"
)

var (
	flagMaxDocuments int
	flagMaxWeb       int
	flagDocsOnly     bool
	flagWebOnly      bool
	flagNoWeb        bool
	flagNews         bool
	flagLocation     string
	flagJSON         bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search documents and the web",
	Long: `Search runs the enabled retrieval strategies concurrently and prints
one ranked result set with numbered source citations. Strategies that
fail or are unconfigured contribute nothing instead of failing the
whole search.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagMaxDocuments, "max-documents", 0, "maximum document results")
	searchCmd.Flags().IntVar(&flagMaxWeb, "max-web", 0, "maximum web results")
	searchCmd.Flags().BoolVar(&flagDocsOnly, "docs-only", false, "search local documents only")
	searchCmd.Flags().BoolVar(&flagWebOnly, "web-only", false, "search the web only")
	searchCmd.Flags().BoolVar(&flagNoWeb, "no-web", false, "disable the web strategy")
	searchCmd.Flags().BoolVar(&flagNews, "news", false, "include news results")
	searchCmd.Flags().StringVar(&flagLocation, "location", "", "geographic hint for web search")
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the raw result as JSON")
	searchCmd.MarkFlagsMutuallyExclusive("docs-only", "web-only")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var res *hybrid.HybridSearchResult
	switch {
	case flagDocsOnly:
		res = a.engine.SearchDocuments(ctx, query, flagMaxDocuments)
	case flagWebOnly:
		res = a.engine.SearchWeb(ctx, query, flagMaxWeb)
	default:
		res = a.engine.Search(ctx, query, searchConfigFromFlags(a))
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return nil
	}

	output.New(os.Stdout).Result(res)
	return nil
}

// searchConfigFromFlags builds the per-request overlay from CLI flags
// and the loaded configuration file.
func searchConfigFromFlags(a *app) *hybrid.SearchConfig {
	cfg := &hybrid.SearchConfig{
		Methods: []hybrid.RetrievalMethod{
			{Kind: hybrid.MethodDense, Enabled: true, Weight: a.cfg.Search.DenseWeight},
			{Kind: hybrid.MethodSparse, Enabled: true, Weight: a.cfg.Search.SparseWeight},
			{Kind: hybrid.MethodWebOnly, Enabled: a.cfg.Search.IncludeWeb && !flagNoWeb, Weight: a.cfg.Search.WebWeight},
		},
		MaxDocuments:        a.cfg.Search.MaxDocuments,
		MaxWebResults:       a.cfg.Search.MaxWebResults,
		SimilarityThreshold: a.cfg.Search.SimilarityThreshold,
		IncludeNews:         a.cfg.Search.IncludeNews || flagNews,
		Location:            a.cfg.Search.Location,
	}
	if flagMaxDocuments > 0 {
		cfg.MaxDocuments = flagMaxDocuments
	}
	if flagMaxWeb > 0 {
		cfg.MaxWebResults = flagMaxWeb
	}
	if flagLocation != "" {
		cfg.Location = flagLocation
	}
	return cfg
}
