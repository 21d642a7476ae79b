package cli

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/promptlab/internal/adapters/turso"
	"github.com/emiliopalmerini/promptlab/internal/config"
	"github.com/emiliopalmerini/promptlab/internal/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect experiment results",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all experiments",
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <experiment-id>",
	Short: "Show results for an experiment",
	Long: `Show the stored prompts, responses, and evaluation scores for a
single experiment, newest first.

Examples:
  promptlab report show 4f7cbb10-...
  promptlab report show 4f7cbb10-... --verbose
  promptlab report show 4f7cbb10-... --export results.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runReportShow,
}

var reportCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare average scores per template",
	Long: `Compare templates across all experiments: response counts and average
latency, tokens, and evaluation scores per template id.`,
	RunE: runReportCompare,
}

var (
	reportVerbose bool
	reportExport  string
)

func init() {
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportCompareCmd)

	reportShowCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Print full prompt and response text")
	reportShowCmd.Flags().StringVar(&reportExport, "export", "", "Write results to a CSV file")
	reportCompareCmd.Flags().StringVar(&reportExport, "export", "", "Write the comparison to a CSV file")
}

func openResultStore() (*sql.DB, *turso.ResultStore, error) {
	appCfg, err := config.LoadApp()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	db, err := turso.NewDB(appCfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, turso.NewResultStore(db), nil
}

func runReportList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	db, store, err := openResultStore()
	if err != nil {
		return err
	}
	defer db.Close()

	experiments, err := store.AllExperiments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list experiments: %w", err)
	}

	if len(experiments) == 0 {
		fmt.Println("No experiments found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	fmt.Fprintln(w, "--\t----\t-------")
	for _, exp := range experiments {
		fmt.Fprintf(w, "%s\t%s\t%s\n", exp.ID, exp.Name, exp.CreatedAt.Format(time.RFC3339))
	}
	w.Flush()
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	experimentID := args[0]

	db, store, err := openResultStore()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := store.ExperimentResults(ctx, experimentID)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results for experiment %s\n", experimentID)
		return nil
	}

	if reportExport != "" {
		if err := exportResultsCSV(reportExport, results); err != nil {
			return err
		}
		fmt.Printf("Exported %d results to %s\n", len(results), reportExport)
		return nil
	}

	fmt.Printf("Experiment: %s (%d results)\n\n", results[0].ExperimentName, len(results))

	if reportVerbose {
		for i, r := range results {
			fmt.Printf("--- Result %d ---\n", i+1)
			fmt.Printf("Template:  %s\n", r.TemplateID)
			fmt.Printf("Model:     %s\n", r.Model)
			fmt.Printf("Tokens:    %d\n", r.TokensUsed)
			fmt.Printf("Latency:   %.2fs\n", r.ResponseTime)
			fmt.Printf("Scores:    relevance=%s accuracy=%s completeness=%s consistency=%s efficiency=%s bias=%s\n",
				fmtScore(r.Relevance), fmtScore(r.Accuracy), fmtScore(r.Completeness),
				fmtScore(r.Consistency), fmtScore(r.Efficiency), fmtScore(r.Bias))
			fmt.Printf("Prompt:\n%s\n", r.PromptText)
			fmt.Printf("Response:\n%s\n\n", r.ResponseText)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tMODEL\tTOKENS\tLATENCY\tREL\tACC\tCOMP\tCONS\tEFF\tBIAS")
	fmt.Fprintln(w, "--------\t-----\t------\t-------\t---\t---\t----\t----\t---\t----")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.TemplateID, r.Model, r.TokensUsed, r.ResponseTime,
			fmtScore(r.Relevance), fmtScore(r.Accuracy), fmtScore(r.Completeness),
			fmtScore(r.Consistency), fmtScore(r.Efficiency), fmtScore(r.Bias))
	}
	w.Flush()
	return nil
}

func runReportCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	db, store, err := openResultStore()
	if err != nil {
		return err
	}
	defer db.Close()

	comparisons, err := store.TemplateComparison(ctx)
	if err != nil {
		return fmt.Errorf("failed to compare templates: %w", err)
	}

	if len(comparisons) == 0 {
		fmt.Println("No responses to compare")
		return nil
	}

	if reportExport != "" {
		if err := exportComparisonCSV(reportExport, comparisons); err != nil {
			return err
		}
		fmt.Printf("Exported comparison of %d templates to %s\n", len(comparisons), reportExport)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tRESPONSES\tAVG LATENCY\tAVG TOKENS\tREL\tACC\tCOMP\tCONS\tEFF\tBIAS")
	fmt.Fprintln(w, "--------\t---------\t-----------\t----------\t---\t---\t----\t----\t---\t----")
	for _, c := range comparisons {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.TemplateID, c.ResponseCount,
			fmtScore(c.AvgResponseTime), fmtScore(c.AvgTokens),
			fmtScore(c.AvgRelevance), fmtScore(c.AvgAccuracy), fmtScore(c.AvgCompleteness),
			fmtScore(c.AvgConsistency), fmtScore(c.AvgEfficiency), fmtScore(c.AvgBias))
	}
	w.Flush()
	return nil
}

func exportResultsCSV(path string, results []*domain.ExperimentResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"experiment_name", "template_id", "prompt_text", "response_text",
		"model", "tokens_used", "response_time",
		"relevance", "accuracy", "completeness", "consistency", "efficiency", "bias",
		"created_at",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.ExperimentName, r.TemplateID, r.PromptText, r.ResponseText,
			r.Model, strconv.FormatInt(r.TokensUsed, 10),
			strconv.FormatFloat(r.ResponseTime, 'f', -1, 64),
			csvScore(r.Relevance), csvScore(r.Accuracy), csvScore(r.Completeness),
			csvScore(r.Consistency), csvScore(r.Efficiency), csvScore(r.Bias),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportComparisonCSV(path string, comparisons []*domain.TemplateComparison) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"template_id", "response_count", "avg_response_time", "avg_tokens",
		"avg_relevance", "avg_accuracy", "avg_completeness",
		"avg_consistency", "avg_efficiency", "avg_bias",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range comparisons {
		record := []string{
			c.TemplateID, strconv.FormatInt(c.ResponseCount, 10),
			csvScore(c.AvgResponseTime), csvScore(c.AvgTokens),
			csvScore(c.AvgRelevance), csvScore(c.AvgAccuracy), csvScore(c.AvgCompleteness),
			csvScore(c.AvgConsistency), csvScore(c.AvgEfficiency), csvScore(c.AvgBias),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func csvScore(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
