package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/promptlab/internal/adapters/openai"
	"github.com/emiliopalmerini/promptlab/internal/adapters/otel"
	"github.com/emiliopalmerini/promptlab/internal/adapters/turso"
	"github.com/emiliopalmerini/promptlab/internal/config"
	"github.com/emiliopalmerini/promptlab/internal/migrate"
	"github.com/emiliopalmerini/promptlab/internal/ports"
	"github.com/emiliopalmerini/promptlab/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an experiment from a YAML config",
	Long: `Run an experiment described by a YAML config file.

Each configured prompt is rendered from its template, sent to the model,
and the response is scored and stored.

Examples:
  promptlab run --config experiments/summary.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to the experiment YAML config (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	appCfg, err := config.LoadApp()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	expCfg, err := config.LoadExperiment(runConfigPath)
	if err != nil {
		return err
	}
	if expCfg.Model != "" {
		appCfg.OpenAI.Model = expCfg.Model
	}

	db, err := turso.NewDB(appCfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migrate.RunAll(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := newTemplateStore(appCfg)
	if err != nil {
		return err
	}

	var metrics ports.MetricsExporter = otel.NewNoOpExporter()
	otelCfg := otel.LoadConfig()
	if otelCfg.Enabled {
		exporter, err := otel.NewExporter(ctx, otelCfg)
		if err != nil {
			logger.Warn("metrics exporter unavailable, continuing without", "error", err)
		} else {
			metrics = exporter
			defer metrics.Close(ctx)
		}
	}

	client := openai.NewClient(appCfg.OpenAI, logger)
	r := runner.New(turso.NewResultStore(db), store, client, metrics, logger)

	experimentID, outcomes, err := r.Run(ctx, expCfg)
	if err != nil {
		return fmt.Errorf("experiment aborted: %w", err)
	}

	printRunSummary(experimentID, expCfg.Name, outcomes)
	return nil
}

func printRunSummary(experimentID, name string, outcomes []runner.ItemResult) {
	fmt.Printf("Experiment: %s (%s)\n\n", name, experimentID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTEMPLATE\tOUTCOME")
	fmt.Fprintln(w, "-\t--------\t-------")
	created := 0
	for _, o := range outcomes {
		outcome := string(o.Outcome)
		if o.Err != nil {
			outcome = fmt.Sprintf("%s (%v)", o.Outcome, o.Err)
		}
		if o.Outcome == runner.OutcomeCreated {
			created++
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", o.Index+1, o.TemplateID, outcome)
	}
	w.Flush()

	fmt.Printf("\n%d/%d prompts completed\n", created, len(outcomes))
}
