package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mbatlle/motormercat/internal/cli"
	"github.com/mbatlle/motormercat/internal/ingest"
	"github.com/mbatlle/motormercat/internal/source"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the catalog from the source system",
		Long: `Fetch every vehicle listing from the external source system (unsold and
sold partitions), normalize and validate each record against the curated
taxonomies, and upsert the results into the local catalog.

Re-running is always safe: records are keyed by slug, so an interrupted run
can simply be started again.`,
		RunE: runSync,
	}

	cmd.Flags().Bool("dry-run", false, "Process records without writing to the catalog")
	cmd.Flags().Int("max-pages", 0, "Override the per-partition page ceiling")
	cmd.Flags().Bool("progress", true, "Show a progress bar while processing")

	_ = viper.BindPFlag("sync.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("sync.max_pages", cmd.Flags().Lookup("max-pages"))
	_ = viper.BindPFlag("sync.progress", cmd.Flags().Lookup("progress"))

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sourceConfig := source.Config{
		BaseURL:  viper.GetString("source.base_url"),
		Username: viper.GetString("source.username"),
		APIKey:   viper.GetString("source.api_key"),
		PageSize: viper.GetInt("source.page_size"),
		Timeout:  viper.GetDuration("source.timeout"),
	}

	client, err := source.NewClient(sourceConfig)
	if err != nil {
		return fmt.Errorf("failed to create source client: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	engineConfig := ingest.DefaultConfig()
	engineConfig.PageSize = sourceConfig.PageSize
	if engineConfig.PageSize <= 0 {
		engineConfig.PageSize = ingest.DefaultConfig().PageSize
	}
	if maxPages := viper.GetInt("sync.max_pages"); maxPages > 0 {
		engineConfig.MaxPages = maxPages
	} else if maxPages := viper.GetInt("source.max_pages"); maxPages > 0 {
		engineConfig.MaxPages = maxPages
	}
	engineConfig.DryRun = viper.GetBool("sync.dry_run")
	engineConfig.ShowProgress = viper.GetBool("sync.progress")

	if engineConfig.DryRun {
		slog.Info(cli.FormatWarning("Dry run mode - not writing to the catalog"))
	}

	slog.Info(cli.FormatTitle("Synchronizing vehicle catalog"))

	engine := ingest.NewWithConfig(store, client, engineConfig)
	summary, err := engine.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	content := fmt.Sprintf(
		"Imported:       %d\nUpdated:        %d\nFailed:         %d\nWith findings:  %d\n\nCatalog total:  %d (%d for sale, %d sold)\nDuration:       %s",
		summary.Totals.Imported,
		summary.Totals.Updated,
		summary.Totals.Failed,
		summary.Totals.Findings,
		summary.TotalVehicles,
		summary.UnsoldCount,
		summary.SoldCount,
		summary.Duration.Round(time.Millisecond),
	)
	for _, kc := range summary.ByKind {
		content += fmt.Sprintf("\n  %-14s %d", kc.Kind, kc.Count)
	}
	fmt.Println(cli.RenderBox("Sync summary", content))

	fmt.Println(ingest.RenderReport(summary.Report))

	return nil
}
