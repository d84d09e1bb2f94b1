package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mbatlle/motormercat/internal/common"
	"github.com/mbatlle/motormercat/internal/model"
	"github.com/mbatlle/motormercat/internal/service"
)

// Engine orchestrates one full sync run: fetch, map, normalize, validate and
// upsert every record of both source partitions. It is the only component
// with side effects against the catalog.
type Engine struct {
	storage service.Storage
	source  service.VehicleSource
	config  Config
}

// Config holds configuration options for the sync engine.
type Config struct {
	Retry        service.RetryOptions
	PageSize     int
	MaxPages     int
	DryRun       bool
	ShowProgress bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		PageSize: 50,
		MaxPages: 40,
	}
}

// New creates a sync engine with default configuration.
func New(storage service.Storage, source service.VehicleSource) *Engine {
	return NewWithConfig(storage, source, DefaultConfig())
}

// NewWithConfig creates a sync engine with custom configuration.
func NewWithConfig(storage service.Storage, source service.VehicleSource, config Config) *Engine {
	if config.PageSize <= 0 {
		config.PageSize = DefaultConfig().PageSize
	}
	if config.MaxPages <= 0 {
		config.MaxPages = DefaultConfig().MaxPages
	}
	return &Engine{
		storage: storage,
		source:  source,
		config:  config,
	}
}

// partition identifies one of the two independently fetched record subsets.
type partition struct {
	name string
	sold bool
}

var partitions = []partition{
	{name: "unsold", sold: false},
	{name: "sold", sold: true},
}

// Sync runs the full pipeline over both partitions and returns the run
// summary. Only a taxonomy load failure aborts the run; partition fetch
// failures and per-record failures are logged and absorbed, so the run always
// completes with a summary and a validation report.
func (e *Engine) Sync(ctx context.Context) (*model.SyncSummary, error) {
	start := time.Now()

	sets, err := LoadTaxonomySets(ctx, e.storage)
	if err != nil {
		// Proceeding with empty sets would flag every value as unknown.
		return nil, fmt.Errorf("cannot start sync: %w", err)
	}

	validator := NewValidator(sets)
	summary := &model.SyncSummary{}

	for _, p := range partitions {
		outcome := e.syncPartition(ctx, validator, p)
		slog.Info("Partition complete",
			"partition", p.name,
			"imported", outcome.Imported,
			"updated", outcome.Updated,
			"failed", outcome.Failed,
			"with_findings", outcome.Findings)
		summary.Totals.Add(outcome)
	}

	slog.Info("Summarizing catalog")
	e.collectStats(ctx, summary)

	summary.Report = BuildReport(validator)
	summary.Duration = time.Since(start)

	return summary, nil
}

// syncPartition fetches and processes one partition. Failures stay inside the
// partition: a fetch error means the partition contributes zero (or partial)
// records and the other partition still runs.
func (e *Engine) syncPartition(ctx context.Context, validator *Validator, p partition) model.PartitionOutcome {
	slog.Info("Fetching partition", "partition", p.name)

	records := e.fetchPartition(ctx, p)
	if len(records) == 0 {
		return model.PartitionOutcome{}
	}

	slog.Info("Processing partition", "partition", p.name, "records", len(records))

	var bar *progressbar.ProgressBar
	if e.config.ShowProgress {
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription(fmt.Sprintf("Processing %s vehicles", p.name)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	var outcome model.PartitionOutcome
	for _, raw := range records {
		e.processRecord(ctx, validator, raw, &outcome)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	return outcome
}

// fetchPartition pages through the partition until a short page, the page
// ceiling, or a fetch error. Fetch errors are logged, never raised: the
// partition simply contributes whatever was fetched before the failure.
func (e *Engine) fetchPartition(ctx context.Context, p partition) []model.ExternalRecord {
	var records []model.ExternalRecord

	for page := 1; page <= e.config.MaxPages; page++ {
		var pageRecords []model.ExternalRecord
		err := common.WithRetry(ctx, func() error {
			fetched, fetchErr := e.source.FetchPage(ctx, p.sold, page)
			if fetchErr != nil {
				return fetchErr
			}
			pageRecords = fetched
			return nil
		}, e.config.Retry)
		if err != nil {
			common.LogError(err, "Partition fetch failed", common.Fields{
				"partition": p.name,
				"page":      page,
				"fetched":   len(records),
			})
			break
		}

		records = append(records, pageRecords...)
		if len(pageRecords) < e.config.PageSize {
			break
		}
	}

	return records
}

// processRecord runs one record through map, normalize, validate and upsert,
// updating the outcome counters. Per-record failures are logged and absorbed.
func (e *Engine) processRecord(ctx context.Context, validator *Validator, raw model.ExternalRecord, outcome *model.PartitionOutcome) {
	mapped := MapFields(raw)
	vehicle := Normalize(mapped)

	if vehicle.Slug == "" {
		common.LogError(fmt.Errorf("record has no usable slug"), "Skipping record", common.Fields{
			"external_id": vehicle.ID,
		})
		outcome.Failed++
		return
	}

	findings := validator.ValidateRecord(vehicle)
	if len(findings) > 0 {
		outcome.Findings++
		for _, finding := range findings {
			slog.Warn("Unknown classification value",
				"slug", vehicle.Slug,
				"field", finding.Field,
				"value", finding.Value,
				"taxonomy", finding.Taxonomy)
		}
	}

	existing, err := e.storage.GetVehicleBySlug(ctx, vehicle.Slug)
	if err != nil {
		common.LogError(err, "Failed to look up vehicle", common.Fields{"slug": vehicle.Slug})
		outcome.Failed++
		return
	}

	if !e.config.DryRun {
		if err := e.storage.UpsertVehicle(ctx, &vehicle); err != nil {
			common.LogError(err, "Failed to upsert vehicle", common.Fields{"slug": vehicle.Slug})
			outcome.Failed++
			return
		}
	}

	if existing == nil {
		outcome.Imported++
	} else {
		outcome.Updated++
	}
}

// collectStats gathers catalog aggregates for the human-facing summary. The
// numbers decide nothing, so failures here only log.
func (e *Engine) collectStats(ctx context.Context, summary *model.SyncSummary) {
	total, err := e.storage.CountVehicles(ctx, service.VehicleFilter{})
	if err != nil {
		common.LogError(err, "Failed to count vehicles", nil)
	} else {
		summary.TotalVehicles = total
	}

	byKind, err := e.storage.CountVehiclesByKind(ctx)
	if err != nil {
		common.LogError(err, "Failed to group vehicles by kind", nil)
	} else {
		summary.ByKind = byKind
	}

	sold := true
	soldCount, err := e.storage.CountVehicles(ctx, service.VehicleFilter{Sold: &sold})
	if err != nil {
		common.LogError(err, "Failed to count sold vehicles", nil)
	} else {
		summary.SoldCount = soldCount
		summary.UnsoldCount = summary.TotalVehicles - soldCount
	}
}
