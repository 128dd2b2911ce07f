package services

import (
	"context"
	"fmt"
	"time"

	"pharmacy-locator/models"
	"pharmacy-locator/scraper"
	"pharmacy-locator/storage"
	"pharmacy-locator/utils"
)

// Orchestrator runs brand pipelines concurrently and writes each brand's
// cleaned records. One brand failing never cancels another.
type Orchestrator struct {
	logger         *utils.Logger
	cleaner        *Cleaner
	writer         storage.PharmacyWriter
	summary        *SummaryService
	maxConcurrency int
	brandTimeout   time.Duration
}

// OrchestratorConfig bounds a run.
type OrchestratorConfig struct {
	MaxConcurrency int // 0 runs every brand at once
	BrandTimeout   time.Duration
}

// NewOrchestrator wires the run collaborators.
func NewOrchestrator(cfg OrchestratorConfig, writer storage.PharmacyWriter, logger *utils.Logger) *Orchestrator {
	return &Orchestrator{
		logger:         logger,
		cleaner:        NewCleaner(logger),
		writer:         writer,
		summary:        NewSummaryService(logger),
		maxConcurrency: cfg.MaxConcurrency,
		brandTimeout:   cfg.BrandTimeout,
	}
}

// Run executes every handler and returns per-brand results in handler order.
// It returns scraper.ErrNoData alongside the summary when no brand wrote
// any data.
func (o *Orchestrator) Run(ctx context.Context, handlers []scraper.Handler) (*models.RunSummary, error) {
	o.logger.Info("[orchestrator] Running %d brands (max concurrency %d)", len(handlers), o.maxConcurrency)

	results := make([]models.BrandResult, len(handlers))
	pool := utils.NewWorkerPool(o.maxConcurrency)
	for i, h := range handlers {
		i, h := i, h
		pool.Submit(func() {
			results[i] = o.runBrand(ctx, h)
		})
	}
	pool.Wait()

	sum := o.summary.Generate(results)
	if sum.Successful == 0 {
		return sum, scraper.ErrNoData
	}
	return sum, nil
}

// Summary returns the report printer used by Run.
func (o *Orchestrator) Summary() *SummaryService { return o.summary }

func (o *Orchestrator) runBrand(ctx context.Context, h scraper.Handler) (res models.BrandResult) {
	brand := string(h.Brand())
	start := time.Now()
	res.Brand = brand
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%s: panic: %v", brand, r)
			res.Records = nil
			o.logger.Error("[orchestrator] %s panicked: %v", brand, r)
		}
		res.Duration = time.Since(start)
	}()

	if o.brandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.brandTimeout)
		defer cancel()
	}

	o.logger.Info("[orchestrator] Starting %s", brand)
	records, err := h.FetchAll(ctx)
	if err != nil {
		res.Err = err
		o.logger.Error("[orchestrator] %s failed: %v", brand, err)
		return res
	}

	records = o.cleaner.Clean(brand, records)
	if len(records) == 0 {
		o.logger.Warn("[orchestrator] %s produced no data, skipping output", brand)
		return res
	}

	path, err := o.writer.WriteBrand(brand, records)
	if err != nil {
		res.Err = fmt.Errorf("%s: write: %w", brand, err)
		o.logger.Error("[orchestrator] %v", res.Err)
		return res
	}
	res.Records = records
	res.Output = path
	o.logger.Info("[orchestrator] %s: saved %d records to %s", brand, len(records), path)
	return res
}
