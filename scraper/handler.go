// Package scraper defines the brand handler contract, the transports handlers
// fetch through and the discovery helpers they share.
package scraper

import (
	"context"
	"fmt"
	"net/http"

	"pharmacy-locator/config"
	"pharmacy-locator/models"
	"pharmacy-locator/utils"
)

// Brand identifies one pharmacy chain.
type Brand string

const (
	BrandDDS              Brand = "dds"
	BrandAmcal            Brand = "amcal"
	BrandBlooms           Brand = "blooms"
	BrandRamsay           Brand = "ramsay"
	BrandRevive           Brand = "revive"
	BrandOptimal          Brand = "optimal"
	BrandCommunity        Brand = "community"
	BrandFootes           Brand = "footes"
	BrandAlive            Brand = "alive"
	BrandYDC              Brand = "ydc"
	BrandChemistWarehouse Brand = "chemist_warehouse"
	BrandPharmasave       Brand = "pharmasave"
	BrandNova             Brand = "nova"
	BrandChoice           Brand = "choice"
	BrandBendigoUFS       Brand = "bendigo_ufs"
	BrandChemistKing      Brand = "chemist_king"
	BrandHealthyPharmacy  Brand = "healthy_pharmacy"
	BrandGoodPrice        Brand = "good_price"
	BrandWizard           Brand = "wizard"
	BrandFullife          Brand = "fullife"
	BrandChemistHub       Brand = "chemist_hub"
	BrandCompleteCare     Brand = "complete_care"
	BrandPennas           Brand = "pennas"
	BrandFriendlyCare     Brand = "friendly_care"
	BrandHealthyWorld     Brand = "healthy_world"
)

// AllBrands is the closed set of supported brands in run order.
var AllBrands = []Brand{
	BrandDDS, BrandAmcal, BrandBlooms, BrandRamsay, BrandRevive, BrandOptimal,
	BrandCommunity, BrandFootes, BrandAlive, BrandYDC, BrandChemistWarehouse,
	BrandPharmasave, BrandNova, BrandChoice, BrandBendigoUFS, BrandChemistKing,
	BrandHealthyPharmacy, BrandGoodPrice, BrandWizard, BrandFullife,
	BrandChemistHub, BrandCompleteCare, BrandPennas, BrandFriendlyCare,
	BrandHealthyWorld,
}

// Handler is implemented once per source grammar.
//
// FetchLocations returns nil, nil when the source reports zero stores and an
// error when the list itself could not be fetched. Extract is pure and must
// tolerate any missing field by leaving it out.
type Handler interface {
	Brand() Brand
	FetchLocations(ctx context.Context) ([]models.Location, error)
	FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error)
	Extract(raw *models.RawRecord) models.Pharmacy
	FetchAll(ctx context.Context) ([]models.Pharmacy, error)
}

// Deps is everything a handler is constructed with.
type Deps struct {
	Client     Client
	Logger     *utils.Logger
	Endpoints  config.Endpoints
	HeavyBatch int
	LightBatch int
}

// NewDeps derives handler dependencies from the loaded configuration.
func NewDeps(cfg *config.Config, client Client, logger *utils.Logger) Deps {
	return Deps{
		Client:     client,
		Logger:     logger,
		Endpoints:  cfg.Endpoints,
		HeavyBatch: cfg.HeavyBatchSize,
		LightBatch: cfg.LightBatchSize,
	}
}

// Base carries a handler's brand and dependencies and implements the two
// pipeline compositions.
type Base struct {
	Deps
	brand Brand
	log   *utils.Logger
}

// NewBase scopes deps to one brand.
func NewBase(brand Brand, deps Deps) Base {
	if deps.Logger == nil {
		deps.Logger = utils.NewNopLogger()
	}
	if deps.HeavyBatch <= 0 {
		deps.HeavyBatch = 5
	}
	if deps.LightBatch <= 0 {
		deps.LightBatch = 10
	}
	return Base{Deps: deps, brand: brand, log: deps.Logger.With("brand", string(brand))}
}

// Brand implements Handler.
func (b *Base) Brand() Brand { return b.brand }

// Log returns the brand-scoped logger.
func (b *Base) Log() *utils.Logger { return b.log }

// Get fetches url with optional headers, failing on a non-200 status.
func (b *Base) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return Fetch(ctx, b.Client, Request{Method: http.MethodGet, URL: url, Headers: headers})
}

// PostJSON sends body as JSON.
func (b *Base) PostJSON(ctx context.Context, url string, headers map[string]string, body any) (*Response, error) {
	return Fetch(ctx, b.Client, Request{Method: http.MethodPost, URL: url, Headers: headers, Body: body})
}

// PostForm sends form urlencoded.
func (b *Base) PostForm(ctx context.Context, url string, headers, form map[string]string) (*Response, error) {
	return Fetch(ctx, b.Client, Request{Method: http.MethodPost, URL: url, Headers: headers, Form: form})
}

// FetchPage loads loc.URL and packages the HTML with its stub.
func (b *Base) FetchPage(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	if loc.URL == "" {
		return nil, fmt.Errorf("%s: location %q has no url", b.brand, loc.ID)
	}
	resp, err := b.Get(ctx, loc.URL, map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		return nil, err
	}
	return &models.RawRecord{Location: loc, HTML: resp.Text()}, nil
}

// Passthrough is the detail step for brands whose list is already complete.
func Passthrough(loc models.Location) *models.RawRecord {
	return &models.RawRecord{Location: loc, Data: loc.Data}
}

// extractor is the part of Handler the collectors need.
type extractor interface {
	Extract(raw *models.RawRecord) models.Pharmacy
}

// SafeExtract runs Extract and reports false if it panicked.
func (b *Base) SafeExtract(h extractor, raw *models.RawRecord) (p models.Pharmacy, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn("[%s] Skipping %s: extract panicked: %v", b.brand, label(raw.Location), r)
			ok = false
		}
	}()
	return h.Extract(raw), true
}

// CollectListed extracts each location of a complete list in order.
func (b *Base) CollectListed(h extractor, locs []models.Location) []models.Pharmacy {
	out := make([]models.Pharmacy, 0, len(locs))
	for _, loc := range locs {
		if p, ok := b.SafeExtract(h, Passthrough(loc)); ok {
			out = append(out, p)
		}
	}
	b.log.Info("[%s] Extracted %d of %d locations", b.brand, len(out), len(locs))
	return out
}

// CollectDetailed fetches details in fixed-size batches, awaiting each batch
// before the next, and extracts the successes in input order. Items whose
// detail fetch fails are logged and skipped.
func (b *Base) CollectDetailed(ctx context.Context, h Handler, locs []models.Location, batchSize int) []models.Pharmacy {
	batcher := utils.Batcher{
		Size: batchSize,
		OnBatch: func(batch, size int) {
			b.log.Debug("[%s] Batch %d: fetching %d details", b.brand, batch, size)
		},
	}
	results := utils.RunBatches(ctx, batcher, locs, h.FetchDetails)

	out := make([]models.Pharmacy, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			b.log.Warn("[%s] Detail fetch failed for %s: %v", b.brand, label(locs[r.Index]), r.Err)
			continue
		}
		if r.Value == nil {
			continue
		}
		if p, ok := b.SafeExtract(h, r.Value); ok {
			out = append(out, p)
		}
	}
	b.log.Info("[%s] Extracted %d of %d locations", b.brand, len(out), len(locs))
	return out
}

// RunListed is the FetchAll of a list-complete brand.
func (b *Base) RunListed(ctx context.Context, h Handler) ([]models.Pharmacy, error) {
	locs, err := h.FetchLocations(ctx)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, nil
	}
	return b.CollectListed(h, locs), nil
}

// RunDetailed is the FetchAll of a brand needing one detail fetch per store.
func (b *Base) RunDetailed(ctx context.Context, h Handler, batchSize int) ([]models.Pharmacy, error) {
	locs, err := h.FetchLocations(ctx)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, nil
	}
	return b.CollectDetailed(ctx, h, locs, batchSize), nil
}

func label(loc models.Location) string {
	switch {
	case loc.URL != "":
		return loc.URL
	case loc.Name != "":
		return loc.Name
	default:
		return loc.ID
	}
}
