// Package registry maps every supported brand to its handler constructor.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"pharmacy-locator/scraper"
	"pharmacy-locator/scraper/alive"
	"pharmacy-locator/scraper/bendigoufs"
	"pharmacy-locator/scraper/blooms"
	"pharmacy-locator/scraper/chemisthub"
	"pharmacy-locator/scraper/chemistking"
	"pharmacy-locator/scraper/chemistwarehouse"
	"pharmacy-locator/scraper/community"
	"pharmacy-locator/scraper/completecare"
	"pharmacy-locator/scraper/elfsight"
	"pharmacy-locator/scraper/footes"
	"pharmacy-locator/scraper/friendlycare"
	"pharmacy-locator/scraper/fullife"
	"pharmacy-locator/scraper/goodprice"
	"pharmacy-locator/scraper/healthylife"
	"pharmacy-locator/scraper/healthyworld"
	"pharmacy-locator/scraper/medmate"
	"pharmacy-locator/scraper/pennas"
	"pharmacy-locator/scraper/ramsay"
	"pharmacy-locator/scraper/wizard"
	"pharmacy-locator/scraper/wpsl"
	"pharmacy-locator/scraper/ydc"
)

// Constructor builds the handler of one brand.
type Constructor func(brand scraper.Brand, deps scraper.Deps) (scraper.Handler, error)

func single[H scraper.Handler](ctor func(scraper.Deps) H) Constructor {
	return func(_ scraper.Brand, deps scraper.Deps) (scraper.Handler, error) {
		return ctor(deps), nil
	}
}

func shared[H scraper.Handler](ctor func(scraper.Brand, scraper.Deps) (H, error)) Constructor {
	return func(brand scraper.Brand, deps scraper.Deps) (scraper.Handler, error) {
		h, err := ctor(brand, deps)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}

var constructors = map[scraper.Brand]Constructor{
	scraper.BrandDDS:              shared(medmate.New),
	scraper.BrandAmcal:            shared(medmate.New),
	scraper.BrandBlooms:           single(blooms.New),
	scraper.BrandRamsay:           single(ramsay.New),
	scraper.BrandRevive:           shared(elfsight.New),
	scraper.BrandOptimal:          shared(elfsight.New),
	scraper.BrandCommunity:        single(community.New),
	scraper.BrandFootes:           single(footes.New),
	scraper.BrandAlive:            single(alive.New),
	scraper.BrandYDC:              single(ydc.New),
	scraper.BrandChemistWarehouse: single(chemistwarehouse.New),
	scraper.BrandPharmasave:       shared(wpsl.New),
	scraper.BrandNova:             shared(wpsl.New),
	scraper.BrandChoice:           shared(wpsl.New),
	scraper.BrandBendigoUFS:       single(bendigoufs.New),
	scraper.BrandChemistKing:      single(chemistking.New),
	scraper.BrandHealthyPharmacy:  single(healthylife.New),
	scraper.BrandGoodPrice:        single(goodprice.New),
	scraper.BrandWizard:           single(wizard.New),
	scraper.BrandFullife:          single(fullife.New),
	scraper.BrandChemistHub:       single(chemisthub.New),
	scraper.BrandCompleteCare:     single(completecare.New),
	scraper.BrandPennas:           single(pennas.New),
	scraper.BrandFriendlyCare:     single(friendlycare.New),
	scraper.BrandHealthyWorld:     single(healthyworld.New),
}

// Registry builds handlers for a selection of brands. Brands accepted by the
// WithBrowser predicate fetch through the browser client instead of the
// default one.
type Registry struct {
	deps    scraper.Deps
	browser scraper.Client
	render  func(brand string) bool
}

// New returns a registry whose handlers share deps.
func New(deps scraper.Deps) *Registry {
	return &Registry{deps: deps}
}

// WithBrowser routes every brand for which uses reports true through client.
func (r *Registry) WithBrowser(client scraper.Client, uses func(brand string) bool) *Registry {
	r.browser = client
	r.render = uses
	return r
}

// Names lists every supported brand in run order.
func Names() []string {
	out := make([]string, 0, len(scraper.AllBrands))
	for _, b := range scraper.AllBrands {
		out = append(out, string(b))
	}
	return out
}

// Parse validates names and returns them as brands. An empty selection means
// every brand. Duplicates are dropped and all unknown names are reported
// together.
func Parse(names []string) ([]scraper.Brand, error) {
	if len(names) == 0 {
		return append([]scraper.Brand(nil), scraper.AllBrands...), nil
	}
	var (
		out     []scraper.Brand
		unknown []string
		seen    = map[scraper.Brand]bool{}
	)
	for _, n := range names {
		b := scraper.Brand(strings.ToLower(strings.TrimSpace(n)))
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		if _, ok := constructors[b]; !ok {
			unknown = append(unknown, string(b))
			continue
		}
		out = append(out, b)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("registry: unknown brands %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}
	return out, nil
}

// Resolve builds the handlers for names.
func (r *Registry) Resolve(names []string) ([]scraper.Handler, error) {
	brands, err := Parse(names)
	if err != nil {
		return nil, err
	}
	handlers := make([]scraper.Handler, 0, len(brands))
	for _, b := range brands {
		deps := r.deps
		if r.browser != nil && r.render != nil && r.render(string(b)) {
			deps.Client = r.browser
		}
		h, err := constructors[b](b, deps)
		if err != nil {
			return nil, fmt.Errorf("registry: build %s: %w", b, err)
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}
