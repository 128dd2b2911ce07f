package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy-locator/config"
	"pharmacy-locator/models"
	"pharmacy-locator/scraper"
	"pharmacy-locator/scraper/fullife"
	"pharmacy-locator/scraper/scrapertest"
)

func TestEveryBrandHasConstructor(t *testing.T) {
	for _, b := range scraper.AllBrands {
		_, ok := constructors[b]
		assert.True(t, ok, "no constructor for %s", b)
	}
	assert.Len(t, constructors, len(scraper.AllBrands))
}

func TestResolveAll(t *testing.T) {
	r := New(scrapertest.New(nil).Deps())
	handlers, err := r.Resolve(nil)
	require.NoError(t, err)
	require.Len(t, handlers, len(scraper.AllBrands))
	for i, h := range handlers {
		assert.Equal(t, scraper.AllBrands[i], h.Brand())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []scraper.Brand
		wantErr string
	}{
		{name: "selection", in: []string{"dds", " Blooms "}, want: []scraper.Brand{scraper.BrandDDS, scraper.BrandBlooms}},
		{name: "duplicates", in: []string{"ydc", "ydc", ""}, want: []scraper.Brand{scraper.BrandYDC}},
		{name: "unknown", in: []string{"dds", "zzz", "aaa"}, wantErr: "unknown brands aaa, zzz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveBrowserBrands(t *testing.T) {
	base := scrapertest.New(nil)
	browser := scrapertest.New(nil)
	cfg := &config.Config{BrowserBrands: []string{"fullife"}}
	r := New(base.Deps()).WithBrowser(browser, cfg.UsesBrowser)

	handlers, err := r.Resolve([]string{"fullife", "dds"})
	require.NoError(t, err)
	require.Len(t, handlers, 2)

	fh, ok := handlers[0].(*fullife.Handler)
	require.True(t, ok)
	assert.Same(t, browser, fh.Client)

	var routed []string
	r = New(base.Deps()).WithBrowser(browser, func(brand string) bool {
		routed = append(routed, brand)
		return false
	})
	handlers, err = r.Resolve([]string{"Fullife"})
	require.NoError(t, err)
	fh, ok = handlers[0].(*fullife.Handler)
	require.True(t, ok)
	assert.NotSame(t, browser, fh.Client)
	assert.Equal(t, []string{"fullife"}, routed)
}

func TestResolveMissingTenant(t *testing.T) {
	deps := scrapertest.New(nil).Deps()
	deps.Endpoints.MedmateTenants = nil
	_, err := New(deps).Resolve([]string{"amcal"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry: build amcal")
}

func TestNames(t *testing.T) {
	names := Names()
	require.Len(t, names, len(scraper.AllBrands))
	assert.Equal(t, "dds", names[0])
	assert.Equal(t, "healthy_world", names[len(names)-1])
}

const storePage = `<html><body><form id="aspnetForm"><h1>Kew East</h1><h2>Kew East</h2>
<p>1 High St, Kew East VIC 3102</p>
<p><a href="tel:0398171234">(03) 9817 1234</a> <a href="mailto:kew@example.com.au">kew@example.com.au</a></p>
<p>Monday - Friday: 9am - 5pm<br>Saturday: Closed</p>
</form></body></html>`

func extractRecords() map[string]*models.RawRecord {
	loc := models.Location{ID: "kew-east", StoreID: "kew-east", Name: "Kew East", URL: "https://example.com.au/stores/kew-east"}
	return map[string]*models.RawRecord{
		"empty": {},
		"page":  {Location: loc, HTML: storePage, Data: map[string]any{"html": storePage}},
		"wrong types": {Location: loc, Data: map[string]any{
			"name": 42.0, "address": []any{"x"}, "html": 7.0, "state": map[string]any{}, "trading_hours": "open",
		}},
		"invalid utf8": {Location: loc, HTML: "<p>\xff\xfe Kew</p>", Data: map[string]any{"html": "\xff\xfe", "name": "\xff"}},
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	handlers, err := New(scrapertest.New(nil).Deps()).Resolve(nil)
	require.NoError(t, err)

	for _, h := range handlers {
		for name, raw := range extractRecords() {
			t.Run(string(h.Brand())+"/"+name, func(t *testing.T) {
				first, err := json.Marshal(h.Extract(raw))
				require.NoError(t, err)
				p := h.Extract(raw)
				second, err := json.Marshal(p)
				require.NoError(t, err)
				assert.Equal(t, string(first), string(second))

				for day, dh := range p.TradingHours {
					assert.True(t, dh.Valid(), "%s has a half-filled pair %+v", day, dh)
				}
			})
		}
	}
}
