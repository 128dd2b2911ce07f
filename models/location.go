package models

import "time"

// Location is the brand-specific stub discovered by a list fetch. Data carries
// whatever the source returned when the list is already complete.
type Location struct {
	ID      string
	StoreID string
	Name    string
	URL     string
	Data    map[string]any
}

// RawRecord is a location packaged with its detail payload. It exists only for
// one fetch-and-extract cycle.
type RawRecord struct {
	Location Location
	HTML     string
	Data     map[string]any
}

// BrandResult is the outcome of one brand's pipeline.
type BrandResult struct {
	Brand    string
	Records  []Pharmacy
	Err      error
	Duration time.Duration
	Output   string
}

// RunSummary holds the counts printed at the end of a run.
type RunSummary struct {
	TotalBrands    int
	Successful     int
	Failed         int
	TotalLocations int
	Results        []BrandResult
}
