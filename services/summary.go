package services

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pharmacy-locator/models"
	"pharmacy-locator/utils"
)

// SummaryService tallies brand results and prints the end-of-run report.
type SummaryService struct {
	logger *utils.Logger
	out    io.Writer
}

// NewSummaryService prints to stdout.
func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger, out: os.Stdout}
}

// WithOutput redirects the report.
func (s *SummaryService) WithOutput(w io.Writer) *SummaryService {
	s.out = w
	return s
}

// Generate counts a brand as successful when it returned at least one
// record without error.
func (s *SummaryService) Generate(results []models.BrandResult) *models.RunSummary {
	sum := &models.RunSummary{TotalBrands: len(results), Results: results}
	for _, r := range results {
		if r.Err == nil && len(r.Records) > 0 {
			sum.Successful++
			sum.TotalLocations += len(r.Records)
			continue
		}
		sum.Failed++
	}
	return sum
}

// Print renders one row per brand, then the totals.
func (s *SummaryService) Print(sum *models.RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle("Pharmacy locator run summary")
	t.AppendHeader(table.Row{"Brand", "Locations", "Duration", "Status", "Output"})

	for _, r := range sum.Results {
		t.AppendRow(table.Row{r.Brand, len(r.Records), r.Duration.Round(time.Millisecond), status(r), r.Output})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("Brands: %d", sum.TotalBrands),
		sum.TotalLocations,
		"",
		fmt.Sprintf("%d ok / %d failed", sum.Successful, sum.Failed),
		"",
	})
	t.Render()

	s.logger.Info("[summary] Total brands: %d, successful: %d, failed: %d, total locations: %d",
		sum.TotalBrands, sum.Successful, sum.Failed, sum.TotalLocations)
}

func status(r models.BrandResult) string {
	switch {
	case r.Err != nil:
		return truncate("error: "+r.Err.Error(), 60)
	case len(r.Records) == 0:
		return "no data"
	default:
		return "ok"
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
