package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pharmacy-locator/models"
)

// CSVWriter writes one <brand>_pharmacies.csv file per brand into a directory.
// It is safe for concurrent use.
type CSVWriter struct {
	mu  sync.Mutex
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// Path returns the file a brand is written to.
func (c *CSVWriter) Path(brand string) string {
	return filepath.Join(c.dir, brand+"_pharmacies.csv")
}

// WriteBrand creates (or truncates) the brand's file and writes the header
// and one row per record. Nothing is written for an empty list.
func (c *CSVWriter) WriteBrand(brand string, records []models.Pharmacy) (string, error) {
	if len(records) == 0 {
		return "", nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.Path(brand)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.Columns); err != nil {
		return "", fmt.Errorf("csv: write header: %w", err)
	}
	for _, p := range records {
		row, err := p.Values()
		if err != nil {
			return "", fmt.Errorf("csv: encode %q: %w", p.Name, err)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv: flush %q: %w", path, err)
	}
	return path, f.Close()
}
