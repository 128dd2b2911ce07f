package services

import (
	"strings"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/utils"
)

// Cleaner tidies one brand's records before they are written.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean collapses whitespace in every text field, reduces the state to its
// abbreviation (clearing anything that is not an Australian state), drops records without a name and drops exact duplicates. Input order is
// kept.
func (c *Cleaner) Clean(brand string, records []models.Pharmacy) []models.Pharmacy {
	seen := make(map[string]struct{}, len(records))
	result := make([]models.Pharmacy, 0, len(records))

	for _, r := range records {
		p := normaliseRecord(r)
		if p.Name == "" {
			c.logger.Warn("[cleaner] [%s] Dropping record without a name: %s", brand, p.Address)
			continue
		}

		key, err := p.Values()
		if err != nil {
			c.logger.Warn("[cleaner] [%s] Dropping unencodable record %q: %v", brand, p.Name, err)
			continue
		}
		k := strings.Join(key, "\x00")
		if _, dup := seen[k]; dup {
			c.logger.Debug("[cleaner] [%s] Duplicate skipped: %s", brand, p.Name)
			continue
		}
		seen[k] = struct{}{}
		result = append(result, p)
	}

	c.logger.Info("[cleaner] [%s] Cleaned %d → %d records (dropped %d)",
		brand, len(records), len(result), len(records)-len(result))
	return result
}

func normaliseRecord(p models.Pharmacy) models.Pharmacy {
	p.Name = normalize.CleanText(p.Name)
	p.Address = normalize.CleanText(p.Address)
	p.Email = normalize.CleanText(p.Email)
	p.Fax = normalize.CleanText(p.Fax)
	p.Latitude = normalize.CleanText(p.Latitude)
	p.Longitude = normalize.CleanText(p.Longitude)
	p.Phone = normalize.CleanText(p.Phone)
	p.Postcode = normalize.CleanText(p.Postcode)
	p.State = normalize.StateAbbr(p.State)
	p.StreetAddress = normalize.CleanText(p.StreetAddress)
	p.Suburb = normalize.CleanText(p.Suburb)
	p.Website = normalize.CleanText(p.Website)
	return p
}
