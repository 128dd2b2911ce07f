package storage

import "pharmacy-locator/models"

// PharmacyWriter is the interface any storage backend must satisfy.
// WriteBrand persists one brand's records and returns where they went.
type PharmacyWriter interface {
	WriteBrand(brand string, records []models.Pharmacy) (string, error)
}
