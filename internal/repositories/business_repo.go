package repositories

import "montra/internal/models"

// BusinessFilter narrows an active-business listing.
type BusinessFilter struct {
	Category string // exact category match, empty for all
	Street   string // case-insensitive substring of the street address
	Offset   int
	Limit    int
}

// BusinessRepository defines the interface for business data access.
//
// GetByID returns inactive businesses too; callers that serve reads must
// check IsActive themselves. The consistency engine relies on this to reach
// soft-deleted records during cleanup.
type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id string) (*models.Business, error)
	ListActive(filter BusinessFilter) ([]models.Business, error)
	ListByOwner(ownerID string) ([]models.Business, error)
	Update(business *models.Business) error
}
