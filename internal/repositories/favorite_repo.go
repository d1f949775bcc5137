package repositories

import "montra/internal/models"

// FavoriteRepository defines the interface for favourite data access.
//
// Favourites are keyed by their owning user: every point operation carries
// the userID alongside the record ID. ListByBusiness is the one cross-user
// query; the consistency engine uses it to reach every favourite that
// references a business regardless of who owns it.
type FavoriteRepository interface {
	Create(favorite *models.Favorite) error
	GetByUserAndBusiness(userID, businessID string) (*models.Favorite, error)
	ListByUser(userID string) ([]models.Favorite, error)
	ListByBusiness(businessID string) ([]models.Favorite, error)
	Update(favorite *models.Favorite) error
	Delete(id, userID string) error
}
