package repositories

import (
	"errors"
	"fmt"

	"montra/internal/apperrors"
	"montra/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Create creates a new favourite in the database.
func (r *GORMFavoriteRepository) Create(favorite *models.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	if err := r.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("favourite for user %s and business %s: %w",
				favorite.UserID, favorite.BusinessID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create favourite: %w: %w", apperrors.ErrUpstream, err)
	}
	return nil
}

// GetByUserAndBusiness retrieves the favourite for a (user, business) pair.
func (r *GORMFavoriteRepository) GetByUserAndBusiness(userID, businessID string) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := r.db.First(&favorite, "user_id = ? AND business_id = ?", userID, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("favourite for user %s and business %s: %w", userID, businessID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get favourite: %w: %w", apperrors.ErrUpstream, err)
	}
	return &favorite, nil
}

// ListByUser retrieves all favourites of a user, newest first.
func (r *GORMFavoriteRepository) ListByUser(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favourites for user %s: %w: %w", userID, apperrors.ErrUpstream, err)
	}
	return favorites, nil
}

// ListByBusiness retrieves every favourite referencing a business across
// all users.
func (r *GORMFavoriteRepository) ListByBusiness(businessID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.Where("business_id = ?", businessID).Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favourites for business %s: %w: %w", businessID, apperrors.ErrUpstream, err)
	}
	return favorites, nil
}

// Update replaces an existing favourite document.
func (r *GORMFavoriteRepository) Update(favorite *models.Favorite) error {
	res := r.db.Save(favorite)
	if res.Error != nil {
		return fmt.Errorf("failed to update favourite %s: %w: %w", favorite.ID, apperrors.ErrUpstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favourite with ID %s: %w", favorite.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a favourite by its ID within the owning user's scope.
func (r *GORMFavoriteRepository) Delete(id, userID string) error {
	res := r.db.Delete(&models.Favorite{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete favourite %s: %w: %w", id, apperrors.ErrUpstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favourite with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
