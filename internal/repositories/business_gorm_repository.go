package repositories

import (
	"errors"
	"fmt"
	"strings"

	"montra/internal/apperrors"
	"montra/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBusinessRepository is a GORM implementation of BusinessRepository.
type GORMBusinessRepository struct {
	db *gorm.DB
}

// NewGORMBusinessRepository creates a new instance of GORMBusinessRepository.
func NewGORMBusinessRepository(db *gorm.DB) *GORMBusinessRepository {
	return &GORMBusinessRepository{
		db: db,
	}
}

// Create creates a new business in the database.
func (r *GORMBusinessRepository) Create(business *models.Business) error {
	if business.ID == "" {
		business.ID = uuid.New().String()
	}
	if err := r.db.Create(business).Error; err != nil {
		return fmt.Errorf("failed to create business: %w: %w", apperrors.ErrUpstream, err)
	}
	return nil
}

// GetByID retrieves a single business by its ID, active or not.
func (r *GORMBusinessRepository) GetByID(id string) (*models.Business, error) {
	var business models.Business
	if err := r.db.First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("business with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get business by ID %s: %w: %w", id, apperrors.ErrUpstream, err)
	}
	return &business, nil
}

// ListActive retrieves active businesses matching the filter, newest first.
func (r *GORMBusinessRepository) ListActive(filter BusinessFilter) ([]models.Business, error) {
	q := r.db.Where("is_active = ?", true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Street != "" {
		q = q.Where("LOWER(street) LIKE ?", "%"+strings.ToLower(filter.Street)+"%")
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var businesses []models.Business
	if err := q.Order("created_at DESC").Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("failed to list active businesses: %w: %w", apperrors.ErrUpstream, err)
	}
	return businesses, nil
}

// ListByOwner retrieves all businesses registered by a user, newest first.
// Inactive businesses are included so owners can see what they deleted.
func (r *GORMBusinessRepository) ListByOwner(ownerID string) ([]models.Business, error) {
	var businesses []models.Business
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("failed to list businesses for owner %s: %w: %w", ownerID, apperrors.ErrUpstream, err)
	}
	return businesses, nil
}

// Update replaces an existing business document.
func (r *GORMBusinessRepository) Update(business *models.Business) error {
	res := r.db.Save(business) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update business %s: %w: %w", business.ID, apperrors.ErrUpstream, res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row, so we
		// check RowsAffected.
		return fmt.Errorf("business with ID %s: %w", business.ID, apperrors.ErrNotFound)
	}
	return nil
}
