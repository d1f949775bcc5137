package services

import (
	"errors"
	"fmt"
	"log"

	"montra/internal/apperrors"
	"montra/internal/models"
	"montra/internal/repositories"

	"github.com/google/uuid"
)

// FavoriteService keeps favourites and their denormalized business
// snapshots consistent. Besides the user-facing add/remove/list operations
// it owns the fan-out that runs when a business changes: every favourite
// referencing the business gets its snapshot rewritten (on update) or is
// removed (on delete). Each favourite write is an independent atomic
// operation; there is no multi-record transaction, so a failed record is
// logged and left stale rather than rolled back.
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	businessRepo repositories.BusinessRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, businessRepo repositories.BusinessRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		businessRepo: businessRepo,
	}
}

// AddFavorite marks a business as favourite for a user. The business must
// exist and be active; the (user, business) pair must not already exist.
// The favourite's snapshot fields are copied from the business's current
// name and category.
func (s *FavoriteService) AddFavorite(userID, businessID string) (*models.Favorite, error) {
	business, err := s.businessRepo.GetByID(businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsActive {
		return nil, fmt.Errorf("business with ID %s: %w", businessID, apperrors.ErrNotFound)
	}

	if existing, err := s.favoriteRepo.GetByUserAndBusiness(userID, businessID); err == nil && existing != nil {
		return nil, fmt.Errorf("business %s already in favourites: %w", businessID, apperrors.ErrConflict)
	}

	favorite := &models.Favorite{
		ID:               uuid.New().String(),
		UserID:           userID,
		BusinessID:       businessID,
		BusinessName:     business.Name,
		BusinessCategory: business.Category,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// RemoveFavorite removes the favourite for a (user, business) pair. The
// referenced business is untouched.
func (s *FavoriteService) RemoveFavorite(userID, businessID string) error {
	favorite, err := s.favoriteRepo.GetByUserAndBusiness(userID, businessID)
	if err != nil {
		return err
	}
	return s.favoriteRepo.Delete(favorite.ID, userID)
}

// IsFavorite reports whether a business is in the user's favourites,
// returning the favourite's ID when it is.
func (s *FavoriteService) IsFavorite(userID, businessID string) (bool, string, error) {
	favorite, err := s.favoriteRepo.GetByUserAndBusiness(userID, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, "", nil
		}
		return false, "", err
	}
	return true, favorite.ID, nil
}

// ListFavorites returns the user's favourites paired with the live business
// record. A favourite whose business is missing or inactive at read time is
// silently excluded; the delete fan-out is designed to prevent that state
// but cannot fully eliminate it under concurrent writers.
func (s *FavoriteService) ListFavorites(userID string) ([]models.FavoriteWithBusiness, error) {
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.FavoriteWithBusiness, 0, len(favorites))
	for _, favorite := range favorites {
		business, err := s.businessRepo.GetByID(favorite.BusinessID)
		if err != nil || !business.IsActive {
			log.Printf("Business %s not found or inactive, excluding favourite %s", favorite.BusinessID, favorite.ID)
			continue
		}
		result = append(result, models.FavoriteWithBusiness{
			Favorite: favorite,
			Business: *business,
		})
	}
	return result, nil
}

// SyncBusinessSnapshot rewrites the denormalized name and category of every
// favourite referencing a business. Each record is replaced independently;
// a failed replace is logged and skipped, leaving that favourite stale
// until the next successful update. Unchanged records are not rewritten.
func (s *FavoriteService) SyncBusinessSnapshot(businessID, name, category string) error {
	favorites, err := s.favoriteRepo.ListByBusiness(businessID)
	if err != nil {
		return fmt.Errorf("failed to query favourites for fan-out: %w", err)
	}

	failed := 0
	for i := range favorites {
		favorite := favorites[i]
		if favorite.BusinessName == name && favorite.BusinessCategory == category {
			continue
		}
		favorite.BusinessName = name
		favorite.BusinessCategory = category
		if err := s.favoriteRepo.Update(&favorite); err != nil {
			log.Printf("Fan-out: failed to update favourite %s for business %s: %v", favorite.ID, businessID, err)
			failed++
		}
	}
	if failed > 0 {
		log.Printf("Fan-out for business %s left %d of %d favourites stale", businessID, failed, len(favorites))
	}
	return nil
}

// RemoveAllForBusiness deletes every favourite referencing a business. Used
// by the delete cascade after the business is marked inactive, so an
// interleaved read sees a consistent business-gone state.
func (s *FavoriteService) RemoveAllForBusiness(businessID string) error {
	favorites, err := s.favoriteRepo.ListByBusiness(businessID)
	if err != nil {
		return fmt.Errorf("failed to query favourites for cascade: %w", err)
	}

	failed := 0
	for _, favorite := range favorites {
		if err := s.favoriteRepo.Delete(favorite.ID, favorite.UserID); err != nil {
			log.Printf("Cascade: failed to delete favourite %s for business %s: %v", favorite.ID, businessID, err)
			failed++
		}
	}
	if failed > 0 {
		log.Printf("Cascade for business %s left %d of %d favourites behind", businessID, failed, len(favorites))
	}
	return nil
}
