package repositories

import (
	"fmt"
	"sort"
	"sync"

	"montra/internal/apperrors"
	"montra/internal/models"

	"github.com/google/uuid"
)

// MockFavoriteRepository is an in-memory implementation of FavoriteRepository.
type MockFavoriteRepository struct {
	favorites map[string]models.Favorite
	mu        sync.RWMutex
}

// NewMockFavoriteRepository creates a new instance of MockFavoriteRepository.
func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{
		favorites: make(map[string]models.Favorite),
	}
}

// Create adds a new favourite, enforcing (user, business) uniqueness.
func (r *MockFavoriteRepository) Create(favorite *models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.favorites {
		if f.UserID == favorite.UserID && f.BusinessID == favorite.BusinessID {
			return fmt.Errorf("favourite for user %s and business %s: %w",
				favorite.UserID, favorite.BusinessID, apperrors.ErrConflict)
		}
	}
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	r.favorites[favorite.ID] = *favorite
	return nil
}

// GetByUserAndBusiness returns the favourite for a (user, business) pair.
func (r *MockFavoriteRepository) GetByUserAndBusiness(userID, businessID string) (*models.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.favorites {
		if f.UserID == userID && f.BusinessID == businessID {
			fav := f
			return &fav, nil
		}
	}
	return nil, fmt.Errorf("favourite for user %s and business %s: %w", userID, businessID, apperrors.ErrNotFound)
}

// ListByUser returns all favourites of a user, newest first.
func (r *MockFavoriteRepository) ListByUser(userID string) ([]models.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Favorite, 0)
	for _, f := range r.favorites {
		if f.UserID == userID {
			list = append(list, f)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// ListByBusiness returns every favourite referencing a business.
func (r *MockFavoriteRepository) ListByBusiness(businessID string) ([]models.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Favorite, 0)
	for _, f := range r.favorites {
		if f.BusinessID == businessID {
			list = append(list, f)
		}
	}
	return list, nil
}

// Update replaces an existing favourite.
func (r *MockFavoriteRepository) Update(favorite *models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.favorites[favorite.ID]; !ok {
		return fmt.Errorf("favourite with ID %s: %w", favorite.ID, apperrors.ErrNotFound)
	}
	r.favorites[favorite.ID] = *favorite
	return nil
}

// Delete removes a favourite by its ID within the owning user's scope.
func (r *MockFavoriteRepository) Delete(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.favorites[id]
	if !ok || f.UserID != userID {
		return fmt.Errorf("favourite with ID %s: %w", id, apperrors.ErrNotFound)
	}
	delete(r.favorites, id)
	return nil
}
