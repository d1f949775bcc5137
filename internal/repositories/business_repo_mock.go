package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"montra/internal/apperrors"
	"montra/internal/models"

	"github.com/google/uuid"
)

// MockBusinessRepository is an in-memory implementation of BusinessRepository.
type MockBusinessRepository struct {
	businesses map[string]models.Business
	mu         sync.RWMutex
}

// NewMockBusinessRepository creates a new instance of MockBusinessRepository.
func NewMockBusinessRepository() *MockBusinessRepository {
	return &MockBusinessRepository{
		businesses: make(map[string]models.Business),
	}
}

// Create adds a new business.
func (r *MockBusinessRepository) Create(business *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if business.ID == "" {
		business.ID = uuid.New().String()
	}
	r.businesses[business.ID] = *business
	return nil
}

// GetByID returns a business by its ID, active or not.
func (r *MockBusinessRepository) GetByID(id string) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	business, ok := r.businesses[id]
	if !ok {
		return nil, fmt.Errorf("business with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &business, nil
}

// ListActive returns active businesses matching the filter, newest first.
func (r *MockBusinessRepository) ListActive(filter BusinessFilter) ([]models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Business, 0)
	for _, b := range r.businesses {
		if !b.IsActive {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Street != "" && !strings.Contains(strings.ToLower(b.Street), strings.ToLower(filter.Street)) {
			continue
		}
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(list) {
			return []models.Business{}, nil
		}
		list = list[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(list) {
		list = list[:filter.Limit]
	}
	return list, nil
}

// ListByOwner returns all businesses registered by a user.
func (r *MockBusinessRepository) ListByOwner(ownerID string) ([]models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Business, 0)
	for _, b := range r.businesses {
		if b.OwnerID == ownerID {
			list = append(list, b)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Update replaces an existing business.
func (r *MockBusinessRepository) Update(business *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.businesses[business.ID]; !ok {
		return fmt.Errorf("business with ID %s: %w", business.ID, apperrors.ErrNotFound)
	}
	r.businesses[business.ID] = *business
	return nil
}
