package services_test

import (
	"fmt"
	"testing"

	"montra/internal/apperrors"
	"montra/internal/models"
	"montra/internal/repositories"
	"montra/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFavoriteRepo is a mock implementation of repositories.FavoriteRepository
type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Create(favorite *models.Favorite) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepo) GetByUserAndBusiness(userID, businessID string) (*models.Favorite, error) {
	args := m.Called(userID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepo) ListByUser(userID string) ([]models.Favorite, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepo) ListByBusiness(businessID string) ([]models.Favorite, error) {
	args := m.Called(businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepo) Update(favorite *models.Favorite) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepo) Delete(id, userID string) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// MockBusinessRepo is a mock implementation of repositories.BusinessRepository
type MockBusinessRepo struct {
	mock.Mock
}

func (m *MockBusinessRepo) Create(business *models.Business) error {
	args := m.Called(business)
	return args.Error(0)
}

func (m *MockBusinessRepo) GetByID(id string) (*models.Business, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *MockBusinessRepo) ListActive(filter repositories.BusinessFilter) ([]models.Business, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Business), args.Error(1)
}

func (m *MockBusinessRepo) ListByOwner(ownerID string) ([]models.Business, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Business), args.Error(1)
}

func (m *MockBusinessRepo) Update(business *models.Business) error {
	args := m.Called(business)
	return args.Error(0)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
}

func TestFavoriteService_AddFavorite(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	business := &models.Business{ID: "b1", Name: "Café X", Category: "Café", IsActive: true}

	bizRepo.On("GetByID", "b1").Return(business, nil).Once()
	favRepo.On("GetByUserAndBusiness", "u1", "b1").Return(nil, notFoundErr("favourite")).Once()
	favRepo.On("Create", mock.MatchedBy(func(f *models.Favorite) bool {
		return f.UserID == "u1" && f.BusinessID == "b1" &&
			f.BusinessName == "Café X" && f.BusinessCategory == "Café"
	})).Return(nil).Once()

	favorite, err := service.AddFavorite("u1", "b1")
	assert.NoError(t, err)
	assert.Equal(t, "Café X", favorite.BusinessName)
	assert.Equal(t, "Café", favorite.BusinessCategory)
	favRepo.AssertExpectations(t)
	bizRepo.AssertExpectations(t)
}

func TestFavoriteService_AddFavorite_InactiveBusiness(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	bizRepo.On("GetByID", "b1").Return(&models.Business{ID: "b1", IsActive: false}, nil).Once()

	favorite, err := service.AddFavorite("u1", "b1")
	assert.Nil(t, favorite)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	favRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestFavoriteService_AddFavorite_Duplicate(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	business := &models.Business{ID: "b1", Name: "Café X", Category: "Café", IsActive: true}
	existing := &models.Favorite{ID: "f1", UserID: "u1", BusinessID: "b1"}

	bizRepo.On("GetByID", "b1").Return(business, nil).Once()
	favRepo.On("GetByUserAndBusiness", "u1", "b1").Return(existing, nil).Once()

	favorite, err := service.AddFavorite("u1", "b1")
	assert.Nil(t, favorite)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	favRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestFavoriteService_RemoveFavorite(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	existing := &models.Favorite{ID: "f1", UserID: "u1", BusinessID: "b1"}
	favRepo.On("GetByUserAndBusiness", "u1", "b1").Return(existing, nil).Once()
	favRepo.On("Delete", "f1", "u1").Return(nil).Once()

	assert.NoError(t, service.RemoveFavorite("u1", "b1"))
	favRepo.AssertExpectations(t)

	// Missing favourite yields not found
	favRepo.On("GetByUserAndBusiness", "u1", "b2").Return(nil, notFoundErr("favourite")).Once()
	err := service.RemoveFavorite("u1", "b2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFavoriteService_SyncBusinessSnapshot(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	stale := models.Favorite{ID: "f1", UserID: "u1", BusinessID: "b1", BusinessName: "Old", BusinessCategory: "Loja"}
	current := models.Favorite{ID: "f2", UserID: "u2", BusinessID: "b1", BusinessName: "New", BusinessCategory: "Café"}

	favRepo.On("ListByBusiness", "b1").Return([]models.Favorite{stale, current}, nil).Once()
	favRepo.On("Update", mock.MatchedBy(func(f *models.Favorite) bool {
		return f.ID == "f1" && f.BusinessName == "New" && f.BusinessCategory == "Café"
	})).Return(nil).Once()

	err := service.SyncBusinessSnapshot("b1", "New", "Café")
	assert.NoError(t, err)
	// f2 already matches the new values and must not be rewritten
	favRepo.AssertNumberOfCalls(t, "Update", 1)
	favRepo.AssertExpectations(t)
}

func TestFavoriteService_SyncBusinessSnapshot_PartialFailure(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	f1 := models.Favorite{ID: "f1", UserID: "u1", BusinessID: "b1", BusinessName: "Old"}
	f2 := models.Favorite{ID: "f2", UserID: "u2", BusinessID: "b1", BusinessName: "Old"}

	favRepo.On("ListByBusiness", "b1").Return([]models.Favorite{f1, f2}, nil).Once()
	favRepo.On("Update", mock.MatchedBy(func(f *models.Favorite) bool { return f.ID == "f1" })).
		Return(fmt.Errorf("write failed: %w", apperrors.ErrUpstream)).Once()
	favRepo.On("Update", mock.MatchedBy(func(f *models.Favorite) bool { return f.ID == "f2" })).
		Return(nil).Once()

	// One failed record does not abort the fan-out or surface as an error;
	// the stale favourite reconciles on the next successful update.
	err := service.SyncBusinessSnapshot("b1", "New", "Café")
	assert.NoError(t, err)
	favRepo.AssertNumberOfCalls(t, "Update", 2)
}

func TestFavoriteService_RemoveAllForBusiness(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	f1 := models.Favorite{ID: "f1", UserID: "u1", BusinessID: "b1"}
	f2 := models.Favorite{ID: "f2", UserID: "u2", BusinessID: "b1"}

	favRepo.On("ListByBusiness", "b1").Return([]models.Favorite{f1, f2}, nil).Once()
	favRepo.On("Delete", "f1", "u1").Return(nil).Once()
	favRepo.On("Delete", "f2", "u2").Return(nil).Once()

	assert.NoError(t, service.RemoveAllForBusiness("b1"))
	favRepo.AssertExpectations(t)
}

func TestFavoriteService_ListFavorites_ExcludesGoneBusinesses(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	f1 := models.Favorite{ID: "f1", UserID: "u1", BusinessID: "b1", BusinessName: "Café X"}
	f2 := models.Favorite{ID: "f2", UserID: "u1", BusinessID: "b2", BusinessName: "Gone"}
	f3 := models.Favorite{ID: "f3", UserID: "u1", BusinessID: "b3", BusinessName: "Inactive"}

	favRepo.On("ListByUser", "u1").Return([]models.Favorite{f1, f2, f3}, nil).Once()
	bizRepo.On("GetByID", "b1").Return(&models.Business{ID: "b1", Name: "Café X", IsActive: true}, nil).Once()
	bizRepo.On("GetByID", "b2").Return(nil, notFoundErr("business")).Once()
	bizRepo.On("GetByID", "b3").Return(&models.Business{ID: "b3", IsActive: false}, nil).Once()

	result, err := service.ListFavorites("u1")
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "f1", result[0].Favorite.ID)
	assert.Equal(t, "Café X", result[0].Business.Name)
}

func TestFavoriteService_IsFavorite(t *testing.T) {
	favRepo := new(MockFavoriteRepo)
	bizRepo := new(MockBusinessRepo)
	service := services.NewFavoriteService(favRepo, bizRepo)

	favRepo.On("GetByUserAndBusiness", "u1", "b1").
		Return(&models.Favorite{ID: "f1", UserID: "u1", BusinessID: "b1"}, nil).Once()
	ok, id, err := service.IsFavorite("u1", "b1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "f1", id)

	favRepo.On("GetByUserAndBusiness", "u1", "b2").Return(nil, notFoundErr("favourite")).Once()
	ok, id, err = service.IsFavorite("u1", "b2")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)
}
