package services_test

import (
	"fmt"
	"testing"
	"time"

	"montra/internal/apperrors"
	"montra/internal/models"
	"montra/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestUser() *models.User {
	return &models.User{
		FullName:    "João Silva",
		Email:       "joao@example.com",
		Password:    "password123",
		BirthDate:   time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Nationality: "Portuguesa",
		Gender:      "Masculino",
		Phone:       "912345678",
		Resident:    true,
	}
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	user := newTestUser()
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		// The stored credential must be a bcrypt hash of the plaintext
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	err := service.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	user := newTestUser()
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "u1", Email: user.Email}, nil).Once()

	err := service.RegisterUser(user)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &models.User{ID: "u1", Email: "joao@example.com", Password: string(hashed)}

	// Successful login yields a token whose claims identify the user
	mockRepo.On("GetByEmail", "joao@example.com").Return(stored, nil).Once()
	token, err := service.LoginUser("joao@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "joao@example.com", claims["email"])

	// Wrong password
	mockRepo.On("GetByEmail", "joao@example.com").Return(stored, nil).Once()
	_, err = service.LoginUser("joao@example.com", "wrong")
	assert.Error(t, err)

	// Unknown email does not reveal whether the account exists
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)).Once()
	_, err = service.LoginUser("nobody@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)

	// A token signed with a different secret is rejected
	other := services.NewAuthService(mockRepo, "other_secret")
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	stored := &models.User{ID: "u1", Email: "a@b.pt", Password: string(hashed)}
	mockRepo.On("GetByEmail", "a@b.pt").Return(stored, nil).Once()
	token, err := other.LoginUser("a@b.pt", "pw123456")
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_DeleteAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("Delete", "u1").Return(nil).Once()
	assert.NoError(t, service.DeleteAccount("u1"))

	mockRepo.On("Delete", "u2").Return(fmt.Errorf("user with ID u2: %w", apperrors.ErrNotFound)).Once()
	err := service.DeleteAccount("u2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
