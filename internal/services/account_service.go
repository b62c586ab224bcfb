package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
)

// accountService handles user account business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// Register creates a new user with a bcrypt-hashed password and provisions
// the default category set. The user insert and the default categories are
// committed in a single database transaction.
func (s *accountService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, def := range models.DefaultCategories {
			category := &models.Category{
				UserID: user.ID,
				Name:   def.Name,
				Type:   def.Type,
			}
			if err := tx.Create(category).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate looks up a user by username and verifies the password.
// Unknown usernames and wrong passwords both return (nil, nil).
func (s *accountService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *accountService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
