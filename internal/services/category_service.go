package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
)

// categoryService handles category business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// Create creates a new category for the user. Names are unique per user,
// not globally; the category type is validated here rather than trusted
// from the caller.
func (s *categoryService) Create(userID uint, name string, categoryType models.CategoryType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.ErrInvalidCategoryType
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND category_name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// getByID retrieves a category by ID, scoped to the acting user.
func (s *categoryService) getByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// Update renames and retypes a category in place. The category must belong
// to the acting user.
func (s *categoryService) Update(userID, categoryID uint, name string, categoryType models.CategoryType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.ErrInvalidCategoryType
	}

	category, err := s.getByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND category_name = ? AND id <> ?", userID, name, categoryID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	updates := map[string]interface{}{
		"category_name": name,
		"category_type": categoryType,
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// Delete removes a category together with every transaction that references
// it. Both deletes run in one database transaction so a crash can never
// leave transactions pointing at a missing category. Budgets for the
// category are removed in the same transaction.
func (s *categoryService) Delete(userID, categoryID uint) error {
	category, err := s.getByID(userID, categoryID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.Budget{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ListForUser returns the user's categories sorted by name ascending.
func (s *categoryService) ListForUser(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("category_name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// BatchUpdate applies each row of a bulk category edit independently and
// collects per-row outcomes. A failing row never aborts the rest.
func (s *categoryService) BatchUpdate(userID uint, updates []CategoryUpdate) []BatchResult {
	results := make([]BatchResult, 0, len(updates))
	for _, u := range updates {
		_, err := s.Update(userID, u.ID, u.Name, u.Type)
		results = append(results, BatchResult{ID: u.ID, Err: err})
	}
	return results
}
