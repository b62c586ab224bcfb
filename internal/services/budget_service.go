package services

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
)

// budgetService handles budget business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// Set upserts the budget for (userID, categoryID, month, year). The amount
// must be non-negative and the category must be an expense category owned
// by the acting user.
func (s *budgetService) Set(userID, categoryID uint, month, year int, amount float64) (*models.Budget, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "budget amount must not be negative")
	}
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidBudgetPeriod
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.Type != models.CategoryTypeExpense {
		return nil, apperrors.ErrBudgetCategoryType
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Year:       year,
		Amount:     amount,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "category_id"}, {Name: "month"}, {Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"budget_amount", "updated_at"}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// ForMonth returns all budgets for the given period, joined against their
// categories.
func (s *budgetService) ForMonth(userID uint, month, year int) ([]BudgetRow, error) {
	var rows []BudgetRow
	err := s.db.Table("budgets b").
		Select("b.id, b.user_id, b.budget_amount AS amount, b.category_id, c.category_name").
		Joins("JOIN categories c ON b.category_id = c.id").
		Where("b.user_id = ? AND b.month = ? AND b.year = ?", userID, month, year).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []BudgetRow{}
	}
	return rows, nil
}

// SpentPerCategory totals the user's expense transactions for the calendar
// month, grouped by category. The month and year are matched by extracting
// them from the stored ISO date text. Categories without expense
// transactions in the period do not appear in the result.
func (s *budgetService) SpentPerCategory(userID uint, month, year int) ([]SpentRow, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidBudgetPeriod
	}

	var rows []SpentRow
	err := s.db.Table("transactions t").
		Select("c.id AS category_id, c.category_name, SUM(t.amount) AS total_spent").
		Joins("JOIN categories c ON t.category_id = c.id").
		Where("t.user_id = ? AND c.category_type = ?", userID, models.CategoryTypeExpense).
		Where("strftime('%m', t.transaction_date) = ? AND strftime('%Y', t.transaction_date) = ?",
			fmt.Sprintf("%02d", month), strconv.Itoa(year)).
		Group("c.id").
		Order("c.category_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []SpentRow{}
	}
	return rows, nil
}
