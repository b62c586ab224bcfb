package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
)

// transactionService handles transaction business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// validateDate checks that date is an ISO YYYY-MM-DD string. Dates are
// stored as text, so a malformed value would silently corrupt every range
// filter downstream.
func validateDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}
	return nil
}

// ownedCategory verifies the category exists and belongs to the user. A
// transaction's category must belong to the same user as the transaction.
func (s *transactionService) ownedCategory(userID, categoryID uint) error {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Add records a new transaction. The amount must be strictly positive and
// the category must belong to the acting user.
func (s *transactionService) Add(userID, categoryID uint, amount float64, date, note string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := s.ownedCategory(userID, categoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
		Note:       note,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// getByID retrieves a transaction by ID, scoped to the acting user.
func (s *transactionService) getByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Update overwrites a transaction's content in full. The transaction and
// the new category must both belong to the acting user.
func (s *transactionService) Update(userID, transactionID, categoryID uint, amount float64, date, note string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	transaction, err := s.getByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.ownedCategory(userID, categoryID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"category_id":      categoryID,
		"amount":           amount,
		"transaction_date": date,
		"note":             note,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// Delete removes a transaction belonging to the acting user.
func (s *transactionService) Delete(userID, transactionID uint) error {
	transaction, err := s.getByID(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// History returns the user's transactions joined with their categories,
// newest first. With both bounds set it keeps dates in [startDate, endDate);
// comparison is lexicographic on the ISO date text. Bounds may be empty for
// full history.
func (s *transactionService) History(userID uint, startDate, endDate string) ([]HistoryEntry, error) {
	query := s.db.Table("transactions t").
		Select("t.id, t.transaction_date AS date, c.category_name, c.category_type, t.amount, t.note").
		Joins("JOIN categories c ON t.category_id = c.id").
		Where("t.user_id = ?", userID)

	if startDate != "" && endDate != "" {
		if err := validateDate(startDate); err != nil {
			return nil, err
		}
		if err := validateDate(endDate); err != nil {
			return nil, err
		}
		if startDate > endDate {
			return nil, apperrors.ErrInvalidDateRange
		}
		query = query.Where("t.transaction_date >= ? AND t.transaction_date < ?", startDate, endDate)
	}

	var entries []HistoryEntry
	if err := query.Order("t.transaction_date DESC").Scan(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}

// BatchUpdate applies each row of a bulk transaction edit independently and
// collects per-row outcomes.
func (s *transactionService) BatchUpdate(userID uint, updates []TransactionUpdate) []BatchResult {
	results := make([]BatchResult, 0, len(updates))
	for _, u := range updates {
		_, err := s.Update(userID, u.ID, u.CategoryID, u.Amount, u.Date, u.Note)
		results = append(results, BatchResult{ID: u.ID, Err: err})
	}
	return results
}
