package services

import "budgetbook/internal/models"

// AccountServicer defines the contract for user account business logic.
type AccountServicer interface {
	Register(username, password string) (*models.User, error)
	// Authenticate returns (nil, nil) when the username is unknown or the
	// password does not match. A failed login is a normal negative result,
	// not an error.
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// CategoryUpdate describes one row of a bulk category edit.
type CategoryUpdate struct {
	ID   uint                `json:"id"`
	Name string              `json:"category_name"`
	Type models.CategoryType `json:"category_type"`
}

// TransactionUpdate describes one row of a bulk transaction edit.
type TransactionUpdate struct {
	ID         uint    `json:"id"`
	CategoryID uint    `json:"category_id"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"transaction_date"`
	Note       string  `json:"note"`
}

// BatchResult reports the outcome of a single row in a bulk edit. Rows are
// applied independently; one failure never aborts the rest of the batch.
type BatchResult struct {
	ID  uint
	Err error
}

// CategoryServicer defines the contract for category business logic.
type CategoryServicer interface {
	Create(userID uint, name string, categoryType models.CategoryType) (*models.Category, error)
	Update(userID, categoryID uint, name string, categoryType models.CategoryType) (*models.Category, error)
	Delete(userID, categoryID uint) error
	ListForUser(userID uint) ([]models.Category, error)
	BatchUpdate(userID uint, updates []CategoryUpdate) []BatchResult
}

// HistoryEntry is one row of a user's transaction history, joined against
// the owning category.
type HistoryEntry struct {
	ID           uint                `json:"id"`
	Date         string              `json:"date"`
	CategoryName string              `json:"category_name"`
	CategoryType models.CategoryType `json:"category_type"`
	Amount       float64             `json:"amount"`
	Note         string              `json:"note"`
}

// TransactionServicer defines the contract for transaction business logic.
type TransactionServicer interface {
	Add(userID, categoryID uint, amount float64, date, note string) (*models.Transaction, error)
	Update(userID, transactionID, categoryID uint, amount float64, date, note string) (*models.Transaction, error)
	Delete(userID, transactionID uint) error
	// History returns entries ordered by date descending. When both bounds
	// are given it keeps dates in [startDate, endDate); the upper bound is
	// exclusive, so callers wanting an inclusive end date pass the day after.
	History(userID uint, startDate, endDate string) ([]HistoryEntry, error)
	BatchUpdate(userID uint, updates []TransactionUpdate) []BatchResult
}

// BudgetRow is one row of a month's budgets, joined against the category.
type BudgetRow struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	Amount       float64 `json:"budget_amount"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
}

// SpentRow is the expense total for one category in one calendar month.
// Categories with no expense transactions in the month are absent; callers
// treat missing entries as zero.
type SpentRow struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	TotalSpent   float64 `json:"total_spent"`
}

// BudgetServicer defines the contract for budget business logic.
type BudgetServicer interface {
	// Set upserts the budget for (userID, categoryID, month, year); setting
	// it again replaces the prior amount.
	Set(userID, categoryID uint, month, year int, amount float64) (*models.Budget, error)
	ForMonth(userID uint, month, year int) ([]BudgetRow, error)
	SpentPerCategory(userID uint, month, year int) ([]SpentRow, error)
}

// ReportServicer defines the contract for aggregate reporting.
type ReportServicer interface {
	// Summary totals transaction amounts per category type over
	// [startDate, endDate). Types with no transactions are omitted from the
	// map; net balance is derived by the caller, never here.
	Summary(userID uint, startDate, endDate string) (map[models.CategoryType]float64, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
