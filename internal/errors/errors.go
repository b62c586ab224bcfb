// Package errors provides custom error types for the Budgetbook API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory   = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
	ErrInvalidCategoryType = &AppError{Code: "INVALID_CATEGORY_TYPE", Message: "Category type must be expense, income or savings", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidAmount       = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive number", StatusCode: http.StatusBadRequest}
	ErrInvalidDateRange    = &AppError{Code: "INVALID_DATE_RANGE", Message: "Start date must not be after end date", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetCategoryType  = &AppError{Code: "BUDGET_CATEGORY_NOT_EXPENSE", Message: "Budgets can only be set for expense categories", StatusCode: http.StatusBadRequest}
	ErrInvalidBudgetPeriod = &AppError{Code: "INVALID_BUDGET_PERIOD", Message: "Month must be between 1 and 12", StatusCode: http.StatusBadRequest}
)
