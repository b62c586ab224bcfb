package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"budgetbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithName(t, db, username)
}

// CreateTestUserWithName creates a user with the given username.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction for the given category and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID uint, amount float64, date string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
		Note:       fmt.Sprintf("test note %d", nextID()),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the given category and period.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID uint, month, year int, amount float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Year:       year,
		Amount:     amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
