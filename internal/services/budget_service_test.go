package services

import (
	"testing"

	"budgetbook/internal/models"
	"budgetbook/internal/testutil"
)

func TestSetBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		budget, err := svc.Set(user.ID, cat.ID, 5, 2025, 2000)
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		if budget.Amount != 2000 {
			t.Errorf("expected amount 2000, got %v", budget.Amount)
		}
	})

	t.Run("upsert_replaces_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.Set(user.ID, cat.ID, 5, 2025, 2000)
		testutil.AssertNoError(t, err)
		_, err = svc.Set(user.ID, cat.ID, 5, 2025, 3500)
		testutil.AssertNoError(t, err)

		var budgets []models.Budget
		if err := db.Where("user_id = ? AND category_id = ?", user.ID, cat.ID).Find(&budgets).Error; err != nil {
			t.Fatalf("failed to load budgets: %v", err)
		}
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget row after upsert, got %d", len(budgets))
		}
		if budgets[0].Amount != 3500 {
			t.Errorf("expected latest amount 3500, got %v", budgets[0].Amount)
		}
	})

	t.Run("distinct_periods_coexist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.Set(user.ID, cat.ID, 5, 2025, 2000)
		testutil.AssertNoError(t, err)
		_, err = svc.Set(user.ID, cat.ID, 6, 2025, 2500)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Budget{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 budget rows for distinct months, got %d", count)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.Set(user.ID, cat.ID, 5, 2025, -100)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.Set(user.ID, cat.ID, 0, 2025, 100)
		testutil.AssertAppError(t, err, "INVALID_BUDGET_PERIOD")

		_, err = svc.Set(user.ID, cat.ID, 13, 2025, 100)
		testutil.AssertAppError(t, err, "INVALID_BUDGET_PERIOD")
	})

	t.Run("non_expense_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		savings := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSavings)

		_, err := svc.Set(user.ID, income.ID, 5, 2025, 100)
		testutil.AssertAppError(t, err, "BUDGET_CATEGORY_NOT_EXPENSE")

		_, err = svc.Set(user.ID, savings.ID, 5, 2025, 100)
		testutil.AssertAppError(t, err, "BUDGET_CATEGORY_NOT_EXPENSE")
	})

	t.Run("wrong_user_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user2.ID, models.CategoryTypeExpense)

		_, err := svc.Set(user1.ID, cat.ID, 5, 2025, 100)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestBudgetsForMonth(t *testing.T) {
	t.Run("joined_rows_for_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestBudget(t, db, user.ID, cat.ID, 5, 2025, 2000)
		testutil.CreateTestBudget(t, db, user.ID, cat.ID, 6, 2025, 9999)

		rows, err := svc.ForMonth(user.ID, 5, 2025)
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 budget for May, got %d", len(rows))
		}
		if rows[0].Amount != 2000 {
			t.Errorf("expected amount 2000, got %v", rows[0].Amount)
		}
		if rows[0].CategoryName != cat.Name {
			t.Errorf("expected joined category name %q, got %q", cat.Name, rows[0].CategoryName)
		}
	})

	t.Run("empty_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		rows, err := svc.ForMonth(user.ID, 5, 2025)
		testutil.AssertNoError(t, err)
		if rows == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(rows) != 0 {
			t.Errorf("expected no budgets, got %d", len(rows))
		}
	})
}

func TestSpentPerCategory(t *testing.T) {
	t.Run("sums_expenses_in_calendar_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		fuel := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		salary := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		testutil.CreateTestTransaction(t, db, user.ID, fuel.ID, 900, "2025-05-03")
		testutil.CreateTestTransaction(t, db, user.ID, fuel.ID, 600, "2025-05-20")
		// Outside May, must not count
		testutil.CreateTestTransaction(t, db, user.ID, fuel.ID, 400, "2025-06-01")
		// Income must not count
		testutil.CreateTestTransaction(t, db, user.ID, salary.ID, 5000, "2025-05-15")

		rows, err := svc.SpentPerCategory(user.ID, 5, 2025)
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 spent row, got %d", len(rows))
		}
		if rows[0].CategoryID != fuel.ID {
			t.Errorf("expected category %d, got %d", fuel.ID, rows[0].CategoryID)
		}
		if rows[0].TotalSpent != 1500 {
			t.Errorf("expected 1500 spent, got %v", rows[0].TotalSpent)
		}
	})

	t.Run("untouched_categories_absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		rows, err := svc.SpentPerCategory(user.ID, 5, 2025)
		testutil.AssertNoError(t, err)
		if len(rows) != 0 {
			t.Errorf("expected no rows for category with no spending, got %d", len(rows))
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SpentPerCategory(user.ID, 13, 2025)
		testutil.AssertAppError(t, err, "INVALID_BUDGET_PERIOD")
	})
}
