package models

// CategoryType classifies how a category's transactions affect the balance.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeSavings CategoryType = "savings"
)

// Valid reports whether t is one of the three known category types.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeExpense, CategoryTypeIncome, CategoryTypeSavings:
		return true
	}
	return false
}

// Category represents a per-user transaction category. Names are unique
// within a user, not globally.
type Category struct {
	Base
	UserID uint         `gorm:"not null;uniqueIndex:uq_categories_user_name" json:"user_id"`
	Name   string       `gorm:"column:category_name;not null;uniqueIndex:uq_categories_user_name" json:"category_name"`
	Type   CategoryType `gorm:"column:category_type;not null" json:"category_type"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}

// DefaultCategories are provisioned for every new user at registration.
var DefaultCategories = []Category{
	{Name: "Groceries", Type: CategoryTypeExpense},
	{Name: "Bills", Type: CategoryTypeExpense},
	{Name: "Rent", Type: CategoryTypeExpense},
	{Name: "Salary", Type: CategoryTypeIncome},
	{Name: "Freelance", Type: CategoryTypeIncome},
	{Name: "Savings", Type: CategoryTypeSavings},
}
