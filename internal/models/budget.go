package models

// Budget caps spending for one expense category in one calendar month.
// At most one row exists per (user, category, month, year); setting a budget
// again replaces the previous amount.
type Budget struct {
	Base
	UserID     uint    `gorm:"not null;uniqueIndex:uq_budgets_user_cat_period" json:"user_id"`
	CategoryID uint    `gorm:"not null;uniqueIndex:uq_budgets_user_cat_period" json:"category_id"`
	Month      int     `gorm:"column:month;not null;uniqueIndex:uq_budgets_user_cat_period" json:"month"`
	Year       int     `gorm:"column:year;not null;uniqueIndex:uq_budgets_user_cat_period" json:"year"`
	Amount     float64 `gorm:"column:budget_amount;not null" json:"budget_amount"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
