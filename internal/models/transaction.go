package models

// DateLayout is the storage format for transaction dates. Dates are kept as
// ISO text so that range filters reduce to lexicographic comparison and
// month/year extraction works with strftime.
const DateLayout = "2006-01-02"

// Transaction represents a single ledger entry. Amounts are always positive;
// the category's type decides whether the entry counts as income, expense or
// savings.
type Transaction struct {
	Base
	UserID     uint    `gorm:"not null;index" json:"user_id"`
	CategoryID uint    `gorm:"not null;index" json:"category_id"`
	Amount     float64 `gorm:"column:amount;not null" json:"amount"`
	Date       string  `gorm:"column:transaction_date;not null" json:"transaction_date"`
	Note       string  `gorm:"column:note" json:"note"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
