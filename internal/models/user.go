package models

// User represents an account holder. Users are created at registration and
// never updated or deleted.
type User struct {
	Base
	Username string `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Password string `gorm:"column:password;not null" json:"-"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
}
