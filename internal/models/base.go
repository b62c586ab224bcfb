package models

import "time"

// Base contains common columns for all tables. Deletes are hard deletes:
// removing a category destroys its transactions for good, so there is no
// soft-delete column to resurrect rows from.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
