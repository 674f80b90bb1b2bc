package category

import (
	"time"
)

// DefaultName is the well-known fallback category for videos created without
// an explicit category.
const DefaultName = "Uncategorized"

// Category model definition
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// WithCount is a category together with its derived video count, computed at
// read time rather than stored.
type WithCount struct {
	Category
	Count int64 `json:"count"`
}
