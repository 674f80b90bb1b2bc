package video

import (
	"time"
)

// Video model definition. URL points at the blob stored for this video; once
// creation succeeds it resolves to a reachable object.
type Video struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	CategoryID   *uint     `gorm:"index" json:"categoryId"`
	URL          string    `gorm:"not null" json:"url"`
	Duration     string    `json:"duration"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WithCategory is a video row joined with its category name at read time
type WithCategory struct {
	Video
	CategoryName string `json:"categoryName"`
}
