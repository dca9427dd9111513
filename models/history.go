package models

import "time"

// BrowsingHistoryEntry is an append-only view log. Repeated views of the
// same product insert new rows; nothing dedups or trims the log.
type BrowsingHistoryEntry struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    string  `gorm:"index;not null" json:"user_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	ViewedAt  time.Time `gorm:"index" json:"viewed_at"`
}
