package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Category    string    `gorm:"index;not null" json:"category"`
	Price       float64   `gorm:"not null" json:"price"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	ImageURL    string    `json:"image_url"`
	InStock     bool      `gorm:"default:true" json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
