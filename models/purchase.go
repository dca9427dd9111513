package models

import "time"

type Purchase struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Reference       string    `gorm:"index;not null" json:"reference"`
	UserID          string    `gorm:"index;not null" json:"user_id"`
	ProductID       uint      `gorm:"not null" json:"product_id"`
	Product         Product   `gorm:"foreignKey:ProductID" json:"product"`
	PriceAtPurchase float64   `gorm:"not null" json:"price_at_purchase"`
	PurchasedAt     time.Time `json:"purchased_at"`
}
