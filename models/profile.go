package models

import "time"

// Profile mirrors the auth provider's user record. ID is the user id
// issued at sign-in and is the foreign key for carts, purchases and
// browsing history.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
