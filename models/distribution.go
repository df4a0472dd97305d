package models

import (
	"time"
)

// ReceiversAll marks a distribution that went to every registered user.
const ReceiversAll = "all"

// Distribution is an immutable audit entry — one row per admin bulk grant,
// regardless of how many users received cards.
type Distribution struct {
	ID         string `json:"id" gorm:"primaryKey;size:36"`
	AdminEmail string `json:"admin_email" gorm:"not null"`

	// Total copies granted across all receivers.
	Quantity int `json:"quantity" gorm:"not null"`

	// "all" or a comma-separated list of receiver emails.
	Receivers string `json:"receivers" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
