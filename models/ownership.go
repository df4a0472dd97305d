package models

import (
	"time"
)

// Ownership is the ledger row: how many copies of one card one user holds.
// Quantity never drops below 1 — a row reaching zero is deleted outright, so
// there is no soft delete here. At most one row exists per (user, card) pair.
type Ownership struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_ownership_user_card;not null"`
	CardID uint `json:"card_id" gorm:"uniqueIndex:idx_ownership_user_card;not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Card Card `json:"-" gorm:"foreignKey:CardID"`

	Quantity int `json:"quantity" gorm:"not null;default:1"`

	// Single-use transfer code. Both fields are nil outside the issued window;
	// re-issuing overwrites, consuming or sweeping clears.
	OTPValue   *string    `json:"-" gorm:"column:otp_value;size:16"`
	OTPValidTo *time.Time `json:"-" gorm:"column:otp_valid_to"`

	LastReceived time.Time `json:"last_received"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
