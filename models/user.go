package models

import (
	"time"
)

// User is created on first authenticated request and never deleted except
// through explicit admin removal. QuizScore is cumulative and may go negative.
type User struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Email   string `json:"email" gorm:"uniqueIndex;not null"`
	Name    string `json:"name" gorm:"not null"`
	IsAdmin bool   `json:"is_admin" gorm:"default:false"`

	QuizScore int `json:"quiz_score" gorm:"default:0"`

	// Stamped by the ledger whenever the user gains a card they did not hold before.
	LastReceivedUnique *time.Time `json:"last_received_unique,omitempty"`

	LastLogin time.Time `json:"last_login"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
