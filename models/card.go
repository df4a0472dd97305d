package models

import (
	"time"
)

// Card is a catalog entry. Rows are seeded or submitted once and stay immutable
// apart from the owner's own profile edits; admin user removal cascades here.
type Card struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null"`
	Acronym string `json:"acronym" gorm:"size:3;uniqueIndex;not null"`

	// Trivia attributes the quiz engine draws from.
	Job             string    `json:"job"`
	StartAtIPT      time.Time `json:"start_at_ipt"`
	WishDestination string    `json:"wish_destination"`
	WishPerson      string    `json:"wish_person"`
	WishSkill       string    `json:"wish_skill"`
	BestAdvice      string    `json:"best_advice"`

	// Object key inside the card image container, never a full URL.
	ImageKey string `json:"image_key"`

	// Email of the user this card portrays (self-card), empty for plain catalog cards.
	OwnerEmail string `json:"owner_email,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
