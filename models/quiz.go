package models

import (
	"time"
)

// Quiz records one posed trivia question. It is written once when the question
// is generated and mutated exactly once when answered; Correct stays nil until
// then, which is also the double-submission guard.
type Quiz struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID uint   `json:"user_id" gorm:"index;not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`

	QuestionType string `json:"question_type" gorm:"size:16;not null"`
	AnswerType   string `json:"answer_type" gorm:"size:16;not null"`

	// The card holding the correct answer.
	CardID uint `json:"card_id" gorm:"not null"`
	Card   Card `json:"-" gorm:"foreignKey:CardID"`

	OptionCount int `json:"option_count" gorm:"not null"`

	QuestionedAt time.Time  `json:"questioned_at"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
	Correct      *bool      `json:"correct,omitempty"`
}
