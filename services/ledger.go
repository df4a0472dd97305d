package services

import (
	"errors"
	"time"

	"card-collection-system/models"
	"card-collection-system/utils/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerService is the authoritative record of card holdings. Every mutation
// goes through GrantCard or RevokeOneCard; both expect to run inside the
// caller's transaction and lock the ownership row for the read-modify-write.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// GrantCard adds qty copies of card to user. A first-ever acquisition of the
// card creates the row and stamps the user's last-unique-card timestamp; an
// existing row just gets its quantity bumped and LastReceived refreshed.
func (s *LedgerService) GrantCard(tx *gorm.DB, user *models.User, card *models.Card, qty int) (*models.Ownership, error) {
	if qty < 1 {
		return nil, ValidationErr("quantity must be at least 1, got %d", qty)
	}

	now := time.Now()

	var own models.Ownership
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND card_id = ?", user.ID, card.ID).
		First(&own).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		own = models.Ownership{
			UserID:       user.ID,
			CardID:       card.ID,
			Quantity:     qty,
			LastReceived: now,
		}
		if err := tx.Create(&own).Error; err != nil {
			return nil, persistenceErr(err)
		}
		// New unique card for this user — stamp the acquisition on the user row.
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			UpdateColumn("last_received_unique", now).Error; err != nil {
			return nil, persistenceErr(err)
		}
		user.LastReceivedUnique = &now

		logger.Debugf("ledger: user %s gained new card %s x%d", user.Email, card.Acronym, qty)
		return &own, nil
	}
	if err != nil {
		return nil, persistenceErr(err)
	}

	own.Quantity += qty
	own.LastReceived = now
	if err := tx.Save(&own).Error; err != nil {
		return nil, persistenceErr(err)
	}

	logger.Debugf("ledger: user %s now holds card %s x%d", user.Email, card.Acronym, own.Quantity)
	return &own, nil
}

// RevokeOneCard removes a single copy. At quantity 1 the row is deleted and
// (nil, nil) is returned — the user no longer holds the card at all.
func (s *LedgerService) RevokeOneCard(tx *gorm.DB, user *models.User, card *models.Card) (*models.Ownership, error) {
	var own models.Ownership
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND card_id = ?", user.ID, card.ID).
		First(&own).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundErr("user %s does not own card %s", user.Email, card.Acronym)
	}
	if err != nil {
		return nil, persistenceErr(err)
	}

	if own.Quantity > 1 {
		own.Quantity--
		if err := tx.Save(&own).Error; err != nil {
			return nil, persistenceErr(err)
		}
		return &own, nil
	}

	if err := tx.Delete(&own).Error; err != nil {
		return nil, persistenceErr(err)
	}
	logger.Debugf("ledger: user %s gave away last copy of card %s", user.Email, card.Acronym)
	return nil, nil
}
