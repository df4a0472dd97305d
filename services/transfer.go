package services

import (
	crypto "crypto/rand"
	"errors"
	"math/big"
	"time"

	"card-collection-system/models"
	"card-collection-system/utils/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	otpLength   = 16
	otpValidity = 5 * time.Minute
	otpAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// TransferService moves exactly one copy of a card from a giver to a receiver,
// gated by a short-lived single-use code stored on the giver's ownership row.
type TransferService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewTransferService(db *gorm.DB, ledger *LedgerService) *TransferService {
	return &TransferService{DB: db, Ledger: ledger}
}

// TransferResult reports both sides after a completed transfer. Giver is nil
// when the giver's last copy moved and the row was deleted.
type TransferResult struct {
	Giver    *models.Ownership `json:"giver,omitempty"`
	Receiver *models.Ownership `json:"receiver"`
}

// IssueCode generates a fresh transfer code for the giver's ownership of the
// card and persists it with a 5-minute validity window. Any previously issued
// code is overwritten.
func (s *TransferService) IssueCode(giver *models.User, cardID uint) (string, time.Time, error) {
	var own models.Ownership
	err := s.DB.Where("user_id = ? AND card_id = ?", giver.ID, cardID).First(&own).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", time.Time{}, NotFoundErr("user %s does not own card %d", giver.Email, cardID)
	}
	if err != nil {
		return "", time.Time{}, persistenceErr(err)
	}

	code, err := randomCode(otpLength)
	if err != nil {
		return "", time.Time{}, persistenceErr(err)
	}
	validTo := time.Now().Add(otpValidity)

	if err := s.DB.Model(&own).Updates(map[string]interface{}{
		"otp_value":    code,
		"otp_valid_to": validTo,
	}).Error; err != nil {
		return "", time.Time{}, persistenceErr(err)
	}

	logger.Infof("transfer: code issued for card %d by %s, valid until %s", cardID, giver.Email, validTo.Format(time.RFC3339))
	return code, validTo, nil
}

// ExecuteTransfer validates the code on the giver's ownership row and moves one
// copy to the receiver. The whole read-check-clear-move sequence runs in one
// transaction with the giver row locked, so two racing transfers cannot both
// consume the same code. The receiver is granted before the giver is revoked to
// keep the total copy count from ever dipping transiently.
func (s *TransferService) ExecuteTransfer(receiver *models.User, giverEmail string, cardID uint, code string) (*TransferResult, error) {
	var result TransferResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var giver models.User
		if err := tx.Where("email = ?", giverEmail).First(&giver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("giver %s not found", giverEmail)
			}
			return persistenceErr(err)
		}

		var card models.Card
		if err := tx.First(&card, cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("card %d not found", cardID)
			}
			return persistenceErr(err)
		}

		var own models.Ownership
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND card_id = ?", giver.ID, card.ID).
			First(&own).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("user %s does not own card %s", giver.Email, card.Acronym)
		}
		if err != nil {
			return persistenceErr(err)
		}

		if own.OTPValue == nil || *own.OTPValue != code {
			return InvalidCodeErr("transfer code does not match")
		}
		if own.OTPValidTo == nil {
			return ExpiredErr("transfer code has no validity window")
		}
		if time.Now().After(*own.OTPValidTo) {
			return ExpiredErr("transfer code expired at %s", own.OTPValidTo.Format(time.RFC3339))
		}
		if receiver.ID == giver.ID {
			return SelfTransferErr("cannot transfer a card to yourself")
		}

		// The code is consumed now, whether or not the giver row survives the revoke.
		if err := tx.Model(&own).Updates(map[string]interface{}{
			"otp_value":    nil,
			"otp_valid_to": nil,
		}).Error; err != nil {
			return persistenceErr(err)
		}

		received, err := s.Ledger.GrantCard(tx, receiver, &card, 1)
		if err != nil {
			return err
		}
		remaining, err := s.Ledger.RevokeOneCard(tx, &giver, &card)
		if err != nil {
			return err
		}

		result.Giver = remaining
		result.Receiver = received
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("transfer: card %d moved from %s to %s", cardID, giverEmail, receiver.Email)
	return &result, nil
}

// CleanupExpiredCodes nulls out codes past their validity window. Expiry is
// enforced on every validation regardless; this keeps stale secrets out of the
// table.
func (s *TransferService) CleanupExpiredCodes() (int64, error) {
	res := s.DB.Model(&models.Ownership{}).
		Where("otp_value IS NOT NULL AND otp_valid_to < ?", time.Now()).
		Updates(map[string]interface{}{"otp_value": nil, "otp_valid_to": nil})
	if res.Error != nil {
		return 0, persistenceErr(res.Error)
	}
	return res.RowsAffected, nil
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(otpAlphabet)))
	for i := range buf {
		n, err := crypto.Int(crypto.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = otpAlphabet[n.Int64()]
	}
	return string(buf), nil
}
