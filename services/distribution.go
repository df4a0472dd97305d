package services

import (
	"errors"
	"math/rand"
	"strings"

	"card-collection-system/models"
	"card-collection-system/utils/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DistributionService bulk-grants cards on behalf of an admin. Authorization is
// the API boundary's job; by the time a call lands here the caller is trusted.
type DistributionService struct {
	DB     *gorm.DB
	Ledger *LedgerService
	Rand   *rand.Rand
}

func NewDistributionService(db *gorm.DB, ledger *LedgerService, rng *rand.Rand) *DistributionService {
	return &DistributionService{DB: db, Ledger: ledger, Rand: rng}
}

// DistributeRandom grants qty uniform random picks (with replacement — doubles
// accumulate) to each receiver. An empty receiver list means every registered
// user. One audit row is written per invocation, not per receiver.
func (s *DistributionService) DistributeRandom(admin *models.User, receiverEmails []string, qty int) (*models.Distribution, error) {
	if qty < 1 {
		return nil, ValidationErr("quantity must be at least 1, got %d", qty)
	}

	var dist *models.Distribution
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if len(receiverEmails) == 0 {
			if err := tx.Find(&users).Error; err != nil {
				return persistenceErr(err)
			}
		} else {
			if err := tx.Where("email IN ?", receiverEmails).Find(&users).Error; err != nil {
				return persistenceErr(err)
			}
			if len(users) != len(receiverEmails) {
				return NotFoundErr("%d of %d receivers unknown", len(receiverEmails)-len(users), len(receiverEmails))
			}
		}
		if len(users) == 0 {
			return NotFoundErr("no receivers registered")
		}

		var cards []models.Card
		if err := tx.Find(&cards).Error; err != nil {
			return persistenceErr(err)
		}
		if len(cards) == 0 {
			return NotFoundErr("card catalog is empty")
		}

		for i := range users {
			for n := 0; n < qty; n++ {
				pick := cards[s.Rand.Intn(len(cards))]
				if _, err := s.Ledger.GrantCard(tx, &users[i], &pick, 1); err != nil {
					return err
				}
			}
		}

		receivers := models.ReceiversAll
		if len(receiverEmails) > 0 {
			receivers = strings.Join(receiverEmails, ",")
		}
		dist = &models.Distribution{
			ID:         uuid.NewString(),
			AdminEmail: admin.Email,
			Quantity:   qty * len(users),
			Receivers:  receivers,
		}
		if err := tx.Create(dist).Error; err != nil {
			return persistenceErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("distribution: %s granted %d cards to %s", admin.Email, dist.Quantity, dist.Receivers)
	return dist, nil
}

// DistributeSelfCard grants a user copies of the card portraying them.
func (s *DistributionService) DistributeSelfCard(user *models.User, qty int) (*models.Ownership, error) {
	if qty < 1 {
		return nil, ValidationErr("quantity must be at least 1, got %d", qty)
	}

	var own *models.Ownership
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var card models.Card
		err := tx.Where("owner_email = ?", user.Email).First(&card).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("no self-card found for %s", user.Email)
		}
		if err != nil {
			return persistenceErr(err)
		}

		own, err = s.Ledger.GrantCard(tx, user, &card, qty)
		return err
	})
	if err != nil {
		return nil, err
	}
	return own, nil
}
