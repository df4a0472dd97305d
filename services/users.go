package services

import (
	"errors"
	"strings"
	"time"

	"card-collection-system/models"
	"card-collection-system/utils/logger"

	"gorm.io/gorm"
)

// UserService maintains user rows driven by the external identity provider:
// a verified caller identity arrives per request and is materialized here.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// GetOrCreate looks the caller up by email, creating the row on first login
// and refreshing last_login either way.
func (s *UserService) GetOrCreate(email, name string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ValidationErr("caller identity has no email")
	}

	now := time.Now()
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email, Name: name, LastLogin: now}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, persistenceErr(err)
		}
		logger.Infof("users: first login of %s", email)
		return &user, nil
	}
	if err != nil {
		return nil, persistenceErr(err)
	}

	user.LastLogin = now
	if err := s.DB.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		return nil, persistenceErr(err)
	}
	return &user, nil
}

// Delete removes a user together with their ledger rows, their quiz history,
// and their self-card (including everyone else's copies of it). Admin-only at
// the API boundary.
func (s *UserService) Delete(email string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("user %s not found", email)
		}
		if err != nil {
			return persistenceErr(err)
		}

		var selfCard models.Card
		err = tx.Where("owner_email = ?", user.Email).First(&selfCard).Error
		if err == nil {
			if err := tx.Where("card_id = ?", selfCard.ID).Delete(&models.Ownership{}).Error; err != nil {
				return persistenceErr(err)
			}
			if err := tx.Where("card_id = ?", selfCard.ID).Delete(&models.Quiz{}).Error; err != nil {
				return persistenceErr(err)
			}
			if err := tx.Delete(&selfCard).Error; err != nil {
				return persistenceErr(err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return persistenceErr(err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Ownership{}).Error; err != nil {
			return persistenceErr(err)
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Quiz{}).Error; err != nil {
			return persistenceErr(err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return persistenceErr(err)
		}

		logger.Infof("users: removed %s and their self-card", email)
		return nil
	})
}
