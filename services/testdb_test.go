package services

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"card-collection-system/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection, or every pooled conn would see its own empty :memory: DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.Ownership{},
		&models.Distribution{},
		&models.Quiz{},
	))
	return db
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func mustUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: email, LastLogin: time.Now()}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func mustCard(t *testing.T, db *gorm.DB, card models.Card) *models.Card {
	t.Helper()
	require.NoError(t, db.Create(&card).Error)
	return &card
}

// testCatalog creates n fully populated cards with pairwise distinct values
// for every trivia attribute.
func testCatalog(t *testing.T, db *gorm.DB, n int) []*models.Card {
	t.Helper()
	cards := make([]*models.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, mustCard(t, db, models.Card{
			Name:            fmt.Sprintf("Person %c", 'A'+i),
			Acronym:         fmt.Sprintf("P%c%c", 'A'+i, 'A'+i),
			Job:             fmt.Sprintf("Beruf %c", 'A'+i),
			StartAtIPT:      time.Date(2015+i, 1, 1, 0, 0, 0, 0, time.UTC),
			WishDestination: fmt.Sprintf("Land %c", 'A'+i),
			WishPerson:      fmt.Sprintf("Vorbild %c", 'A'+i),
			WishSkill:       fmt.Sprintf("Skill %c", 'A'+i),
			BestAdvice:      fmt.Sprintf("Ratschlag %c", 'A'+i),
			ImageKey:        fmt.Sprintf("p%c.jpg", 'a'+i),
		}))
	}
	return cards
}

type stubSigner struct{}

func (stubSigner) SignedImageURL(key string) (string, error) {
	return "https://img.test/" + key + "?sig=abc", nil
}
