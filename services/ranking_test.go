package services

import (
	"testing"
	"time"

	"card-collection-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func holdCards(t *testing.T, db *gorm.DB, user *models.User, cards []*models.Card, quantities []int) {
	t.Helper()
	for i, qty := range quantities {
		require.NoError(t, db.Create(&models.Ownership{
			UserID:       user.ID,
			CardID:       cards[i].ID,
			Quantity:     qty,
			LastReceived: time.Now(),
		}).Error)
	}
}

func setUniqueStamp(t *testing.T, db *gorm.DB, user *models.User, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(user).UpdateColumn("last_received_unique", at).Error)
}

func rankingFor(rankings []UserRanking, email string) UserRanking {
	for _, r := range rankings {
		if r.Email == email {
			return r
		}
	}
	return UserRanking{}
}

func TestRankingService_Overview_cardLeaderboard(t *testing.T) {
	db := newTestDB(t)
	rankingSvc := NewRankingService(db)

	cards := testCatalog(t, db, 5)
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)

	// Same unique count for a and b; b completed their set earlier.
	userA := mustUser(t, db, "a@ipt.ch")
	holdCards(t, db, userA, cards, []int{1, 1, 1, 1, 1})
	setUniqueStamp(t, db, userA, t2)

	userB := mustUser(t, db, "b@ipt.ch")
	holdCards(t, db, userB, cards, []int{2, 1, 1, 1, 1})
	setUniqueStamp(t, db, userB, t1)

	userC := mustUser(t, db, "c@ipt.ch")
	holdCards(t, db, userC, cards[:3], []int{1, 1, 3})
	setUniqueStamp(t, db, userC, t3)

	overview, err := rankingSvc.Overview()
	require.NoError(t, err)

	assert.Equal(t, 1, rankingFor(overview.Rankings, "b@ipt.ch").CardRank)
	assert.Equal(t, 2, rankingFor(overview.Rankings, "a@ipt.ch").CardRank)
	assert.Equal(t, 3, rankingFor(overview.Rankings, "c@ipt.ch").CardRank)

	b := rankingFor(overview.Rankings, "b@ipt.ch")
	assert.Equal(t, 6, b.TotalQuantity)
	assert.Equal(t, 5, b.UniqueCards)
	assert.Equal(t, 1, b.Duplicates)

	c := rankingFor(overview.Rankings, "c@ipt.ch")
	assert.Equal(t, 5, c.TotalQuantity)
	assert.Equal(t, 3, c.UniqueCards)
	assert.Equal(t, 2, c.Duplicates)

	// Aggregates cover the whole system.
	assert.Equal(t, 3, overview.UserCount)
	assert.EqualValues(t, 5, overview.CatalogSize)
	assert.Equal(t, 6+5+5, overview.CopiesOwned)

	// The list itself is presented in card-rank order.
	assert.Equal(t, "b@ipt.ch", overview.Rankings[0].Email)

	// Ties never share a rank: every position from 1..n appears once.
	seen := map[int]bool{}
	for _, r := range overview.Rankings {
		assert.False(t, seen[r.CardRank], "duplicate card rank %d", r.CardRank)
		seen[r.CardRank] = true
	}
}

func TestRankingService_Overview_quizLeaderboard(t *testing.T) {
	db := newTestDB(t)
	rankingSvc := NewRankingService(db)

	userA := mustUser(t, db, "a@ipt.ch")
	userB := mustUser(t, db, "b@ipt.ch")
	userC := mustUser(t, db, "c@ipt.ch")

	require.NoError(t, db.Model(userA).UpdateColumn("quiz_score", 10).Error)
	require.NoError(t, db.Model(userB).UpdateColumn("quiz_score", 25).Error)
	// Negative totals are possible and rank below zero scores.
	require.NoError(t, db.Model(userC).UpdateColumn("quiz_score", -5).Error)

	overview, err := rankingSvc.Overview()
	require.NoError(t, err)

	assert.Equal(t, 1, rankingFor(overview.Rankings, "b@ipt.ch").QuizRank)
	assert.Equal(t, 2, rankingFor(overview.Rankings, "a@ipt.ch").QuizRank)
	assert.Equal(t, 3, rankingFor(overview.Rankings, "c@ipt.ch").QuizRank)
}

func TestRankingService_Overview_quizTieBreaksByEmail(t *testing.T) {
	db := newTestDB(t)
	rankingSvc := NewRankingService(db)

	userB := mustUser(t, db, "b@ipt.ch")
	userA := mustUser(t, db, "a@ipt.ch")
	require.NoError(t, db.Model(userA).UpdateColumn("quiz_score", 10).Error)
	require.NoError(t, db.Model(userB).UpdateColumn("quiz_score", 10).Error)

	overview, err := rankingSvc.Overview()
	require.NoError(t, err)

	assert.Equal(t, 1, rankingFor(overview.Rankings, "a@ipt.ch").QuizRank)
	assert.Equal(t, 2, rankingFor(overview.Rankings, "b@ipt.ch").QuizRank)
}

func TestRankingService_Overview_usersWithoutCards(t *testing.T) {
	db := newTestDB(t)
	rankingSvc := NewRankingService(db)

	mustUser(t, db, "empty@ipt.ch")

	overview, err := rankingSvc.Overview()
	require.NoError(t, err)

	r := rankingFor(overview.Rankings, "empty@ipt.ch")
	assert.Zero(t, r.TotalQuantity)
	assert.Zero(t, r.UniqueCards)
	assert.Equal(t, 1, r.CardRank)
}
