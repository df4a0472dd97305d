package services

import (
	"sort"

	"card-collection-system/models"

	"gorm.io/gorm"
)

// RankingService derives read-only leaderboards from the ledger and user
// scores. It never writes.
type RankingService struct {
	DB *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db}
}

// UserRanking is one user's aggregate standing across both leaderboards.
type UserRanking struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
	UniqueCards   int    `json:"unique_cards"`
	Duplicates    int    `json:"duplicates"`
	QuizScore     int    `json:"quiz_score"`
	CardRank      int    `json:"card_rank"`
	QuizRank      int    `json:"quiz_rank"`
}

type OverviewPayload struct {
	Rankings []UserRanking `json:"rankings"`

	UserCount    int   `json:"user_count"`
	CatalogSize  int64 `json:"catalog_size"`
	CopiesOwned  int   `json:"copies_owned"`
	UniqueSpread int   `json:"unique_spread"`
}

// Overview computes per-user aggregates and assigns both rankings: cards by
// unique count (earliest completion wins ties), quiz by score. Ranks are
// 1-based and strictly sequential — equal sort keys still rank apart.
func (s *RankingService) Overview() (*OverviewPayload, error) {
	var users []models.User
	if err := s.DB.Find(&users).Error; err != nil {
		return nil, persistenceErr(err)
	}

	type holdingRow struct {
		UserID uint
		Total  int
		Uniq   int
	}
	var holdings []holdingRow
	if err := s.DB.Model(&models.Ownership{}).
		Select("user_id, SUM(quantity) AS total, COUNT(*) AS uniq").
		Group("user_id").
		Scan(&holdings).Error; err != nil {
		return nil, persistenceErr(err)
	}
	byUser := make(map[uint]holdingRow, len(holdings))
	for _, h := range holdings {
		byUser[h.UserID] = h
	}

	rankings := make([]UserRanking, 0, len(users))
	uniqueAt := make(map[string]*models.User, len(users))
	for i := range users {
		u := &users[i]
		h := byUser[u.ID]
		rankings = append(rankings, UserRanking{
			Email:         u.Email,
			Name:          u.Name,
			TotalQuantity: h.Total,
			UniqueCards:   h.Uniq,
			Duplicates:    h.Total - h.Uniq,
			QuizScore:     u.QuizScore,
		})
		uniqueAt[u.Email] = u
	}

	// Card leaderboard: unique count desc, earlier last-unique-acquisition
	// first (nulls last), email asc.
	cardOrder := make([]int, len(rankings))
	for i := range cardOrder {
		cardOrder[i] = i
	}
	sort.SliceStable(cardOrder, func(a, b int) bool {
		ra, rb := rankings[cardOrder[a]], rankings[cardOrder[b]]
		if ra.UniqueCards != rb.UniqueCards {
			return ra.UniqueCards > rb.UniqueCards
		}
		ta := uniqueAt[ra.Email].LastReceivedUnique
		tb := uniqueAt[rb.Email].LastReceivedUnique
		switch {
		case ta == nil && tb == nil:
			// fall through to email
		case ta == nil:
			return false
		case tb == nil:
			return true
		case !ta.Equal(*tb):
			return ta.Before(*tb)
		}
		return ra.Email < rb.Email
	})
	for pos, idx := range cardOrder {
		rankings[idx].CardRank = pos + 1
	}

	// Quiz leaderboard: score desc, email asc.
	quizOrder := make([]int, len(rankings))
	for i := range quizOrder {
		quizOrder[i] = i
	}
	sort.SliceStable(quizOrder, func(a, b int) bool {
		ra, rb := rankings[quizOrder[a]], rankings[quizOrder[b]]
		if ra.QuizScore != rb.QuizScore {
			return ra.QuizScore > rb.QuizScore
		}
		return ra.Email < rb.Email
	})
	for pos, idx := range quizOrder {
		rankings[idx].QuizRank = pos + 1
	}

	// Present the list in card-rank order.
	ordered := make([]UserRanking, len(rankings))
	for pos, idx := range cardOrder {
		ordered[pos] = rankings[idx]
	}

	payload := &OverviewPayload{Rankings: ordered, UserCount: len(users)}
	if err := s.DB.Model(&models.Card{}).Count(&payload.CatalogSize).Error; err != nil {
		return nil, persistenceErr(err)
	}
	for _, r := range ordered {
		payload.CopiesOwned += r.TotalQuantity
		payload.UniqueSpread += r.UniqueCards
	}
	return payload, nil
}
