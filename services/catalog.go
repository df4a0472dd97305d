package services

import (
	"card-collection-system/models"

	"gorm.io/gorm"
)

// CatalogService is the read side of the card catalog: listings enriched with
// display URLs and the caller's own holdings.
type CatalogService struct {
	DB     *gorm.DB
	Signer ImageSigner
}

func NewCatalogService(db *gorm.DB, signer ImageSigner) *CatalogService {
	return &CatalogService{DB: db, Signer: signer}
}

// CardView is a catalog entry as shown to one caller.
type CardView struct {
	models.Card
	ImageURL string `json:"image_url,omitempty"`
	Owned    int    `json:"owned"`
}

// ListCards returns the full catalog ordered by acronym, with a signed image
// URL per card and the quantity the caller holds (0 when none).
func (s *CatalogService) ListCards(caller *models.User) ([]CardView, error) {
	var cards []models.Card
	if err := s.DB.Order("acronym").Find(&cards).Error; err != nil {
		return nil, persistenceErr(err)
	}

	var owns []models.Ownership
	if err := s.DB.Where("user_id = ?", caller.ID).Find(&owns).Error; err != nil {
		return nil, persistenceErr(err)
	}
	owned := make(map[uint]int, len(owns))
	for _, o := range owns {
		owned[o.CardID] = o.Quantity
	}

	views := make([]CardView, 0, len(cards))
	for _, card := range cards {
		view := CardView{Card: card, Owned: owned[card.ID]}
		if card.ImageKey != "" {
			url, err := s.Signer.SignedImageURL(card.ImageKey)
			if err != nil {
				return nil, persistenceErr(err)
			}
			view.ImageURL = url
		}
		views = append(views, view)
	}
	return views, nil
}
