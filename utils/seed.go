// utils/seed.go
package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"card-collection-system/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SeedDummyData populates an empty database with a small catalog and a handful
// of users for local development. Every user gets 2 to 5 different cards, the
// first one always doubled. A non-empty cards table makes this a no-op.
func SeedDummyData(db *gorm.DB, rng *rand.Rand) error {
	var count int64
	if err := db.Model(&models.Card{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	date := func(y, m, d int) time.Time {
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}

	cards := []models.Card{
		{Name: "Lea Brunner", Acronym: "LBR", Job: "Pilotin", StartAtIPT: date(2019, 4, 1),
			WishDestination: "Neuseeland", WishPerson: "Roger Federer", WishSkill: "Gedanken lesen",
			BestAdvice: "Bleib neugierig", OwnerEmail: "lea.brunner@ipt.ch"},
		{Name: "Jonas Keller", Acronym: "JKE", Job: "Feuerwehrmann", StartAtIPT: date(2020, 9, 15),
			WishDestination: "Japan", WishPerson: "Alan Turing", WishSkill: "Jonglieren",
			BestAdvice: "Frag lieber einmal zu viel", OwnerEmail: "jonas.keller@ipt.ch"},
		{Name: "Mirjam Steiner", Acronym: "MST", Job: "Tierärztin", StartAtIPT: date(2018, 1, 8),
			WishDestination: "Island", WishPerson: "Marie Curie", WishSkill: "Perfektes Gehör",
			BestAdvice: "Weniger ist mehr", OwnerEmail: "mirjam.steiner@ipt.ch"},
		{Name: "David Huber", Acronym: "DHU", Job: "Astronaut", StartAtIPT: date(2021, 3, 1),
			WishDestination: "Patagonien", WishPerson: "Niklaus Wirth", WishSkill: "Schnelllesen",
			BestAdvice: "Tu es einfach", OwnerEmail: "david.huber@ipt.ch"},
		{Name: "Selina Graf", Acronym: "SGR", Job: "Kindergärtnerin", StartAtIPT: date(2017, 11, 20),
			WishDestination: "Kanada", WishPerson: "Grace Hopper", WishSkill: "Zeichnen",
			BestAdvice: "Hör zuerst zu", OwnerEmail: "selina.graf@ipt.ch"},
		{Name: "Reto Baumgartner", Acronym: "RBA", Job: "Lokführer", StartAtIPT: date(2022, 6, 1),
			WishDestination: "Norwegen", WishPerson: "Ada Lovelace", WishSkill: "Kochen wie ein Profi",
			BestAdvice: "Geduld zahlt sich aus", OwnerEmail: "reto.baumgartner@ipt.ch"},
		{Name: "Anna Frei", Acronym: "AFR", Job: "Archäologin", StartAtIPT: date(2016, 8, 1),
			WishDestination: "Peru", WishPerson: "Barbara Liskov", WishSkill: "Fünf Sprachen sprechen",
			BestAdvice: "Mach Fehler früh", OwnerEmail: "anna.frei@ipt.ch"},
	}
	for i := range cards {
		cards[i].ImageKey = fmt.Sprintf("%s.jpg", slug.Make(cards[i].Acronym))
		if err := db.Create(&cards[i]).Error; err != nil {
			return err
		}
	}

	users := make([]models.User, 0, len(cards)+1)
	for _, card := range cards {
		users = append(users, models.User{
			Email:     card.OwnerEmail,
			Name:      card.Name,
			LastLogin: time.Now(),
		})
	}
	users = append(users, models.User{
		Email:     "admin@ipt.ch",
		Name:      "Admin",
		IsAdmin:   true,
		LastLogin: time.Now(),
	})

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}

		// 2 to 5 different cards each, the first one doubled.
		picks := rng.Perm(len(cards))[:2+rng.Intn(4)]
		for n, idx := range picks {
			qty := 1
			if n == 0 {
				qty = 2
			}
			now := time.Now()
			own := models.Ownership{
				UserID:       users[i].ID,
				CardID:       cards[idx].ID,
				Quantity:     qty,
				LastReceived: now,
			}
			if err := db.Create(&own).Error; err != nil {
				return err
			}
			if err := db.Model(&users[i]).UpdateColumn("last_received_unique", now).Error; err != nil {
				return err
			}
		}
	}

	emails := make([]string, len(users))
	for i, u := range users {
		emails[i] = u.Email
	}
	fmt.Printf("seeded %d cards and users: %s\n", len(cards), strings.Join(emails, ", "))
	return nil
}
