package main

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"holidaze/internal/stub"
)

// seedDemoData loads two accounts and a handful of venues with a few
// bookings, enough to exercise every CLI command against the stub.
func seedDemoData(db *gorm.DB) error {
	owner := stub.User{
		Name:         "demo_owner",
		Email:        "owner@stud.noroff.no",
		PasswordHash: hash("password1234"),
		Bio:          "I rent out cabins along the coast.",
		VenueManager: true,
	}
	guest := stub.User{
		Name:         "demo_guest",
		Email:        "guest@stud.noroff.no",
		PasswordHash: hash("password1234"),
	}
	for _, u := range []stub.User{owner, guest} {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u).Error; err != nil {
			return err
		}
	}

	venues := []stub.Venue{
		{
			ID:          uuid.NewString(),
			Name:        "Seaside Cabin",
			Description: "Two-bedroom cabin right on the shore.",
			Price:       120,
			MaxGuests:   4,
			Rating:      4.6,
			Wifi:        true,
			Parking:     true,
			City:        "Bergen",
			Country:     "Norway",
			OwnerName:   owner.Name,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Mountain Lodge",
			Description: "Quiet lodge with a view of the fjord.",
			Price:       210,
			MaxGuests:   8,
			Rating:      4.9,
			Wifi:        true,
			Breakfast:   true,
			Pets:        true,
			City:        "Geiranger",
			Country:     "Norway",
			OwnerName:   owner.Name,
		},
		{
			ID:          uuid.NewString(),
			Name:        "City Loft",
			Description: "Small loft near the central station.",
			Price:       85,
			MaxGuests:   2,
			Rating:      4.1,
			City:        "Oslo",
			Country:     "Norway",
			OwnerName:   owner.Name,
		},
	}
	for i := range venues {
		venues[i].CreatedAt = time.Now().UTC()
		venues[i].UpdatedAt = venues[i].CreatedAt
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&venues[i]).Error; err != nil {
			return err
		}
	}

	nextMonth := time.Now().UTC().AddDate(0, 1, 0)
	booking := stub.Booking{
		ID:           uuid.NewString(),
		DateFrom:     nextMonth,
		DateTo:       nextMonth.AddDate(0, 0, 3),
		Guests:       2,
		VenueID:      venues[0].ID,
		CustomerName: guest.Name,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&booking).Error
}
