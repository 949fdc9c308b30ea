package stub

import (
	"encoding/json"
	"time"

	"holidaze/internal/api"
)

// User is a registered account. The remote API keys users by profile
// name, so the name is the primary key here too.
type User struct {
	Name         string `gorm:"primaryKey;size:64"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Bio          string
	AvatarURL    string
	AvatarAlt    string
	BannerURL    string
	BannerAlt    string
	VenueManager bool
	CreatedAt    time.Time
}

type Venue struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64
	MaxGuests   int
	Rating      float64
	MediaJSON   string // serialized []api.Media
	Wifi        bool
	Parking     bool
	Breakfast   bool
	Pets        bool
	Address     string
	City        string
	Zip         string
	Country     string
	Continent   string
	Lat         float64
	Lng         float64
	OwnerName   string `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Booking struct {
	ID           string    `gorm:"primaryKey;size:36"`
	DateFrom     time.Time `gorm:"not null"`
	DateTo       time.Time `gorm:"not null"`
	Guests       int       `gorm:"not null"`
	VenueID      string    `gorm:"index;not null"`
	CustomerName string    `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) toProfile() api.Profile {
	p := api.Profile{
		Name:         u.Name,
		Email:        u.Email,
		Bio:          u.Bio,
		VenueManager: u.VenueManager,
	}
	if u.AvatarURL != "" {
		p.Avatar = &api.Media{URL: u.AvatarURL, Alt: u.AvatarAlt}
	}
	if u.BannerURL != "" {
		p.Banner = &api.Media{URL: u.BannerURL, Alt: u.BannerAlt}
	}
	return p
}

func (v *Venue) toAPI() api.Venue {
	out := api.Venue{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		MaxGuests:   v.MaxGuests,
		Rating:      v.Rating,
		Created:     v.CreatedAt,
		Updated:     v.UpdatedAt,
		Meta: api.VenueMeta{
			Wifi:      v.Wifi,
			Parking:   v.Parking,
			Breakfast: v.Breakfast,
			Pets:      v.Pets,
		},
		Location: api.Location{
			Address:   v.Address,
			City:      v.City,
			Zip:       v.Zip,
			Country:   v.Country,
			Continent: v.Continent,
			Lat:       v.Lat,
			Lng:       v.Lng,
		},
	}
	if v.MediaJSON != "" {
		_ = json.Unmarshal([]byte(v.MediaJSON), &out.Media)
	}
	return out
}

func (v *Venue) applyRequest(req api.VenueRequest) {
	v.Name = req.Name
	v.Description = req.Description
	v.Price = req.Price
	v.MaxGuests = req.MaxGuests
	v.Rating = req.Rating
	v.Wifi = req.Meta.Wifi
	v.Parking = req.Meta.Parking
	v.Breakfast = req.Meta.Breakfast
	v.Pets = req.Meta.Pets
	v.Address = req.Location.Address
	v.City = req.Location.City
	v.Zip = req.Location.Zip
	v.Country = req.Location.Country
	v.Continent = req.Location.Continent
	v.Lat = req.Location.Lat
	v.Lng = req.Location.Lng
	if len(req.Media) > 0 {
		raw, _ := json.Marshal(req.Media)
		v.MediaJSON = string(raw)
	} else {
		v.MediaJSON = ""
	}
}

func (b *Booking) toAPI() api.Booking {
	return api.Booking{
		ID:       b.ID,
		DateFrom: b.DateFrom,
		DateTo:   b.DateTo,
		Guests:   b.Guests,
		Created:  b.CreatedAt,
		Updated:  b.UpdatedAt,
	}
}
