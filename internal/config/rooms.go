package config

import "meetroom/internal/models"

// RoomConfig is one entry of the static room registry. The registry is the
// source of truth for which rooms exist; the database rows are seeded from it
// at startup and the slug is persisted alongside the row.
type RoomConfig struct {
	Slug        string
	Name        string
	Description string
	Color       models.EventColor
}

var Rooms = []RoomConfig{
	{
		Slug:        "market",
		Name:        "Market",
		Description: "Main conference room for team meetings and presentations",
		Color:       models.ColorBlue,
	},
	{
		Slug:        "small-studio",
		Name:        "Small Studio",
		Description: "Intimate meeting space perfect for small team discussions",
		Color:       models.ColorOrange,
	},
	{
		Slug:        "phinisi",
		Name:        "Phinisi",
		Description: "Spacious meeting room for larger gatherings and workshops",
		Color:       models.ColorViolet,
	},
}

func RoomBySlug(slug string) (RoomConfig, bool) {
	for _, rc := range Rooms {
		if rc.Slug == slug {
			return rc, true
		}
	}
	return RoomConfig{}, false
}

func ValidRoomSlug(slug string) bool {
	_, ok := RoomBySlug(slug)
	return ok
}
