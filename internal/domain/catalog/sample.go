package catalog

import (
	"time"

	"github.com/okian/tixroi/internal/domain/model"
)

func dates(days ...string) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		t, err := time.Parse(time.DateOnly, d)
		if err != nil {
			panic(err)
		}
		out[i] = t
	}
	return out
}

// Sample returns the built-in eight event demo catalog.
func Sample() []model.Event {
	return []model.Event{
		{
			ID: 1, Name: "Rock Concert A", Category: "Concert", Venue: "Stadium X",
			OriginalPrice: 100, CurrentPrice: 130,
			ResalePrices: []float64{120, 150, 200, 180},
			Dates:        dates("2024-01-01", "2024-01-05", "2024-01-10", "2024-01-15"),
		},
		{
			ID: 2, Name: "Football Match B", Category: "Sports", Venue: "Arena Y",
			OriginalPrice: 80, CurrentPrice: 95,
			ResalePrices: []float64{90, 100, 95, 110},
			Dates:        dates("2024-02-01", "2024-02-05", "2024-02-08", "2024-02-12"),
		},
		{
			ID: 3, Name: "Jazz Night C", Category: "Music", Venue: "Theater Z",
			OriginalPrice: 60, CurrentPrice: 70,
			ResalePrices: []float64{65, 75, 85, 90},
			Dates:        dates("2024-03-01", "2024-03-04", "2024-03-08", "2024-03-12"),
		},
		{
			ID: 4, Name: "Tech Conference D", Category: "Conference", Venue: "Expo Center",
			OriginalPrice: 150, CurrentPrice: 170,
			ResalePrices: []float64{160, 180, 200, 220},
			Dates:        dates("2024-04-10", "2024-04-15", "2024-04-20", "2024-04-25"),
		},
		{
			ID: 5, Name: "Basketball Finals E", Category: "Sports", Venue: "Sports Arena",
			OriginalPrice: 120, CurrentPrice: 140,
			ResalePrices: []float64{130, 145, 160, 175},
			Dates:        dates("2024-05-05", "2024-05-10", "2024-05-15", "2024-05-20"),
		},
		{
			ID: 6, Name: "Opera Show F", Category: "Theater", Venue: "Grand Theater",
			OriginalPrice: 90, CurrentPrice: 110,
			ResalePrices: []float64{95, 105, 120, 130},
			Dates:        dates("2024-06-01", "2024-06-05", "2024-06-10", "2024-06-15"),
		},
		{
			ID: 7, Name: "Music Festival G", Category: "Concert", Venue: "Open Grounds",
			OriginalPrice: 75, CurrentPrice: 95,
			ResalePrices: []float64{80, 100, 120, 140},
			Dates:        dates("2024-07-10", "2024-07-15", "2024-07-20", "2024-07-25"),
		},
		{
			ID: 8, Name: "Esports Tournament H", Category: "Esports", Venue: "Gaming Arena",
			OriginalPrice: 50, CurrentPrice: 65,
			ResalePrices: []float64{55, 60, 75, 85},
			Dates:        dates("2024-08-05", "2024-08-10", "2024-08-15", "2024-08-20"),
		},
	}
}
