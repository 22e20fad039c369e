// Package synthetic generates reproducible ticket catalogs for load runs and
// tests.
package synthetic

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/okian/tixroi/internal/domain/model"
)

// Price and series shape ranges.
const (
	minOriginalPrice = 30.0
	originalRange    = 220.0
	maxObservations  = 6
	minStepDays      = 2
	stepDaysRange    = 5
	maxStartOffset   = 180
)

// Resale profiles.
const (
	profileHot = iota
	profileSteady
	profileFalling
	profileVolatile
	profileCount
)

var venues = map[string][]string{
	"Concert":    {"Stadium X", "Open Grounds", "Arena North"},
	"Sports":     {"Arena Y", "Sports Arena", "Dome West"},
	"Music":      {"Theater Z", "Jazz Cellar", "Riverside Hall"},
	"Conference": {"Expo Center", "Convention Hall"},
	"Theater":    {"Grand Theater", "Playhouse"},
	"Esports":    {"Gaming Arena", "Net Hub"},
}

// categories keeps generation order stable; map iteration is not.
var categories = []string{"Concert", "Sports", "Music", "Conference", "Theater", "Esports"}

// Generator builds synthetic events. It is not safe for concurrent use.
type Generator struct {
	seed    uint64
	start   time.Time
	firstID int
	rng     *rand.Rand
}

// New creates a generator. Without WithSeed the output differs per run.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:    uint64(time.Now().UnixNano()),
		start:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		firstID: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	return g
}

// Events returns n events with consecutive ids.
func (g *Generator) Events(n int) []model.Event {
	events := make([]model.Event, 0, max(n, 0))
	for i := 0; i < n; i++ {
		events = append(events, g.event(g.firstID+i))
	}
	return events
}

func (g *Generator) event(id int) model.Event {
	category := categories[g.rng.IntN(len(categories))]
	choices := venues[category]
	venue := choices[g.rng.IntN(len(choices))]

	original := cents(minOriginalPrice + g.rng.Float64()*originalRange)
	count := 1 + g.rng.IntN(maxObservations)
	prices, dates := g.series(original, count)

	return model.Event{
		ID:            id,
		Name:          fmt.Sprintf("%s Event %d", category, id),
		Category:      category,
		Venue:         venue,
		OriginalPrice: original,
		CurrentPrice:  prices[len(prices)-1],
		ResalePrices:  prices,
		Dates:         dates,
	}
}

// series walks the price from the original value with a drift picked by
// profile. Prices never drop below one cent.
func (g *Generator) series(original float64, count int) ([]float64, []time.Time) {
	var drift, noise float64
	switch g.rng.IntN(profileCount) {
	case profileHot:
		drift, noise = 0.10+g.rng.Float64()*0.20, 0.05
	case profileSteady:
		drift, noise = 0.01+g.rng.Float64()*0.04, 0.02
	case profileFalling:
		drift, noise = -0.05-g.rng.Float64()*0.10, 0.03
	default:
		drift, noise = 0, 0.25
	}

	prices := make([]float64, count)
	dates := make([]time.Time, count)
	day := g.start.AddDate(0, 0, g.rng.IntN(maxStartOffset))
	price := original
	for i := 0; i < count; i++ {
		price *= 1 + drift + (g.rng.Float64()*2-1)*noise
		prices[i] = math.Max(0.01, cents(price))
		dates[i] = day
		day = day.AddDate(0, 0, minStepDays+g.rng.IntN(stepDaysRange))
	}
	return prices, dates
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
