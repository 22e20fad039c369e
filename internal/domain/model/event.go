// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// Epsilon is added to every price or statistic used as a divisor.
const Epsilon = 1e-6

// Event is one ticketed occurrence with its observed resale history.
// ResalePrices[i] was observed at Dates[i]; Dates are non-decreasing and are
// never re-sorted by the engine.
type Event struct {
	ID            int
	Name          string
	Category      string
	Venue         string
	OriginalPrice float64 // face value at issuance
	CurrentPrice  float64 // display only
	ResalePrices  []float64
	Dates         []time.Time
}

// HasSeries reports whether the event carries a usable resale series:
// at least one price and a date for every price.
func (e *Event) HasSeries() bool {
	return len(e.ResalePrices) > 0 && len(e.ResalePrices) == len(e.Dates)
}

// Validate reports structurally degenerate events that cannot be scored
// without producing misleading numbers.
func (e *Event) Validate() error {
	switch {
	case len(e.ResalePrices) == 0:
		return fmt.Errorf("%w: event %d has no resale prices", ErrDegenerateEvent, e.ID)
	case len(e.ResalePrices) != len(e.Dates):
		return fmt.Errorf("%w: event %d has %d prices but %d dates",
			ErrDegenerateEvent, e.ID, len(e.ResalePrices), len(e.Dates))
	case e.OriginalPrice <= 0:
		return fmt.Errorf("%w: event %d has original price %g", ErrDegenerateEvent, e.ID, e.OriginalPrice)
	}
	return nil
}

// DaysBetween returns the whole days from a to b, floored like a calendar
// day difference.
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// dateLayouts are accepted by ParseDate, most specific last.
var dateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// ParseDate parses a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", s, lastErr)
}

// ScoreJob asks a ranking worker to score one catalog event.
type ScoreJob struct {
	RunID   string
	EventID int
}
