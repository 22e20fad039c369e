// Package repository holds the opportunity board that ranks scored events.
package repository

import (
	"context"

	"github.com/okian/tixroi/internal/domain/model"
)

// Entry is one row of the opportunity board.
type Entry struct {
	Rank int `json:"rank"`
	model.Recommendation
}

// Store provides read/write access to the board.
type Store interface {
	// Upsert places or replaces the recommendation of its event.
	// It returns true when the event was not on the board yet.
	Upsert(ctx context.Context, rec model.Recommendation) (bool, error)

	// Rank returns the current position of an event.
	// Returns ErrNotFound if the event is not on the board.
	Rank(ctx context.Context, eventID int) (Entry, error)

	// TopN returns the best n entries by expected ROI desc, event id asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of events on the board.
	Count(ctx context.Context) int
}
