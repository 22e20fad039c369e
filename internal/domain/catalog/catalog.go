// Package catalog holds the immutable in-memory set of events and the cohort
// selection over it.
package catalog

import (
	"fmt"

	"github.com/okian/tixroi/internal/domain/model"
)

// Catalog is an ordered, read-only collection of events indexed by id.
// A Catalog is never mutated after New returns; replace it wholesale instead.
type Catalog struct {
	events []model.Event
	byID   map[int]int // id -> position in events
}

// New builds a catalog from events, keeping their order. Duplicate ids are
// rejected with ErrDuplicateID.
func New(events []model.Event) (*Catalog, error) {
	c := &Catalog{
		events: make([]model.Event, len(events)),
		byID:   make(map[int]int, len(events)),
	}
	copy(c.events, events)

	for i := range c.events {
		id := c.events[i].ID
		if first, ok := c.byID[id]; ok {
			return nil, fmt.Errorf("%w: id %d at positions %d and %d", ErrDuplicateID, id, first, i)
		}
		c.byID[id] = i
	}
	return c, nil
}

// Empty returns a catalog without events.
func Empty() *Catalog {
	return &Catalog{byID: map[int]int{}}
}

// Len returns the number of events.
func (c *Catalog) Len() int {
	return len(c.events)
}

// Events returns the events in catalog order. Callers must not modify them.
func (c *Catalog) Events() []model.Event {
	return c.events
}

// Get returns the event with the given id.
func (c *Catalog) Get(id int) (model.Event, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Event{}, false
	}
	return c.events[i], true
}

// ByCategory returns every event of the category in catalog order.
// An empty category selects the whole catalog.
func (c *Catalog) ByCategory(category string) []model.Event {
	if category == "" {
		return c.events
	}
	return c.filter(func(e *model.Event) bool { return e.Category == category })
}

// Cohort returns the events comparable to target: same category and venue.
// The target itself is part of its cohort when it belongs to the catalog.
func (c *Catalog) Cohort(target model.Event) []model.Event {
	return c.filter(func(e *model.Event) bool {
		return e.Category == target.Category && e.Venue == target.Venue
	})
}

func (c *Catalog) filter(keep func(*model.Event) bool) []model.Event {
	var out []model.Event
	for i := range c.events {
		if keep(&c.events[i]) {
			out = append(out, c.events[i])
		}
	}
	return out
}
