package synthetic

import "time"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithStart sets the date of the earliest observation.
func WithStart(start time.Time) Option {
	return func(g *Generator) {
		if !start.IsZero() {
			g.start = start
		}
	}
}

// WithFirstID sets the id of the first generated event.
func WithFirstID(id int) Option {
	return func(g *Generator) {
		if id >= 0 {
			g.firstID = id
		}
	}
}
