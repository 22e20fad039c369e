// Package repository holds the opportunity board that ranks scored events.
package repository

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithSeed fixes the seed of the node priority source.
func WithSeed(seed uint64) Option {
	return func(s *TreapStore) {
		s.seed = seed
	}
}

// WithComponent sets the label used when recording board errors.
func WithComponent(name string) Option {
	return func(s *TreapStore) {
		if name != "" {
			s.component = name
		}
	}
}
