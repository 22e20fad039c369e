package scoring

// Option applies a configuration option to the RegressionStrategy.
type Option func(*RegressionStrategy)

// WithMinSamples sets how many usable events a fit needs. Values below two
// are ignored.
func WithMinSamples(n int) Option {
	return func(s *RegressionStrategy) {
		if n >= defaultMinSamples {
			s.minSamples = n
		}
	}
}
