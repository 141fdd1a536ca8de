package session

// Option applies a configuration option to the in-memory registry.
type Option func(*inMemoryRegistry)

// WithMaxSize bounds the number of concurrently open sessions. When the
// bound is reached the oldest session is evicted. Non-positive values
// disable eviction.
func WithMaxSize(maxSize int) Option {
	return func(r *inMemoryRegistry) {
		r.maxSize = maxSize
	}
}
