package dedupe

// defaultMaxSize bounds the number of tracked IDs.
const defaultMaxSize = 100_000

// Option applies a configuration option to the deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets the maximum number of IDs kept before FIFO eviction.
// Zero or negative means unbounded.
func WithMaxSize(size int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = size
	}
}
