package foldmap

// Options contains configuration options for a Map.
type Options struct {
	// LeafCapacity is the maximum number of entries a leaf holds before it
	// splits into the strategy's fan-out of children. An internal node
	// whose subtree shrinks to at most LeafCapacity/2 entries collapses
	// back into a leaf.
	LeafCapacity int

	// Logger receives structural debug events (splits, fold start/finish,
	// condensation). Nil disables logging.
	Logger *Logger

	// Metrics receives operation and structural-event counters. Nil
	// disables metrics collection.
	Metrics MetricsCollector
}

// DefaultOptions contains the default configuration options for a Map.
var DefaultOptions = Options{
	LeafCapacity: 16,
}

// WithLeafCapacity configures the leaf capacity.
func WithLeafCapacity(capacity int) func(o *Options) {
	return func(o *Options) {
		o.LeafCapacity = capacity
	}
}

// WithLogger configures structural debug logging.
func WithLogger(logger *Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMetrics configures metrics collection.
func WithMetrics(collector MetricsCollector) func(o *Options) {
	return func(o *Options) {
		o.Metrics = collector
	}
}
