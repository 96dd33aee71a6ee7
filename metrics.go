package foldmap

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordPut is called after each successful Put. replaced reports
	// whether an existing value was replaced in place.
	RecordPut(replaced bool)

	// RecordRemove is called after each successful removal.
	RecordRemove()

	// RecordSearch is called after each nearest/farthest search.
	RecordSearch()

	// RecordSplit is called when a leaf splits into an internal node.
	RecordSplit()

	// RecordCondense is called when an internal node collapses back into a
	// leaf.
	RecordCondense()

	// RecordFoldStart is called when a rebalancing pass begins.
	RecordFoldStart()

	// RecordFoldFinish is called when a rebalancing pass completes.
	RecordFoldFinish()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPut(bool)    {}
func (NoopMetricsCollector) RecordRemove()     {}
func (NoopMetricsCollector) RecordSearch()     {}
func (NoopMetricsCollector) RecordSplit()      {}
func (NoopMetricsCollector) RecordCondense()   {}
func (NoopMetricsCollector) RecordFoldStart()  {}
func (NoopMetricsCollector) RecordFoldFinish() {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	PutCount      int64
	ReplaceCount  int64
	RemoveCount   int64
	SearchCount   int64
	SplitCount    int64
	CondenseCount int64
	FoldStarts    int64
	FoldFinishes  int64
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut(replaced bool) {
	b.PutCount++
	if replaced {
		b.ReplaceCount++
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove() { b.RemoveCount++ }

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch() { b.SearchCount++ }

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit() { b.SplitCount++ }

// RecordCondense implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCondense() { b.CondenseCount++ }

// RecordFoldStart implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFoldStart() { b.FoldStarts++ }

// RecordFoldFinish implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFoldFinish() { b.FoldFinishes++ }
