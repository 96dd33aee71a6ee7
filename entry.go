package foldmap

// Entry is an owned key/value pair stored in the map. Keys are immutable
// once stored; values are replaced in place by Put, so an entry's identity
// is stable for as long as its key is present.
type Entry[P any, V comparable] struct {
	key   P
	value V
}

// Key returns the entry's key.
func (e *Entry[P, V]) Key() P { return e.key }

// Value returns the entry's current value.
func (e *Entry[P, V]) Value() V { return e.value }

// setValue replaces the value in place and returns the previous one.
func (e *Entry[P, V]) setValue(v V) V {
	old := e.value
	e.value = v
	return old
}
