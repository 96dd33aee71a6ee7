package foldmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSpace is returned by New when no space is supplied.
	ErrNilSpace = errors.New("foldmap: space must not be nil")

	// ErrNilStrategy is returned by New when no strategy is supplied.
	ErrNilStrategy = errors.New("foldmap: strategy must not be nil")

	// ErrNoSuchElement is returned by Iterator.Remove when no element is
	// available to remove: before the first Next, after the iterator is
	// exhausted, or when the current element was already removed.
	ErrNoSuchElement = errors.New("foldmap: no element to remove")
)

// ErrNonFinitePoint indicates that an operation was given a point the space
// reports as non-finite. The operation had no effect.
type ErrNonFinitePoint struct {
	Op string
}

func (e *ErrNonFinitePoint) Error() string {
	return fmt.Sprintf("foldmap: %s: point is not finite", e.Op)
}

// ErrConcurrentModification indicates a structural conflict: an iterator was
// used after the map was mutated through another path since the iterator was
// created. Removals performed through the iterator itself do not trigger it.
type ErrConcurrentModification struct {
	Snapshot uint64 // version captured at iterator creation
	Version  uint64 // live map version
}

func (e *ErrConcurrentModification) Error() string {
	return fmt.Sprintf("foldmap: concurrent modification: iterator snapshot %d, map version %d", e.Snapshot, e.Version)
}

// ErrInvalidLeafCapacity indicates an unusable leaf capacity option.
type ErrInvalidLeafCapacity struct {
	LeafCapacity int
}

func (e *ErrInvalidLeafCapacity) Error() string {
	return fmt.Sprintf("foldmap: invalid leaf capacity: %d", e.LeafCapacity)
}

// ErrInvalidArity indicates a strategy with an unusable fan-out.
type ErrInvalidArity struct {
	Arity int
}

func (e *ErrInvalidArity) Error() string {
	return fmt.Sprintf("foldmap: invalid strategy arity: %d", e.Arity)
}
