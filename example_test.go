package foldmap_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/foldmap"
	"github.com/hupe1980/foldmap/space/angular"
	"github.com/hupe1980/foldmap/space/euclid"
)

// Example demonstrates exact lookup and nearest search in the plane.
func Example() {
	sp, err := euclid.NewSpace(2)
	if err != nil {
		log.Fatal(err)
	}
	strat, err := euclid.NewStrategy(2)
	if err != nil {
		log.Fatal(err)
	}

	m, err := foldmap.New[[]float64, string](sp, strat)
	if err != nil {
		log.Fatal(err)
	}

	m.Put([]float64{0, 0}, "origin")
	m.Put([]float64{3, 4}, "northeast")
	m.Put([]float64{-1, 2}, "west")

	e, err := m.NearestEntry([]float64{2.5, 3.5})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(e.Value())
	// Output: northeast
}

// Example_nearToFar demonstrates lazy distance-ordered iteration.
func Example_nearToFar() {
	sp, _ := euclid.NewSpace(2)
	strat, _ := euclid.NewStrategy(2)
	m, _ := foldmap.New[[]float64, string](sp, strat)

	m.Put([]float64{1, 0}, "near")
	m.Put([]float64{0, 2}, "middle")
	m.Put([]float64{3, 0}, "far")

	it, err := m.NearToFar([]float64{0, 0})
	if err != nil {
		log.Fatal(err)
	}
	for e, err := range it.Seq() {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(e.Value())
	}
	// Output:
	// near
	// middle
	// far
}

// Example_angular demonstrates the wrap-around angular geometry.
func Example_angular() {
	sp := angular.NewSpace()
	strat, err := angular.NewStrategy(4)
	if err != nil {
		log.Fatal(err)
	}

	m, _ := foldmap.New[float64, string](sp, strat)

	m.Put(0.1, "dawn")
	m.Put(3.1, "noon")
	m.Put(6.2, "dusk")

	// 6.27 rad is just short of a full turn: the nearest angle wraps.
	e, _ := m.NearestEntry(6.27)
	fmt.Println(e.Value())
	// Output: dusk
}
