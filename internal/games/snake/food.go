package snake

import (
	"math/rand"

	"github.com/vovakirdan/snakeboard/internal/core"
)

// FoodPlacer picks food cells uniformly at random among free cells.
type FoodPlacer struct {
	grid core.Grid
	rng  *rand.Rand
}

// NewFoodPlacer creates a placer for the grid using a seeded RNG.
func NewFoodPlacer(grid core.Grid, seed int64) *FoodPlacer {
	return &FoodPlacer{
		grid: grid,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Place samples random cells until one is not in occupied.
// Returns false when occupied already covers the whole board.
func (p *FoodPlacer) Place(occupied []core.Cell) (core.Cell, bool) {
	if p.grid.Size <= 0 || len(occupied) >= p.grid.Area() {
		return core.Cell{}, false
	}

	for {
		c := core.Cell{
			X: p.rng.Intn(p.grid.Size),
			Y: p.rng.Intn(p.grid.Size),
		}
		if !core.Occupies(occupied, c) {
			return c, true
		}
	}
}
