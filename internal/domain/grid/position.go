package grid

import (
	"fmt"
	"math"
)

// Position is a zero-based (row, col) cell coordinate on the grid
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Origin is the fixed starting position of every hunt
var Origin = Position{Row: 0, Col: 0}

// Distance computes the Euclidean distance between two positions
func Distance(a, b Position) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// String provides human-readable representation
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
