package solver

import (
	"context"
	"runtime"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
)

// Kind identifies which solving strategy produced a result
type Kind string

const (
	// KindExactChainDP is the globally optimal dynamic-programming solver
	KindExactChainDP Kind = "EXACT_CHAIN_DP"

	// KindGreedy is the nearest-candidate heuristic for large chest counts
	KindGreedy Kind = "GREEDY"
)

// DefaultExactThreshold is the largest chest count still solved exactly.
// Beyond it the DP's O(p·k²) cost is traded away for the greedy heuristic.
const DefaultExactThreshold = 10

// PathStep is one visited position on the route. Step 0 is chest number 0
// at the fixed origin; step i (i ≥ 1) is the chosen candidate of chest i.
type PathStep struct {
	ChestNumber    int           `json:"chest_number"`
	Position       grid.Position `json:"position"`
	FuelUsed       float64       `json:"fuel_used"`
	CumulativeFuel float64       `json:"cumulative_fuel"`
}

// Result is the outcome of one solve: the ordered p+1 step path and the
// total fuel spent walking it
type Result struct {
	MinFuel float64    `json:"min_fuel"`
	Path    []PathStep `json:"path"`
	Solver  Kind       `json:"solver"`
}

// Solver computes a route through the chest groups in chest-number order.
// Implementations observe ctx cooperatively between coarse units of work
// (DP layers, greedy steps) and return ctx.Err() when cancelled mid-flight.
type Solver interface {
	Name() Kind
	Solve(ctx context.Context, groups grid.ChestGroups) (*Result, error)
}

// Options tunes solver selection and parallel execution
type Options struct {
	// ExactThreshold is the largest p solved with the exact chain DP.
	// Zero means DefaultExactThreshold.
	ExactThreshold int

	// Workers is the parallel fan-out for layer fills and nearest-candidate
	// scans. Zero means runtime.NumCPU().
	Workers int
}

func (o Options) exactThreshold() int {
	if o.ExactThreshold <= 0 {
		return DefaultExactThreshold
	}
	return o.ExactThreshold
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Select picks the solving strategy for a chest count: the exact chain DP
// for small p, the greedy heuristic above the threshold. Pure decision,
// no state.
func Select(p int, opts Options) Solver {
	if p <= opts.exactThreshold() {
		return NewExactChainDP(opts.workers())
	}
	return NewGreedy(opts.workers())
}

// appendStep extends a path with the move to position, accumulating fuel
func appendStep(path []PathStep, chestNumber int, position grid.Position, fuelUsed float64) []PathStep {
	cumulative := fuelUsed
	if len(path) > 0 {
		cumulative += path[len(path)-1].CumulativeFuel
	}
	return append(path, PathStep{
		ChestNumber:    chestNumber,
		Position:       position,
		FuelUsed:       fuelUsed,
		CumulativeFuel: cumulative,
	})
}

// originPath starts a path with the chest-0 step at the origin
func originPath(capacity int) []PathStep {
	path := make([]PathStep, 0, capacity+1)
	return append(path, PathStep{ChestNumber: 0, Position: grid.Origin})
}
