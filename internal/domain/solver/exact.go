package solver

import (
	"context"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
)

// backPointerStart marks layer-0 entries reached directly from the origin
const backPointerStart = -1

// ExactChainDP solves the fixed-order, multi-candidate-per-step shortest
// path problem exactly: one DP layer per chest number, each cell holding
// the minimum cumulative fuel to reach that candidate plus a back pointer
// into the previous layer. Optimal substructure holds because the cost to
// reach a candidate of group i depends only on the best cost to reach some
// candidate of group i-1, never on earlier history.
//
// Complexity is O(p · k_max²), which is why selection gates it to small p.
type ExactChainDP struct {
	workers int
}

// NewExactChainDP creates the exact solver with the given parallel fan-out
func NewExactChainDP(workers int) *ExactChainDP {
	return &ExactChainDP{workers: workers}
}

// Name returns the solver kind
func (s *ExactChainDP) Name() Kind {
	return KindExactChainDP
}

// Solve fills the DP table layer by layer and reconstructs the optimal
// path. Layers are filled in strictly increasing chest-index order; within
// one layer every candidate's minimization runs in parallel, each goroutine
// writing only its own cost and back-pointer slots. Cancellation is checked
// once per layer, never inside the inner scans.
func (s *ExactChainDP) Solve(ctx context.Context, groups grid.ChestGroups) (*Result, error) {
	p := len(groups)
	if p == 0 {
		return &Result{MinFuel: 0, Path: originPath(0), Solver: s.Name()}, nil
	}

	// Arena pre-sized before any parallel writes begin
	cost := make([][]float64, p)
	back := make([][]int, p)
	for i := range groups {
		cost[i] = make([]float64, len(groups[i].Candidates))
		back[i] = make([]int, len(groups[i].Candidates))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layer0 := groups[0].Candidates
	forEachChunk(s.workers, len(layer0), func(lo, hi int) {
		for j := lo; j < hi; j++ {
			cost[0][j] = grid.Distance(grid.Origin, layer0[j])
			back[0][j] = backPointerStart
		}
	})

	for i := 1; i < p; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prev := groups[i-1].Candidates
		curr := groups[i].Candidates
		prevCost := cost[i-1]

		forEachChunk(s.workers, len(curr), func(lo, hi int) {
			for j := lo; j < hi; j++ {
				bestK := 0
				bestCost := prevCost[0] + grid.Distance(prev[0], curr[j])
				for k := 1; k < len(prev); k++ {
					if c := prevCost[k] + grid.Distance(prev[k], curr[j]); c < bestCost {
						bestCost = c
						bestK = k
					}
				}
				cost[i][j] = bestCost
				back[i][j] = bestK
			}
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bestJ := minReduce(s.workers, cost[p-1])
	return s.reconstruct(groups, cost, back, bestJ), nil
}

// reconstruct walks the back pointers from the minimizing final candidate
// to layer 0, then emits the path front to back
func (s *ExactChainDP) reconstruct(groups grid.ChestGroups, cost [][]float64, back [][]int, bestJ int) *Result {
	p := len(groups)

	chosen := make([]int, p)
	for i, j := p-1, bestJ; i >= 0; i-- {
		chosen[i] = j
		j = back[i][j]
	}

	path := originPath(p)
	position := grid.Origin
	for i := 0; i < p; i++ {
		next := groups[i].Candidates[chosen[i]]
		path = appendStep(path, i+1, next, grid.Distance(position, next))
		position = next
	}

	return &Result{
		MinFuel: cost[p-1][bestJ],
		Path:    path,
		Solver:  s.Name(),
	}
}
