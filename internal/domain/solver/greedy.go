package solver

import (
	"context"
	"sync"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
)

// Greedy visits chests in order and always moves to the candidate nearest
// the current position. Locally optimal per step, not globally optimal;
// it trades optimality for O(p · k_max) cost on large chest counts. No
// backtracking or revision of earlier choices ever occurs.
type Greedy struct {
	workers int
}

// NewGreedy creates the greedy solver with the given parallel fan-out
func NewGreedy(workers int) *Greedy {
	return &Greedy{workers: workers}
}

// Name returns the solver kind
func (s *Greedy) Name() Kind {
	return KindGreedy
}

// Solve walks the groups sequentially; only the nearest-candidate scan
// within one step is parallelized, since each step's starting position
// depends on the previous step's choice. Cancellation is checked once per
// step.
func (s *Greedy) Solve(ctx context.Context, groups grid.ChestGroups) (*Result, error) {
	path := originPath(len(groups))
	position := grid.Origin
	total := 0.0

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		j, fuel := s.nearest(position, group.Candidates)
		next := group.Candidates[j]
		path = appendStep(path, group.ChestNumber, next, fuel)
		position = next
		total += fuel
	}

	return &Result{MinFuel: total, Path: path, Solver: s.Name()}, nil
}

// nearest finds the candidate closest to from, breaking distance ties by
// the first minimal candidate in scan order. The scan is partitioned
// across workers; per-chunk winners are combined in ascending chunk order
// with a strict comparison so the result is deterministic.
func (s *Greedy) nearest(from grid.Position, candidates []grid.Position) (int, float64) {
	n := len(candidates)
	workers := s.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		best := chunkMin{index: -1}
		for j, candidate := range candidates {
			if d := grid.Distance(from, candidate); best.index < 0 || d < best.value {
				best = chunkMin{index: j, value: d}
			}
		}
		return best.index, best.value
	}

	chunkSize := (n + workers - 1) / workers
	numChunks := (n + chunkSize - 1) / chunkSize
	partials := make([]chunkMin, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		lo := c * chunkSize
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(c, lo, hi int) {
			defer wg.Done()
			best := chunkMin{index: -1}
			for j := lo; j < hi; j++ {
				if d := grid.Distance(from, candidates[j]); best.index < 0 || d < best.value {
					best = chunkMin{index: j, value: d}
				}
			}
			partials[c] = best
		}(c, lo, hi)
	}
	wg.Wait()

	best := chunkMin{index: -1}
	for _, partial := range partials {
		if partial.index < 0 {
			continue
		}
		if best.index < 0 || partial.value < best.value {
			best = partial
		}
	}
	return best.index, best.value
}
