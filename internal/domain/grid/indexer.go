package grid

import "github.com/andrescamacho/chesthunt-go/internal/domain/shared"

// ChestGroup holds the ordered candidate positions of one chest number.
// Candidates appear in row-major grid scan order; that order is what makes
// tie-breaking in the solvers deterministic.
type ChestGroup struct {
	ChestNumber int
	Candidates  []Position
}

// ChestGroups is indexed by chest number minus one: index 0 holds chest 1
type ChestGroups []ChestGroup

// IndexChests scans the grid once and groups cell coordinates by chest
// number. Cells holding 0 or a value outside [1, p] are skipped (range
// violations are a validation concern handled before this stage). Fails
// with a MissingChestError if any chest number ends up with no candidate.
// Produces a fresh structure per call; the result is owned by one solve.
func IndexChests(problem *ProblemInstance) (ChestGroups, error) {
	groups := make(ChestGroups, problem.P)
	for c := range groups {
		groups[c].ChestNumber = c + 1
	}

	for i, row := range problem.Grid {
		for j, value := range row {
			if value < 1 || value > problem.P {
				continue
			}
			groups[value-1].Candidates = append(groups[value-1].Candidates, Position{Row: i, Col: j})
		}
	}

	for c := range groups {
		if len(groups[c].Candidates) == 0 {
			return nil, shared.NewMissingChestError(c + 1)
		}
	}

	return groups, nil
}

// MaxGroupSize returns the largest candidate count across all groups
func (g ChestGroups) MaxGroupSize() int {
	max := 0
	for _, group := range g {
		if len(group.Candidates) > max {
			max = len(group.Candidates)
		}
	}
	return max
}
