package grid

// ProblemInstance is the immutable input of one solve: an n×m grid of
// integers in [0, p], where 0 marks an empty cell and 1..p mark chest
// candidates. Every chest number in 1..p must appear at least once.
type ProblemInstance struct {
	N    int     `json:"n" validate:"required,min=1"`
	M    int     `json:"m" validate:"required,min=1"`
	P    int     `json:"p" validate:"required,min=1"`
	Grid [][]int `json:"grid" validate:"required"`
}

// NewProblemInstance creates a problem instance without validating it.
// Callers must run Validator.ValidateProblem before handing the instance
// to a solver.
func NewProblemInstance(n, m, p int, cells [][]int) *ProblemInstance {
	return &ProblemInstance{N: n, M: m, P: p, Grid: cells}
}

// CellCount returns the total number of grid cells
func (pi *ProblemInstance) CellCount() int {
	return pi.N * pi.M
}
