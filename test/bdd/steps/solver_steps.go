package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
)

const fuelTolerance = 1e-6

type solverContext struct {
	problem  *grid.ProblemInstance
	result   *solver.Result
	solveErr error
	selected solver.Kind
}

func (sc *solverContext) reset() {
	sc.problem = nil
	sc.result = nil
	sc.solveErr = nil
	sc.selected = ""
}

// parseGridTable converts a godog data table of integer cells into a grid
func parseGridTable(table *godog.Table) ([][]int, error) {
	cells := make([][]int, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := make([]int, 0, len(row.Cells))
		for _, cell := range row.Cells {
			value, err := strconv.Atoi(cell.Value)
			if err != nil {
				return nil, fmt.Errorf("grid cell %q is not an integer", cell.Value)
			}
			values = append(values, value)
		}
		cells = append(cells, values)
	}
	return cells, nil
}

// Given steps

func (sc *solverContext) aGridWithChests(chests int, table *godog.Table) error {
	cells, err := parseGridTable(table)
	if err != nil {
		return err
	}
	if len(cells) == 0 {
		return fmt.Errorf("grid table is empty")
	}
	sc.problem = grid.NewProblemInstance(len(cells), len(cells[0]), chests, cells)
	return nil
}

// When steps

func (sc *solverContext) iSolveItWithTheSolver(name string) error {
	if sc.problem == nil {
		return fmt.Errorf("no grid defined")
	}

	groups, err := grid.IndexChests(sc.problem)
	if err != nil {
		sc.solveErr = err
		return nil
	}

	var s solver.Solver
	switch name {
	case "exact":
		s = solver.NewExactChainDP(2)
	case "greedy":
		s = solver.NewGreedy(2)
	default:
		return fmt.Errorf("unknown solver %q", name)
	}

	sc.result, sc.solveErr = s.Solve(context.Background(), groups)
	return nil
}

func (sc *solverContext) theSolverIsSelectedForChests(chests int) error {
	sc.selected = solver.Select(chests, solver.Options{}).Name()
	return nil
}

// Then steps

func (sc *solverContext) theMinimumFuelShouldBe(expected float64) error {
	if sc.solveErr != nil {
		return fmt.Errorf("solve failed: %v", sc.solveErr)
	}
	if sc.result == nil {
		return fmt.Errorf("no solve result available")
	}
	if math.Abs(sc.result.MinFuel-expected) > fuelTolerance {
		return fmt.Errorf("expected minimum fuel %f, got %f", expected, sc.result.MinFuel)
	}
	return nil
}

func (sc *solverContext) theRouteShouldVisitPositions(count int) error {
	if sc.result == nil {
		return fmt.Errorf("no solve result available")
	}
	if len(sc.result.Path) != count {
		return fmt.Errorf("expected %d path steps, got %d", count, len(sc.result.Path))
	}
	return nil
}

func (sc *solverContext) theRouteShouldStartAtTheOrigin() error {
	if sc.result == nil {
		return fmt.Errorf("no solve result available")
	}
	if len(sc.result.Path) == 0 {
		return fmt.Errorf("path is empty")
	}
	first := sc.result.Path[0]
	if first.Position != grid.Origin || first.ChestNumber != 0 {
		return fmt.Errorf("path does not start at the origin: %+v", first)
	}
	return nil
}

func (sc *solverContext) solvingShouldFailWith(message string) error {
	if sc.solveErr == nil {
		return fmt.Errorf("expected a solve error containing %q, got none", message)
	}
	if !strings.Contains(sc.solveErr.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, sc.solveErr.Error())
	}
	return nil
}

func (sc *solverContext) theSelectedSolverShouldBe(kind string) error {
	if string(sc.selected) != kind {
		return fmt.Errorf("expected solver %q, got %q", kind, sc.selected)
	}
	return nil
}

// InitializeSolverScenario registers the solver step definitions
func InitializeSolverScenario(ctx *godog.ScenarioContext) {
	sc := &solverContext{}

	ctx.Before(func(c context.Context, scenario *godog.Scenario) (context.Context, error) {
		sc.reset()
		return c, nil
	})

	// Given steps
	ctx.Step(`^a grid with (\d+) chests:$`, sc.aGridWithChests)

	// When steps
	ctx.Step(`^I solve it with the "(exact|greedy)" solver$`, sc.iSolveItWithTheSolver)
	ctx.Step(`^the solver is selected for (\d+) chests$`, sc.theSolverIsSelectedForChests)

	// Then steps
	ctx.Step(`^the minimum fuel should be ([0-9.]+)$`, sc.theMinimumFuelShouldBe)
	ctx.Step(`^the route should visit (\d+) positions$`, sc.theRouteShouldVisitPositions)
	ctx.Step(`^the route should start at the origin$`, sc.theRouteShouldStartAtTheOrigin)
	ctx.Step(`^solving should fail with "([^"]*)"$`, sc.solvingShouldFailWith)
	ctx.Step(`^the selected solver should be "([^"]*)"$`, sc.theSelectedSolverShouldBe)
}
