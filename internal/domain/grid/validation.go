package grid

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/chesthunt-go/internal/domain/shared"
)

// Validator checks problem instances before any solver runs.
// Structural tags are enforced with go-playground/validator; the grid
// shape, value range, and chest coverage checks are implemented by hand
// since they depend on relationships between fields.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new problem validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidateProblem verifies every precondition the solvers assume:
// n, m, p > 0; grid row count equals n and every row length equals m;
// every cell value lies in [0, p]; every chest number 1..p appears at
// least once. Returns a shared.ValidationError on the first violation.
func (v *Validator) ValidateProblem(problem *ProblemInstance) error {
	if problem == nil {
		return shared.NewValidationError("problem instance is required")
	}

	if err := v.validate.Struct(problem); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				fields = append(fields, e.Field())
			}
			return shared.NewValidationError(
				fmt.Sprintf("invalid problem instance: %s", validationErrs.Error()), fields...)
		}
		return shared.NewValidationError(err.Error())
	}

	if len(problem.Grid) != problem.N {
		return shared.NewValidationError(
			fmt.Sprintf("grid has %d rows, expected n=%d", len(problem.Grid), problem.N), "grid")
	}

	seen := make([]bool, problem.P+1)
	for i, row := range problem.Grid {
		if len(row) != problem.M {
			return shared.NewValidationError(
				fmt.Sprintf("grid row %d has %d columns, expected m=%d", i, len(row), problem.M), "grid")
		}
		for j, value := range row {
			if value < 0 || value > problem.P {
				return shared.NewValidationError(
					fmt.Sprintf("cell (%d,%d) holds %d, outside [0,%d]", i, j, value, problem.P), "grid")
			}
			if value > 0 {
				seen[value] = true
			}
		}
	}

	for c := 1; c <= problem.P; c++ {
		if !seen[c] {
			return shared.NewMissingChestError(c)
		}
	}

	return nil
}
