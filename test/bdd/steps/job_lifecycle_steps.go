package steps

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/chesthunt-go/internal/adapters/persistence"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
	"github.com/andrescamacho/chesthunt-go/internal/infrastructure/database"
)

const (
	statusPollInterval = 5 * time.Millisecond
	statusWaitTimeout  = 10 * time.Second
)

type jobLifecycleContext struct {
	manager      *jobs.Manager
	problem      *grid.ProblemInstance
	jobID        string
	submitErr    error
	cancelResult bool
}

func (jc *jobLifecycleContext) reset() error {
	if jc.manager != nil {
		jc.manager.Shutdown("scenario teardown")
	}

	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to create scenario database: %w", err)
	}

	jc.manager = jobs.NewManager(
		persistence.NewJobRepository(db),
		persistence.NewJobLogRepository(db),
		nil,
		solver.Options{Workers: 2},
		0,
		nil,
	)
	jc.problem = nil
	jc.jobID = ""
	jc.submitErr = nil
	jc.cancelResult = false
	return nil
}

// Given steps

func (jc *jobLifecycleContext) aSolveRequestForAGridWithChests(chests int, table *godog.Table) error {
	cells, err := parseGridTable(table)
	if err != nil {
		return err
	}
	if len(cells) == 0 {
		return fmt.Errorf("grid table is empty")
	}
	jc.problem = grid.NewProblemInstance(len(cells), len(cells[0]), chests, cells)
	return nil
}

func (jc *jobLifecycleContext) aLongRunningSolveRequest() error {
	// Large enough for the exact DP to run through several slow layers
	const n, m, p = 200, 200, 4
	cells := make([][]int, n)
	for i := range cells {
		cells[i] = make([]int, m)
		for j := range cells[i] {
			cells[i][j] = (i*m+j)%p + 1
		}
	}
	jc.problem = grid.NewProblemInstance(n, m, p, cells)
	return nil
}

// When steps

func (jc *jobLifecycleContext) iSubmitTheSolveJob() error {
	if jc.problem == nil {
		return fmt.Errorf("no solve request defined")
	}
	jc.jobID, jc.submitErr = jc.manager.StartSolve(context.Background(), jc.problem)
	return nil
}

func (jc *jobLifecycleContext) iCancelTheJobWithReason(reason string) error {
	jc.cancelResult = jc.manager.Cancel(context.Background(), jc.jobID, reason)
	return nil
}

// Then steps

func (jc *jobLifecycleContext) theSubmissionShouldBeAccepted() error {
	if jc.submitErr != nil {
		return fmt.Errorf("submission failed: %v", jc.submitErr)
	}
	if jc.jobID == "" {
		return fmt.Errorf("no job id returned")
	}
	return nil
}

func (jc *jobLifecycleContext) theSubmissionShouldFailWith(message string) error {
	if jc.submitErr == nil {
		return fmt.Errorf("expected a submission error containing %q, got none", message)
	}
	if !strings.Contains(jc.submitErr.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, jc.submitErr.Error())
	}
	return nil
}

func (jc *jobLifecycleContext) waitForStatus(want job.Status) (*jobs.JobView, error) {
	deadline := time.Now().Add(statusWaitTimeout)
	for {
		view, err := jc.manager.GetStatus(context.Background(), jc.jobID)
		if err == nil && view.Status == want {
			return view, nil
		}
		if time.Now().After(deadline) {
			current := job.Status("UNKNOWN")
			if view != nil {
				current = view.Status
			}
			return nil, fmt.Errorf("job %s never reached %s (currently %s)", jc.jobID, want, current)
		}
		time.Sleep(statusPollInterval)
	}
}

func (jc *jobLifecycleContext) theJobShouldEventuallyBe(status string) error {
	_, err := jc.waitForStatus(job.Status(status))
	return err
}

func (jc *jobLifecycleContext) theJobResultShouldHaveMinimumFuel(expected float64) error {
	view, err := jc.waitForStatus(job.StatusCompleted)
	if err != nil {
		return err
	}
	if view.Result == nil {
		return fmt.Errorf("completed job has no result")
	}
	if math.Abs(view.Result.MinFuel-expected) > fuelTolerance {
		return fmt.Errorf("expected minimum fuel %f, got %f", expected, view.Result.MinFuel)
	}
	return nil
}

func (jc *jobLifecycleContext) theJobShouldHaveNoResult() error {
	view, err := jc.manager.GetStatus(context.Background(), jc.jobID)
	if err != nil {
		return err
	}
	if view.Result != nil {
		return fmt.Errorf("expected no result, found one with min fuel %f", view.Result.MinFuel)
	}
	return nil
}

func (jc *jobLifecycleContext) theCancelResultShouldBe(expected string) error {
	want := expected == "true"
	if jc.cancelResult != want {
		return fmt.Errorf("expected cancel result %v, got %v", want, jc.cancelResult)
	}
	return nil
}

func (jc *jobLifecycleContext) theCancelReasonShouldBe(reason string) error {
	view, err := jc.waitForStatus(job.StatusCancelled)
	if err != nil {
		return err
	}
	if view.CancelReason != reason {
		return fmt.Errorf("expected cancel reason %q, got %q", reason, view.CancelReason)
	}
	return nil
}

// InitializeJobLifecycleScenario registers the job lifecycle step definitions
func InitializeJobLifecycleScenario(ctx *godog.ScenarioContext) {
	jc := &jobLifecycleContext{}

	ctx.Before(func(c context.Context, scenario *godog.Scenario) (context.Context, error) {
		return c, jc.reset()
	})

	ctx.After(func(c context.Context, scenario *godog.Scenario, err error) (context.Context, error) {
		if jc.manager != nil {
			jc.manager.Shutdown("scenario teardown")
		}
		return c, nil
	})

	// Given steps
	ctx.Step(`^a solve request for a grid with (\d+) chests:$`, jc.aSolveRequestForAGridWithChests)
	ctx.Step(`^a long-running solve request$`, jc.aLongRunningSolveRequest)

	// When steps
	ctx.Step(`^I submit the solve job$`, jc.iSubmitTheSolveJob)
	ctx.Step(`^I cancel the job with reason "([^"]*)"$`, jc.iCancelTheJobWithReason)

	// Then steps
	ctx.Step(`^the submission should be accepted$`, jc.theSubmissionShouldBeAccepted)
	ctx.Step(`^the submission should fail with "([^"]*)"$`, jc.theSubmissionShouldFailWith)
	ctx.Step(`^the job should eventually be "([^"]*)"$`, jc.theJobShouldEventuallyBe)
	ctx.Step(`^the job result should have minimum fuel ([0-9.]+)$`, jc.theJobResultShouldHaveMinimumFuel)
	ctx.Step(`^the job should have no result$`, jc.theJobShouldHaveNoResult)
	ctx.Step(`^the cancel result should be (true|false)$`, jc.theCancelResultShouldBe)
	ctx.Step(`^the cancel reason should be "([^"]*)"$`, jc.theCancelReasonShouldBe)
}
