package job_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/shared"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
)

var jobTestStart = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func newTestJob(clock shared.Clock) *job.SolveJob {
	problem := grid.NewProblemInstance(2, 2, 1, [][]int{
		{0, 0},
		{0, 1},
	})
	return job.NewSolveJob("solve-p1-deadbeef", problem, solver.KindExactChainDP, clock)
}

func testResult() *solver.Result {
	return &solver.Result{
		MinFuel: 1.0,
		Path: []solver.PathStep{
			{ChestNumber: 0, Position: grid.Origin},
			{ChestNumber: 1, Position: grid.Position{Row: 1, Col: 1}, FuelUsed: 1, CumulativeFuel: 1},
		},
		Solver: solver.KindExactChainDP,
	}
}

func TestSolveJob_NewIsPending(t *testing.T) {
	j := newTestJob(shared.NewMockClock(jobTestStart))

	assert.Equal(t, job.StatusPending, j.Status())
	assert.Equal(t, "solve-p1-deadbeef", j.ID())
	assert.Equal(t, solver.KindExactChainDP, j.SolverKind())
	assert.Nil(t, j.Result())
	assert.False(t, j.IsFinished())
}

func TestSolveJob_CompleteStoresResult(t *testing.T) {
	clock := shared.NewMockClock(jobTestStart)
	j := newTestJob(clock)
	require.NoError(t, j.Start())

	clock.Advance(time.Second)
	require.NoError(t, j.Complete(testResult()))

	assert.Equal(t, job.StatusCompleted, j.Status())
	require.NotNil(t, j.Result())
	assert.Equal(t, 1.0, j.Result().MinFuel)
	assert.Equal(t, time.Second, j.RuntimeDuration())
}

func TestSolveJob_FailRecordsError(t *testing.T) {
	j := newTestJob(shared.NewMockClock(jobTestStart))
	require.NoError(t, j.Start())

	cause := errors.New("chest 1 has no candidate position in the grid")
	require.NoError(t, j.Fail(cause))

	assert.Equal(t, job.StatusFailed, j.Status())
	assert.Equal(t, cause, j.LastError())
	assert.Nil(t, j.Result())
}

func TestSolveJob_CancelRecordsReason(t *testing.T) {
	j := newTestJob(shared.NewMockClock(jobTestStart))
	require.NoError(t, j.Start())

	require.NoError(t, j.Cancel("cancelled by request"))

	assert.Equal(t, job.StatusCancelled, j.Status())
	assert.Equal(t, "cancelled by request", j.CancelReason())
}

func TestSolveJob_CancelBeforeStart(t *testing.T) {
	j := newTestJob(shared.NewMockClock(jobTestStart))

	require.NoError(t, j.Cancel("shutdown"))

	assert.Equal(t, job.StatusCancelled, j.Status())
	assert.Error(t, j.Start())
}

func TestSolveJob_ResultNeverStoredAfterCancel(t *testing.T) {
	// The raced solver finishing after a cancel request must not be able
	// to attach its result
	j := newTestJob(shared.NewMockClock(jobTestStart))
	require.NoError(t, j.Start())
	require.NoError(t, j.Cancel("cancelled by request"))

	err := j.Complete(testResult())

	require.Error(t, err)
	var invalid *shared.InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, job.StatusCancelled, j.Status())
	assert.Nil(t, j.Result())
}

func TestSolveJob_CancelAfterCompleteFails(t *testing.T) {
	j := newTestJob(shared.NewMockClock(jobTestStart))
	require.NoError(t, j.Start())
	require.NoError(t, j.Complete(testResult()))

	assert.Error(t, j.Cancel("too late"))
	assert.Equal(t, job.StatusCompleted, j.Status())
	assert.NotNil(t, j.Result())
}
