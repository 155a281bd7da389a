package jobs_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chesthunt-go/internal/adapters/persistence"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/shared"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
	"github.com/andrescamacho/chesthunt-go/test/helpers"
)

const pollInterval = 5 * time.Millisecond

// recordingMetrics captures recorder calls for assertions
type recordingMetrics struct {
	mu       sync.Mutex
	started  []string
	terminal []job.Status
}

func (r *recordingMetrics) RecordJobStarted(solverKind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, solverKind)
}

func (r *recordingMetrics) RecordJobTerminal(solverKind string, status job.Status, durationSeconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminal = append(r.terminal, status)
}

func (r *recordingMetrics) SetActiveJobs(count int) {}

func (r *recordingMetrics) terminalStatuses() []job.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]job.Status(nil), r.terminal...)
}

func newTestManager(t *testing.T, maxActive int) (*jobs.Manager, *recordingMetrics) {
	t.Helper()
	db := helpers.NewTestDB(t)
	recorder := &recordingMetrics{}
	manager := jobs.NewManager(
		persistence.NewJobRepository(db),
		persistence.NewJobLogRepository(db),
		recorder,
		solver.Options{Workers: 2},
		maxActive,
		nil,
	)
	return manager, recorder
}

func smallProblem() *grid.ProblemInstance {
	return grid.NewProblemInstance(3, 3, 3, [][]int{
		{3, 2, 2},
		{2, 2, 2},
		{2, 2, 1},
	})
}

// slowProblem is large enough that the exact DP runs for a while, leaving
// a window to observe IN_PROGRESS and deliver a cancel mid-flight
func slowProblem() *grid.ProblemInstance {
	const n, m, p = 200, 200, 4
	cells := make([][]int, n)
	for i := range cells {
		cells[i] = make([]int, m)
		for j := range cells[i] {
			cells[i][j] = (i*m+j)%p + 1
		}
	}
	return grid.NewProblemInstance(n, m, p, cells)
}

func waitForStatus(t *testing.T, manager *jobs.Manager, jobID string, want job.Status) *jobs.JobView {
	t.Helper()
	var view *jobs.JobView
	require.Eventually(t, func() bool {
		v, err := manager.GetStatus(context.Background(), jobID)
		if err != nil {
			return false
		}
		view = v
		return v.Status == want
	}, 10*time.Second, pollInterval, "job %s never reached %s", jobID, want)
	return view
}

func TestManager_StartSolveToCompletion(t *testing.T) {
	// Arrange
	manager, recorder := newTestManager(t, 0)
	defer manager.Shutdown("test teardown")

	// Act
	jobID, err := manager.StartSolve(context.Background(), smallProblem())

	// Assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(jobID, "solve-p3-"), "unexpected job id %s", jobID)

	view := waitForStatus(t, manager, jobID, job.StatusCompleted)
	require.NotNil(t, view.Result)
	assert.InDelta(t, 5.656854, view.Result.MinFuel, 1e-5)
	assert.Equal(t, solver.KindExactChainDP, view.Solver)
	assert.Len(t, view.Result.Path, 4)

	assert.Equal(t, []string{string(solver.KindExactChainDP)}, recorder.started)
	assert.Eventually(t, func() bool {
		statuses := recorder.terminalStatuses()
		return len(statuses) == 1 && statuses[0] == job.StatusCompleted
	}, time.Second, pollInterval)
}

func TestManager_ValidationErrorCreatesNoJob(t *testing.T) {
	manager, recorder := newTestManager(t, 0)
	defer manager.Shutdown("test teardown")

	invalid := grid.NewProblemInstance(2, 2, 3, [][]int{
		{1, 3},
		{0, 0},
	})

	jobID, err := manager.StartSolve(context.Background(), invalid)

	require.Error(t, err)
	assert.Empty(t, jobID)

	var missing *shared.MissingChestError
	assert.ErrorAs(t, err, &missing)

	views, err := manager.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Empty(t, recorder.started)
}

func TestManager_CancelInFlight(t *testing.T) {
	manager, _ := newTestManager(t, 0)
	defer manager.Shutdown("test teardown")

	jobID, err := manager.StartSolve(context.Background(), slowProblem())
	require.NoError(t, err)

	// Act: cancel while the solver is between layers
	cancelled := manager.Cancel(context.Background(), jobID, "operator request")
	require.True(t, cancelled)

	// Assert: terminal CANCELLED, and the raced result never landed
	view := waitForStatus(t, manager, jobID, job.StatusCancelled)
	assert.Nil(t, view.Result)
	assert.Equal(t, "operator request", view.CancelReason)
}

func TestManager_CancelIsIdempotent(t *testing.T) {
	manager, _ := newTestManager(t, 0)
	defer manager.Shutdown("test teardown")

	jobID, err := manager.StartSolve(context.Background(), slowProblem())
	require.NoError(t, err)

	require.True(t, manager.Cancel(context.Background(), jobID, "first"))
	assert.False(t, manager.Cancel(context.Background(), jobID, "second"))

	view := waitForStatus(t, manager, jobID, job.StatusCancelled)
	assert.Equal(t, "first", view.CancelReason)
}

func TestManager_CancelCompletedJobReturnsFalse(t *testing.T) {
	manager, _ := newTestManager(t, 0)
	defer manager.Shutdown("test teardown")

	jobID, err := manager.StartSolve(context.Background(), smallProblem())
	require.NoError(t, err)
	waitForStatus(t, manager, jobID, job.StatusCompleted)

	cancelled := manager.Cancel(context.Background(), jobID, "too late")

	assert.False(t, cancelled)
	view, err := manager.GetStatus(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusCompleted, view.Status)
	assert.NotNil(t, view.Result)
}

func TestManager_CancelUnknownJob(t *testing.T) {
	manager, _ := newTestManager(t, 0)

	assert.False(t, manager.Cancel(context.Background(), "solve-p1-00000000", "nope"))
}

func TestManager_GetStatusUnknownJob(t *testing.T) {
	manager, _ := newTestManager(t, 0)

	view, err := manager.GetStatus(context.Background(), "solve-p1-00000000")

	assert.Nil(t, view)
	var notFound *shared.JobNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "solve-p1-00000000", notFound.JobID)
}

func TestManager_MaxActiveJobs(t *testing.T) {
	manager, _ := newTestManager(t, 1)
	defer manager.Shutdown("test teardown")

	_, err := manager.StartSolve(context.Background(), slowProblem())
	require.NoError(t, err)

	_, err = manager.StartSolve(context.Background(), smallProblem())

	var tooMany *jobs.ErrTooManyActiveJobs
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 1, tooMany.Limit)
}

func TestManager_ListNewestFirst(t *testing.T) {
	manager, _ := newTestManager(t, 0)
	defer manager.Shutdown("test teardown")

	first, err := manager.StartSolve(context.Background(), smallProblem())
	require.NoError(t, err)
	waitForStatus(t, manager, first, job.StatusCompleted)

	second, err := manager.StartSolve(context.Background(), smallProblem())
	require.NoError(t, err)
	waitForStatus(t, manager, second, job.StatusCompleted)

	views, err := manager.List(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, views, 2)
	ids := []string{views[0].JobID, views[1].JobID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
}

func TestManager_LogsRecordProgress(t *testing.T) {
	manager, _ := newTestManager(t, 0)
	defer manager.Shutdown("test teardown")

	jobID, err := manager.StartSolve(context.Background(), smallProblem())
	require.NoError(t, err)
	waitForStatus(t, manager, jobID, job.StatusCompleted)

	require.Eventually(t, func() bool {
		logs, err := manager.Logs(context.Background(), jobID)
		if err != nil {
			return false
		}
		for _, entry := range logs {
			if strings.Contains(entry.Message, "solve completed") {
				return true
			}
		}
		return false
	}, time.Second, pollInterval)
}

func TestManager_LogsUnknownJob(t *testing.T) {
	manager, _ := newTestManager(t, 0)

	logs, err := manager.Logs(context.Background(), "solve-p1-00000000")

	assert.Nil(t, logs)
	var notFound *shared.JobNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestManager_ShutdownCancelsActiveJobs(t *testing.T) {
	manager, _ := newTestManager(t, 0)

	jobID, err := manager.StartSolve(context.Background(), slowProblem())
	require.NoError(t, err)

	manager.Shutdown("daemon shutdown")

	view, err := manager.GetStatus(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusCancelled, view.Status)
	assert.Equal(t, "daemon shutdown", view.CancelReason)
	assert.Zero(t, manager.ActiveCount())
}
