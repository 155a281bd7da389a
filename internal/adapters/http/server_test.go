package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/andrescamacho/chesthunt-go/internal/adapters/http"
	"github.com/andrescamacho/chesthunt-go/internal/adapters/persistence"
	"github.com/andrescamacho/chesthunt-go/internal/application/common"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs/commands"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs/queries"
	"github.com/andrescamacho/chesthunt-go/internal/domain/solver"
	"github.com/andrescamacho/chesthunt-go/test/helpers"
)

type testServer struct {
	server  *httpAdapter.Server
	manager *jobs.Manager
}

func newTestServer(t *testing.T, opts httpAdapter.Options) *testServer {
	t.Helper()

	db := helpers.NewTestDB(t)
	manager := jobs.NewManager(
		persistence.NewJobRepository(db),
		persistence.NewJobLogRepository(db),
		nil,
		solver.Options{Workers: 2},
		0,
		nil,
	)
	t.Cleanup(func() { manager.Shutdown("test teardown") })

	med := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*commands.StartSolveCommand](med, commands.NewStartSolveHandler(manager)))
	require.NoError(t, common.RegisterHandler[*commands.CancelJobCommand](med, commands.NewCancelJobHandler(manager)))
	require.NoError(t, common.RegisterHandler[*queries.GetJobStatusQuery](med, queries.NewGetJobStatusHandler(manager)))
	require.NoError(t, common.RegisterHandler[*queries.ListJobsQuery](med, queries.NewListJobsHandler(manager)))
	require.NoError(t, common.RegisterHandler[*queries.GetJobLogsQuery](med, queries.NewGetJobLogsHandler(manager)))

	return &testServer{
		server:  httpAdapter.NewServer(med, manager, opts),
		manager: manager,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	ts.server.Engine().ServeHTTP(recorder, req)
	return recorder
}

func solveBody() map[string]any {
	return map[string]any{
		"n": 3, "m": 3, "p": 3,
		"grid": [][]int{
			{3, 2, 2},
			{2, 2, 2},
			{2, 2, 1},
		},
	}
}

func (ts *testServer) submitAndWait(t *testing.T, body map[string]any) string {
	t.Helper()

	recorder := ts.do(t, http.MethodPost, "/api/solve", body)
	require.Equal(t, http.StatusAccepted, recorder.Code, recorder.Body.String())

	var accepted struct {
		JobID string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.JobID)

	require.Eventually(t, func() bool {
		poll := ts.do(t, http.MethodGet, "/api/jobs/"+accepted.JobID, nil)
		if poll.Code != http.StatusOK {
			return false
		}
		var job struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(poll.Body.Bytes(), &job); err != nil {
			return false
		}
		return job.Status == "COMPLETED"
	}, 10*time.Second, 5*time.Millisecond)

	return accepted.JobID
}

func TestSolveEndpoint_AcceptsAndCompletes(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	jobID := ts.submitAndWait(t, solveBody())

	recorder := ts.do(t, http.MethodGet, "/api/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		JobID   string   `json:"job_id"`
		Status  string   `json:"status"`
		Solver  string   `json:"solver"`
		MinFuel *float64 `json:"min_fuel"`
		Path    []struct {
			ChestNumber int `json:"chest_number"`
		} `json:"path"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, jobID, resp.JobID)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "EXACT_CHAIN_DP", resp.Solver)
	require.NotNil(t, resp.MinFuel)
	assert.InDelta(t, 5.656854, *resp.MinFuel, 1e-5)
	require.Len(t, resp.Path, 4)
	assert.Equal(t, 0, resp.Path[0].ChestNumber)
}

func TestSolveEndpoint_RejectsMalformedBody(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	ts.server.Engine().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSolveEndpoint_RejectsMissingChest(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	body := map[string]any{
		"n": 2, "m": 2, "p": 3,
		"grid": [][]int{
			{1, 3},
			{0, 0},
		},
	}

	recorder := ts.do(t, http.MethodPost, "/api/solve", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "chest 2 has no candidate position")
}

func TestSolveEndpoint_RejectsOutOfRangeValue(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	body := map[string]any{
		"n": 2, "m": 2, "p": 2,
		"grid": [][]int{
			{1, 2},
			{0, 9},
		},
	}

	recorder := ts.do(t, http.MethodPost, "/api/solve", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cell (1,1)")
}

func TestGetJobEndpoint_UnknownJob(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	recorder := ts.do(t, http.MethodGet, "/api/jobs/solve-p1-00000000", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCancelEndpoint_CompletedJob(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})
	jobID := ts.submitAndWait(t, solveBody())

	recorder := ts.do(t, http.MethodPost, "/api/jobs/"+jobID+"/cancel", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp struct {
		Cancelled bool `json:"cancelled"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Cancelled)
}

func TestCancelEndpoint_UnknownJob(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	recorder := ts.do(t, http.MethodPost, "/api/jobs/solve-p1-00000000/cancel", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp struct {
		Cancelled bool `json:"cancelled"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Cancelled)
}

func TestListJobsEndpoint(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})
	ts.submitAndWait(t, solveBody())
	ts.submitAndWait(t, solveBody())

	recorder := ts.do(t, http.MethodGet, "/api/jobs?limit=10", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp struct {
		Jobs []struct {
			JobID  string `json:"job_id"`
			Status string `json:"status"`
		} `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Jobs, 2)
}

func TestJobLogsEndpoint(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})
	jobID := ts.submitAndWait(t, solveBody())

	require.Eventually(t, func() bool {
		recorder := ts.do(t, http.MethodGet, "/api/jobs/"+jobID+"/logs", nil)
		if recorder.Code != http.StatusOK {
			return false
		}
		return strings.Contains(recorder.Body.String(), "solve completed")
	}, time.Second, 5*time.Millisecond)
}

func TestJobLogsEndpoint_UnknownJob(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	recorder := ts.do(t, http.MethodGet, "/api/jobs/solve-p1-00000000/logs", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, httpAdapter.Options{})

	recorder := ts.do(t, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp struct {
		Status     string `json:"status"`
		Version    string `json:"version"`
		ActiveJobs int    `json:"active_jobs"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, httpAdapter.Version, resp.Version)
}

func TestSubmitRateLimit(t *testing.T) {
	// A burst of 1 with a negligible refill rate rejects the second
	// submission immediately
	ts := newTestServer(t, httpAdapter.Options{
		SubmitRatePerSecond: 0.001,
		SubmitBurst:         1,
	})

	first := ts.do(t, http.MethodPost, "/api/solve", solveBody())
	second := ts.do(t, http.MethodPost, "/api/solve", solveBody())

	assert.Equal(t, http.StatusAccepted, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
