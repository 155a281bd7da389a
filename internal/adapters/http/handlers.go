package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/chesthunt-go/internal/application/jobs"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs/commands"
	"github.com/andrescamacho/chesthunt-go/internal/application/jobs/queries"
	"github.com/andrescamacho/chesthunt-go/internal/domain/grid"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/internal/domain/shared"
	"github.com/andrescamacho/chesthunt-go/pkg/utils"
)

// handleSolve schedules a solve job; the response returns before the
// solver runs
func (s *Server) handleSolve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	problem := grid.NewProblemInstance(req.N, req.M, req.P, req.Grid)

	response, err := s.mediator.Send(c.Request.Context(), &commands.StartSolveCommand{Problem: problem})
	if err != nil {
		var validationErr *shared.ValidationError
		var missingChest *shared.MissingChestError
		var tooMany *jobs.ErrTooManyActiveJobs

		switch {
		case errors.As(err, &missingChest):
			c.JSON(http.StatusBadRequest, errorResponse{Error: missingChest.Error()})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Fields: validationErr.Fields})
		case errors.As(err, &tooMany):
			c.JSON(http.StatusTooManyRequests, errorResponse{Error: tooMany.Error()})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	result := response.(*commands.StartSolveResponse)
	c.JSON(http.StatusAccepted, solveResponse{JobID: result.JobID})
}

// handleGetJob answers status polls
func (s *Server) handleGetJob(c *gin.Context) {
	jobID := c.Param("id")

	response, err := s.mediator.Send(c.Request.Context(), &queries.GetJobStatusQuery{JobID: jobID})
	if err != nil {
		var notFound *shared.JobNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: notFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	view := response.(*jobs.JobView)
	c.JSON(http.StatusOK, jobResponseFromView(view))
}

// handleCancelJob triggers cooperative cancellation
func (s *Server) handleCancelJob(c *gin.Context) {
	jobID := c.Param("id")

	response, err := s.mediator.Send(c.Request.Context(), &commands.CancelJobCommand{JobID: jobID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	result := response.(*commands.CancelJobResponse)
	c.JSON(http.StatusOK, cancelResponse{Cancelled: result.Cancelled})
}

// handleListJobs returns the most recent jobs, newest first
func (s *Server) handleListJobs(c *gin.Context) {
	limit := utils.ParseIntOrDefault(c.Query("limit"), queries.DefaultListLimit)

	response, err := s.mediator.Send(c.Request.Context(), &queries.ListJobsQuery{Limit: limit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	views := response.([]*jobs.JobView)
	responses := make([]jobResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, jobResponseFromView(view))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": responses})
}

// handleGetJobLogs returns a job's persisted progress lines
func (s *Server) handleGetJobLogs(c *gin.Context) {
	jobID := c.Param("id")

	response, err := s.mediator.Send(c.Request.Context(), &queries.GetJobLogsQuery{JobID: jobID})
	if err != nil {
		var notFound *shared.JobNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: notFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	entries := response.([]*job.LogEntry)
	c.JSON(http.StatusOK, gin.H{"logs": jobLogResponses(entries)})
}

// handleHealth reports daemon liveness and load
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:     "ok",
		Version:    Version,
		ActiveJobs: s.manager.ActiveCount(),
	})
}
