package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chesthunt-go/internal/adapters/persistence"
	"github.com/andrescamacho/chesthunt-go/internal/domain/job"
	"github.com/andrescamacho/chesthunt-go/test/helpers"
)

func TestJobLogRepository_AppendAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	jobRepo := persistence.NewJobRepository(db)
	logRepo := persistence.NewJobLogRepository(db)

	require.NoError(t, jobRepo.Add(context.Background(),
		pendingRecord("solve-p3-bbbb0001", time.Now().UTC())))

	now := time.Now().UTC()
	entries := []*job.LogEntry{
		{JobID: "solve-p3-bbbb0001", Timestamp: now, Level: "INFO", Message: "job started with solver EXACT_CHAIN_DP"},
		{JobID: "solve-p3-bbbb0001", Timestamp: now.Add(time.Millisecond), Level: "INFO", Message: "indexed 3 chest groups (largest 7 candidates)"},
		{JobID: "solve-p3-bbbb0001", Timestamp: now.Add(2 * time.Millisecond), Level: "INFO", Message: "solve completed: min fuel 5.656854 over 4 steps"},
	}

	// Act
	for _, entry := range entries {
		require.NoError(t, logRepo.Append(context.Background(), entry))
	}

	// Assert: insertion order preserved
	found, err := logRepo.FindByJob(context.Background(), "solve-p3-bbbb0001")
	require.NoError(t, err)
	require.Len(t, found, 3)
	for i, entry := range found {
		assert.Equal(t, entries[i].Level, entry.Level)
		assert.Equal(t, entries[i].Message, entry.Message)
	}
}

func TestJobLogRepository_FindUnknownJobIsEmpty(t *testing.T) {
	db := helpers.NewTestDB(t)
	logRepo := persistence.NewJobLogRepository(db)

	found, err := logRepo.FindByJob(context.Background(), "solve-p3-missing0")

	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestJobLogRepository_IsolatesJobs(t *testing.T) {
	db := helpers.NewTestDB(t)
	jobRepo := persistence.NewJobRepository(db)
	logRepo := persistence.NewJobLogRepository(db)

	require.NoError(t, jobRepo.Add(context.Background(),
		pendingRecord("solve-p3-bbbb0002", time.Now().UTC())))
	require.NoError(t, jobRepo.Add(context.Background(),
		pendingRecord("solve-p3-bbbb0003", time.Now().UTC())))

	require.NoError(t, logRepo.Append(context.Background(), &job.LogEntry{
		JobID: "solve-p3-bbbb0002", Timestamp: time.Now().UTC(), Level: "INFO", Message: "first job",
	}))
	require.NoError(t, logRepo.Append(context.Background(), &job.LogEntry{
		JobID: "solve-p3-bbbb0003", Timestamp: time.Now().UTC(), Level: "ERROR", Message: "second job",
	}))

	found, err := logRepo.FindByJob(context.Background(), "solve-p3-bbbb0003")

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "second job", found[0].Message)
}
