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

func pendingRecord(id string, createdAt time.Time) *job.Record {
	return &job.Record{
		ID:        id,
		N:         3,
		M:         3,
		P:         3,
		GridJSON:  "[[3,2,2],[2,2,2],[2,2,1]]",
		Solver:    "EXACT_CHAIN_DP",
		Status:    job.StatusPending,
		CreatedAt: createdAt,
	}
}

func TestJobRepository_AddAndGet(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewJobRepository(db)
	record := pendingRecord("solve-p3-aaaa0001", time.Now().UTC())

	// Act
	err := repo.Add(context.Background(), record)

	// Assert
	require.NoError(t, err)

	found, err := repo.Get(context.Background(), "solve-p3-aaaa0001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, record.ID, found.ID)
	assert.Equal(t, record.N, found.N)
	assert.Equal(t, record.M, found.M)
	assert.Equal(t, record.P, found.P)
	assert.Equal(t, record.GridJSON, found.GridJSON)
	assert.Equal(t, job.StatusPending, found.Status)
	assert.Nil(t, found.MinFuel)
}

func TestJobRepository_GetUnknownReturnsNil(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewJobRepository(db)

	found, err := repo.Get(context.Background(), "solve-p3-missing0")

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestJobRepository_UpdateStatusToCompleted(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewJobRepository(db)

	created := time.Now().UTC()
	record := pendingRecord("solve-p3-aaaa0002", created)
	require.NoError(t, repo.Add(context.Background(), record))

	started := created.Add(time.Second)
	completed := created.Add(3 * time.Second)
	minFuel := 5.656854
	record.Status = job.StatusCompleted
	record.MinFuel = &minFuel
	record.PathJSON = `[{"chest_number":0,"position":{"row":0,"col":0},"fuel_used":0,"cumulative_fuel":0}]`
	record.StartedAt = &started
	record.CompletedAt = &completed

	err := repo.UpdateStatus(context.Background(), record)

	require.NoError(t, err)

	found, err := repo.Get(context.Background(), "solve-p3-aaaa0002")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, job.StatusCompleted, found.Status)
	require.NotNil(t, found.MinFuel)
	assert.InDelta(t, minFuel, *found.MinFuel, 1e-9)
	assert.Equal(t, record.PathJSON, found.PathJSON)
	require.NotNil(t, found.StartedAt)
	require.NotNil(t, found.CompletedAt)
}

func TestJobRepository_UpdateStatusToCancelled(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewJobRepository(db)

	record := pendingRecord("solve-p3-aaaa0003", time.Now().UTC())
	require.NoError(t, repo.Add(context.Background(), record))

	record.Status = job.StatusCancelled
	record.CancelReason = "operator request"

	require.NoError(t, repo.UpdateStatus(context.Background(), record))

	found, err := repo.Get(context.Background(), "solve-p3-aaaa0003")
	require.NoError(t, err)
	assert.Equal(t, job.StatusCancelled, found.Status)
	assert.Equal(t, "operator request", found.CancelReason)
	assert.Nil(t, found.MinFuel)
}

func TestJobRepository_ListNewestFirst(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewJobRepository(db)

	base := time.Now().UTC()
	require.NoError(t, repo.Add(context.Background(), pendingRecord("solve-p3-aaaa0004", base)))
	require.NoError(t, repo.Add(context.Background(), pendingRecord("solve-p3-aaaa0005", base.Add(time.Minute))))
	require.NoError(t, repo.Add(context.Background(), pendingRecord("solve-p3-aaaa0006", base.Add(2*time.Minute))))

	records, err := repo.List(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "solve-p3-aaaa0006", records[0].ID)
	assert.Equal(t, "solve-p3-aaaa0005", records[1].ID)
}
