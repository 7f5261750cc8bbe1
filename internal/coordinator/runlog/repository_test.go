package runlog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_SaveAndGetLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.GetLatest(ctx, "ORD1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, &Entry{RunID: "ORD1", Status: StatusStarted}))
	require.NoError(t, repo.Save(ctx, &Entry{RunID: "ORD2", Status: StatusStarted}))
	require.NoError(t, repo.Save(ctx, &Entry{RunID: "ORD1", Status: StatusCompleted}))

	latest, err := repo.GetLatest(ctx, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, latest.Status)

	entries := repo.Entries("ORD1")
	require.Len(t, entries, 2)
	assert.Equal(t, StatusStarted, entries[0].Status)
	assert.Equal(t, StatusCompleted, entries[1].Status)
}

func TestMemoryRepository_EvictsOldestRuns(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(WithMaxRuns(3))

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("ORD%d", i)
		require.NoError(t, repo.Save(ctx, &Entry{RunID: id, Status: StatusStarted, Payload: "{}"}))
		require.NoError(t, repo.Save(ctx, &Entry{RunID: id, Status: StatusCompleted}))
	}

	assert.Equal(t, 3, repo.Len())
	_, err := repo.GetLatest(ctx, "ORD0")
	assert.ErrorIs(t, err, ErrNotFound)
	for _, id := range []string{"ORD7", "ORD8", "ORD9"} {
		assert.Len(t, repo.Entries(id), 2, id)
	}
}

func TestMemoryRepository_EntriesIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save(ctx, &Entry{RunID: "ORD1", Status: StatusStarted}))

	entries := repo.Entries("ORD1")
	entries[0].Status = StatusFailed

	latest, err := repo.GetLatest(ctx, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, StatusStarted, latest.Status)
}

func TestWithMaxRuns_NonPositiveKeepsDefault(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(WithMaxRuns(0))
	for i := 0; i < DefaultMemoryRuns+1; i++ {
		require.NoError(t, repo.Save(ctx, &Entry{RunID: fmt.Sprintf("R%d", i)}))
	}
	assert.Equal(t, DefaultMemoryRuns, repo.Len())
}
