package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jcmexdev/order-taking/internal/coordinator/runlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_SaveAndGetLatest(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.Save(ctx, runlog.NewEntry(ctx, "ORD1", runlog.StatusStarted, "", `{"orderId":"ORD1"}`, nil)))
	require.NoError(t, repo.Save(ctx, runlog.NewEntry(ctx, "ORD1", runlog.StatusStageDone, "validate_order", "", nil)))
	require.NoError(t, repo.Save(ctx, runlog.NewEntry(ctx, "ORD1", runlog.StatusFailed, "price_order", "", []string{"too expensive"})))
	require.NoError(t, repo.Save(ctx, runlog.NewEntry(ctx, "ORD2", runlog.StatusStarted, "", "", nil)))

	latest, err := repo.GetLatest(ctx, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, "ORD1", latest.RunID)
	assert.Equal(t, runlog.StatusFailed, latest.Status)
	assert.Equal(t, "price_order", latest.Stage)
	assert.Empty(t, latest.Payload)
	assert.JSONEq(t, `["too expensive"]`, latest.ErrorMessages)
	assert.False(t, latest.UpdatedAt.IsZero())
}

func TestRepository_GetLatestUnknownRun(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetLatest(context.Background(), "missing")
	assert.ErrorIs(t, err, runlog.ErrNotFound)
}
