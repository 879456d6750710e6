package historyrepo_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"production/internal/adapters/out/gormstore"
	"production/internal/adapters/out/gormstore/historyrepo"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) *historyrepo.GormHistoryRepository {
	t.Helper()

	db, err := gormstore.Open(gormstore.Config{
		Driver:     gormstore.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "history.db"),
	})
	require.NoError(t, err)
	require.NoError(t, gormstore.Migrate(db))

	return historyrepo.NewGormHistoryRepository(db)
}

func TestGormHistoryRepository_AppendAndAll(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	id := kernel.NewUUID()
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	first, err := history.NewRecord(id, "OP-1", "Acme", "Queued", start, start.Add(30*time.Minute))
	require.NoError(t, err)
	second, err := history.NewRecord(id, "OP-1", "Acme", "Printing", start.Add(30*time.Minute), start.Add(90*time.Minute))
	require.NoError(t, err)

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	records, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, id.IsEqual(records[0].OrderID()))
	assert.Equal(t, "OP-1", records[0].OrderNumber())
	assert.Equal(t, "Acme", records[0].Client())
	assert.Equal(t, "Queued", records[0].Stage().String())
	assert.Equal(t, 30*time.Minute, records[0].Duration())

	assert.Equal(t, "Printing", records[1].Stage().String())
	assert.True(t, start.Add(90*time.Minute).Equal(records[1].ExitTime()))
	assert.InDelta(t, 3600.0, records[1].DurationSeconds(), 0.001)
}

func TestGormHistoryRepository_EmptyLog(t *testing.T) {
	records, err := newRepository(t).All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGormHistoryRepository_RejectsZeroRecord(t *testing.T) {
	err := newRepository(t).Append(context.Background(), history.Record{})
	require.ErrorIs(t, err, history.ErrRecordIsNotConstructed)
}
