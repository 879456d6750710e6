package history_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	id := kernel.NewUUID()
	entry := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(95 * time.Minute)

	t.Run("should build a valid record", func(t *testing.T) {
		r, err := history.NewRecord(id, "OP-7", "Acme", "Printing", entry, exit)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.OrderID().IsEqual(id))
		assert.Equal(t, "OP-7", r.OrderNumber())
		assert.Equal(t, "Acme", r.Client())
		assert.Equal(t, 95*time.Minute, r.Duration())
		assert.InDelta(t, 5700.0, r.DurationSeconds(), 0.001)
	})

	t.Run("should accept zero length interval", func(t *testing.T) {
		r, err := history.NewRecord(id, "OP-7", "Acme", "Printing", entry, entry)

		require.NoError(t, err)
		assert.Zero(t, r.DurationSeconds())
	})

	t.Run("should reject exit before entry", func(t *testing.T) {
		_, err := history.NewRecord(id, "OP-7", "Acme", "Printing", exit, entry)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should collect every missing field", func(t *testing.T) {
		_, err := history.NewRecord(kernel.UUID{}, "", "", "", time.Time{}, time.Time{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "client")
		assert.Contains(t, err.Error(), "stage")
		assert.Contains(t, err.Error(), "interval timestamps")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var r history.Record

		assert.Equal(t, history.ErrRecordIsNotConstructed, r.Validate())
	})
}
