package order_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC)

func testCatalog(t *testing.T) stage.Catalog {
	t.Helper()
	c, err := stage.NewCatalog("Queued", "Printing", "Die-cutting", "Shipped")
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, plan ...stage.Stage) *order.WorkOrder {
	t.Helper()
	o, err := order.NewWorkOrder(kernel.NewUUID(), "OP-1", "Acme", plan, testCatalog(t), t0)
	require.NoError(t, err)
	return o
}

// openIntervals counts stages entered but not exited.
func openIntervals(o *order.WorkOrder) int {
	n := 0
	for _, si := range o.Intervals() {
		if si.Interval.IsOpen() {
			n++
		}
	}
	return n
}

func TestNewWorkOrder(t *testing.T) {
	catalog := testCatalog(t)
	id := kernel.NewUUID()

	t.Run("should start on the first planned stage", func(t *testing.T) {
		o, err := order.NewWorkOrder(id, " OP-1 ", " Acme ", []stage.Stage{"Queued", "Shipped"}, catalog, t0)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "OP-1", o.Number())
		assert.Equal(t, "Acme", o.Client())
		assert.Equal(t, 0, o.CurrentIndex())
		assert.Equal(t, stage.Stage("Queued"), o.CurrentStage())
		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, 1, o.Version())
		assert.Equal(t, t0, o.CreatedAt())

		first, ok := o.Interval("Queued")
		require.True(t, ok)
		entry, set := first.Entry()
		assert.True(t, set)
		assert.Equal(t, t0, entry)
		assert.True(t, first.IsOpen())

		last, ok := o.Interval("Shipped")
		require.True(t, ok)
		assert.True(t, last.IsPending())

		_, ok = o.Interval("Printing")
		assert.False(t, ok)
	})

	t.Run("should reject empty plan", func(t *testing.T) {
		o, err := order.NewWorkOrder(id, "OP-1", "Acme", nil, catalog, t0)

		require.ErrorIs(t, err, stage.ErrInvalidPlan)
		assert.Nil(t, o)
	})

	t.Run("should reject plan out of catalog order", func(t *testing.T) {
		_, err := order.NewWorkOrder(id, "OP-1", "Acme", []stage.Stage{"Shipped", "Printing"}, catalog, t0)

		require.ErrorIs(t, err, stage.ErrInvalidPlan)
	})

	t.Run("should reject plan with unknown stage", func(t *testing.T) {
		_, err := order.NewWorkOrder(id, "OP-1", "Acme", []stage.Stage{"Queued", "Laminating"}, catalog, t0)

		require.ErrorIs(t, err, stage.ErrUnknownStage)
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := order.NewWorkOrder(kernel.UUID{}, "", "", nil, catalog, time.Time{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, stage.ErrInvalidPlan)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "number")
		assert.Contains(t, err.Error(), "client")
		assert.Contains(t, err.Error(), "creation time")
	})

	t.Run("should reject unconstructed catalog", func(t *testing.T) {
		_, err := order.NewWorkOrder(id, "OP-1", "Acme", []stage.Stage{"Queued"}, stage.Catalog{}, t0)

		require.ErrorIs(t, err, stage.ErrCatalogIsNotConstructed)
	})

	t.Run("should not alias the caller's plan", func(t *testing.T) {
		plan := []stage.Stage{"Queued", "Shipped"}
		o, err := order.NewWorkOrder(id, "OP-1", "Acme", plan, catalog, t0)
		require.NoError(t, err)

		plan[0] = "Printing"

		assert.Equal(t, stage.Stage("Queued"), o.CurrentStage())
	})
}

func TestWorkOrder_Validate(t *testing.T) {
	var nilOrder *order.WorkOrder
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	zero := &order.WorkOrder{}
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestWorkOrder_Advance(t *testing.T) {
	t.Run("should close current stage and open the next at the same instant", func(t *testing.T) {
		o := newOrder(t, "Queued", "Printing", "Shipped")
		t1 := t0.Add(30 * time.Minute)

		tr, err := o.Advance(t1)

		require.NoError(t, err)
		assert.Equal(t, stage.Stage("Queued"), tr.Left)
		assert.Equal(t, stage.Stage("Printing"), tr.Entered)
		assert.False(t, tr.Completed)
		assert.Equal(t, stage.Stage("Printing"), o.CurrentStage())
		assert.Equal(t, 2, o.Version())

		queued, _ := o.Interval("Queued")
		assert.Equal(t, order.NewInterval(t0, t1), queued)
		printing, _ := o.Interval("Printing")
		assert.Equal(t, order.NewInterval(t1, time.Time{}), printing)

		assert.Equal(t, stage.Stage("Queued"), tr.Record.Stage())
		assert.Equal(t, t0, tr.Record.EntryTime())
		assert.Equal(t, t1, tr.Record.ExitTime())
		assert.InDelta(t, 1800.0, tr.Record.DurationSeconds(), 0.001)
		assert.Equal(t, "OP-1", tr.Record.OrderNumber())
	})

	t.Run("should complete after the last stage", func(t *testing.T) {
		o := newOrder(t, "Printing")
		t1 := t0.Add(time.Hour)

		tr, err := o.Advance(t1)

		require.NoError(t, err)
		assert.True(t, tr.Completed)
		assert.Empty(t, tr.Entered)
		assert.True(t, o.IsCompleted())
		assert.Equal(t, 0, o.CurrentIndex())
		iv, _ := o.Interval("Printing")
		assert.True(t, iv.IsClosed())
		assert.Equal(t, time.Hour, iv.Duration())
		_, open := o.OpenStage()
		assert.False(t, open)
	})

	t.Run("should reject completed orders repeatedly without change", func(t *testing.T) {
		o := newOrder(t, "Queued", "Shipped")
		_, err := o.Advance(t0.Add(time.Minute))
		require.NoError(t, err)
		_, err = o.Advance(t0.Add(2 * time.Minute))
		require.NoError(t, err)
		snapshot := o.Clone()

		for range 2 {
			_, err = o.Advance(t0.Add(time.Hour))
			require.ErrorIs(t, err, order.ErrAlreadyCompleted)
			assert.Equal(t, snapshot, o)
		}
	})

	t.Run("should reject a time before the open stage's entry", func(t *testing.T) {
		o := newOrder(t, "Queued", "Shipped")
		before := o.Clone()

		_, err := o.Advance(t0.Add(-time.Second))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, before, o)
	})

	t.Run("should keep exactly one open interval until completed", func(t *testing.T) {
		o := newOrder(t, "Queued", "Printing", "Die-cutting", "Shipped")
		now := t0

		for !o.IsCompleted() {
			assert.Equal(t, 1, openIntervals(o))
			now = now.Add(10 * time.Minute)
			_, err := o.Advance(now)
			require.NoError(t, err)
		}

		assert.Equal(t, 0, openIntervals(o))
	})

	t.Run("round trip durations sum to the wall clock span", func(t *testing.T) {
		o := newOrder(t, "Queued", "Printing", "Shipped")
		steps := []time.Duration{17 * time.Minute, 2*time.Hour + 3*time.Second, 41 * time.Minute}

		var total float64
		now := t0
		for _, d := range steps {
			now = now.Add(d)
			tr, err := o.Advance(now)
			require.NoError(t, err)
			total += tr.Record.DurationSeconds()
		}

		assert.True(t, o.IsCompleted())
		assert.InDelta(t, now.Sub(t0).Seconds(), total, 0.001)
	})
}

func TestWorkOrder_AccessorsReturnCopies(t *testing.T) {
	o := newOrder(t, "Queued", "Shipped")

	plan := o.Plan()
	plan[0] = "Shipped"
	intervals := o.Intervals()
	intervals[0].Interval = order.NewInterval(time.Time{}, time.Time{})

	assert.Equal(t, stage.Stage("Queued"), o.CurrentStage())
	assert.Equal(t, 1, openIntervals(o))
}

func TestWorkOrder_Clone(t *testing.T) {
	o := newOrder(t, "Queued", "Shipped")
	snapshot := o.Clone()

	_, err := o.Advance(t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, stage.Stage("Queued"), snapshot.CurrentStage())
	assert.Equal(t, 1, snapshot.Version())
	iv, _ := snapshot.Interval("Queued")
	assert.True(t, iv.IsOpen())
}

func TestRestoreWorkOrder(t *testing.T) {
	id := kernel.NewUUID()
	t1 := t0.Add(time.Hour)
	plan := []stage.Stage{"Queued", "Printing"}

	t.Run("should restore an in-progress order", func(t *testing.T) {
		o, err := order.RestoreWorkOrder(id, "OP-1", "Acme", plan, 1, []order.Interval{
			order.NewInterval(t0, t1),
			order.NewInterval(t1, time.Time{}),
		}, order.InProgress, t0, 2)

		require.NoError(t, err)
		assert.Equal(t, stage.Stage("Printing"), o.CurrentStage())
		assert.Equal(t, 2, o.Version())
	})

	t.Run("should restore a completed order", func(t *testing.T) {
		o, err := order.RestoreWorkOrder(id, "OP-1", "Acme", plan, 1, []order.Interval{
			order.NewInterval(t0, t1),
			order.NewInterval(t1, t1.Add(time.Minute)),
		}, order.Completed, t0, 3)

		require.NoError(t, err)
		assert.True(t, o.IsCompleted())
	})

	corrupt := []struct {
		name      string
		index     int
		intervals []order.Interval
		status    order.Status
	}{
		{
			name:      "two open intervals",
			index:     1,
			intervals: []order.Interval{order.NewInterval(t0, time.Time{}), order.NewInterval(t1, time.Time{})},
			status:    order.InProgress,
		},
		{
			name:      "index out of range",
			index:     2,
			intervals: []order.Interval{order.NewInterval(t0, t1), order.NewInterval(t1, time.Time{})},
			status:    order.InProgress,
		},
		{
			name:      "future stage entered",
			index:     0,
			intervals: []order.Interval{order.NewInterval(t0, time.Time{}), order.NewInterval(t1, time.Time{})},
			status:    order.InProgress,
		},
		{
			name:      "completed with open last stage",
			index:     1,
			intervals: []order.Interval{order.NewInterval(t0, t1), order.NewInterval(t1, time.Time{})},
			status:    order.Completed,
		},
		{
			name:      "exit before entry",
			index:     1,
			intervals: []order.Interval{order.NewInterval(t1, t0), order.NewInterval(t1, time.Time{})},
			status:    order.InProgress,
		},
		{
			name:      "interval count mismatch",
			index:     0,
			intervals: []order.Interval{order.NewInterval(t0, time.Time{})},
			status:    order.InProgress,
		},
	}

	for _, tt := range corrupt {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			_, err := order.RestoreWorkOrder(id, "OP-1", "Acme", plan, tt.index, tt.intervals, tt.status, t0, 1)

			require.ErrorIs(t, err, order.ErrCorruptedOrder)
		})
	}

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreWorkOrder(id, "OP-1", "Acme", plan, 0, []order.Interval{
			order.NewInterval(t0, time.Time{}), {},
		}, order.Unknown, t0, 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestInterval(t *testing.T) {
	pending := order.NewInterval(time.Time{}, time.Time{})
	open := order.NewInterval(t0, time.Time{})
	closed := order.NewInterval(t0, t0.Add(time.Minute))

	assert.True(t, pending.IsPending())
	assert.True(t, open.IsOpen())
	assert.True(t, closed.IsClosed())
	assert.Zero(t, open.Duration())
	assert.Equal(t, time.Minute, closed.Duration())

	_, set := pending.Exit()
	assert.False(t, set)
}
