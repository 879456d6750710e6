package services_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressionEngine_Advance(t *testing.T) {
	catalog, err := stage.NewCatalog("Queued", "Printing", "Shipped")
	require.NoError(t, err)

	engine := services.NewProgressionEngine(services.NewAccessPolicy())
	coordinator := mustPrincipal(t)(principal.NewCoordinator("ana"))
	printer := mustPrincipal(t)(principal.NewOperator("olga", "Printing"))

	t0 := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(45 * time.Minute)
	t2 := t1.Add(2 * time.Hour)

	t.Run("Acme order moves through the gated stages", func(t *testing.T) {
		o, err := order.NewWorkOrder(kernel.NewUUID(), "O1", "Acme", []stage.Stage{"Queued", "Printing", "Shipped"}, catalog, t0)
		require.NoError(t, err)

		_, err = engine.Advance(printer, o, t1)
		require.ErrorIs(t, err, services.ErrUnauthorized)
		assert.Equal(t, stage.Stage("Queued"), o.CurrentStage())
		assert.Equal(t, 1, o.Version())

		tr, err := engine.Advance(coordinator, o, t1)
		require.NoError(t, err)
		assert.Equal(t, stage.Stage("Printing"), tr.Entered)
		assert.Equal(t, stage.Stage("Queued"), tr.Record.Stage())
		assert.Equal(t, t0, tr.Record.EntryTime())
		assert.Equal(t, t1, tr.Record.ExitTime())

		tr, err = engine.Advance(printer, o, t2)
		require.NoError(t, err)
		assert.Equal(t, stage.Stage("Shipped"), tr.Entered)
		assert.Equal(t, stage.Stage("Printing"), tr.Record.Stage())
		assert.Equal(t, t1, tr.Record.EntryTime())
		assert.Equal(t, t2, tr.Record.ExitTime())

		shipped, _ := o.Interval("Shipped")
		entry, _ := shipped.Entry()
		assert.Equal(t, t2, entry)
		assert.True(t, shipped.IsOpen())
	})

	t.Run("completed order is rejected before the policy", func(t *testing.T) {
		o, err := order.NewWorkOrder(kernel.NewUUID(), "O2", "Acme", []stage.Stage{"Printing"}, catalog, t0)
		require.NoError(t, err)
		_, err = engine.Advance(printer, o, t1)
		require.NoError(t, err)

		for _, p := range []principal.Principal{coordinator, printer} {
			_, err = engine.Advance(p, o, t2)
			require.ErrorIs(t, err, order.ErrAlreadyCompleted)
		}
		assert.Equal(t, 2, o.Version())
	})

	t.Run("unconstructed order", func(t *testing.T) {
		_, err := engine.Advance(coordinator, &order.WorkOrder{}, t1)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
