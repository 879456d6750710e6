package queries

import (
	"context"
	"database/sql"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBoardQueryHandler reads the board straight from the order tables.
//
// Example:
//
//	handler := NewGetBoardQueryHandler(db, catalog, services.NewAccessPolicy())
//	query, _ := NewGetBoardQuery(viewer)
//
//	columns, err := handler.Handle(ctx, query)
//	for _, col := range columns {
//	    fmt.Printf("%s: %d orders\n", col.Stage, len(col.Orders))
//	}
type GetBoardQueryHandler struct {
	db      *gorm.DB
	catalog stage.Catalog
	policy  services.AccessPolicy
}

func NewGetBoardQueryHandler(db *gorm.DB, catalog stage.Catalog, policy services.AccessPolicy) GetBoardQueryHandler {
	return GetBoardQueryHandler{db: db, catalog: catalog, policy: policy}
}

// Handle returns every visible catalog stage, including empty ones, in
// catalog order.
func (h GetBoardQueryHandler) Handle(ctx context.Context, query GetBoardQuery) ([]BoardColumn, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	columns := make([]BoardColumn, 0, h.catalog.Len())
	index := make(map[stage.Stage]int, h.catalog.Len())
	for _, s := range h.catalog.Stages() {
		if !h.policy.CanSeeStage(query.Viewer(), s) {
			continue
		}
		index[s] = len(columns)
		columns = append(columns, BoardColumn{Stage: s, Orders: make([]BoardCard, 0)})
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.client,
			o.current_stage,
			s.entered_at
		FROM work_orders o
		JOIN work_order_stages s
			ON s.order_id = o.id AND s.position = o.current_index
		WHERE o.status = ?
		ORDER BY o.seq
	`, int(order.InProgress)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			card      BoardCard
			current   string
			enteredAt sql.NullTime
		)

		if err = rows.Scan(&id, &card.Number, &card.Client, &current, &enteredAt); err != nil {
			return nil, err
		}

		i, visible := index[stage.Stage(current)]
		if !visible {
			continue
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		card.ID = orderID
		card.EnteredAt = enteredAt.Time

		columns[i].Orders = append(columns[i].Orders, card)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return columns, nil
}
