package orderrepo

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository. db may be a
// transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with all its planned stages.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, stages := fromDomain(aggregate)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return err
		}
		return tx.Create(&stages).Error
	})
}

// Update writes the order header and intervals if the stored version is the
// one the aggregate was loaded at.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, stages := fromDomain(aggregate)
	expected := header.Version - 1

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&WorkOrderDTO{}).
			Where("id = ? AND version = ?", header.ID, expected).
			Updates(map[string]any{
				"current_index": header.CurrentIndex,
				"current_stage": header.CurrentStage,
				"status":        header.Status,
				"version":       header.Version,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&WorkOrderDTO{}).Where("id = ?", header.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errs.NewObjectNotFoundError("order", aggregate.ID().String())
			}
			return errs.NewConcurrentModificationError("order", aggregate.ID().String(), expected)
		}

		for _, s := range stages {
			err := tx.Model(&StageDTO{}).
				Where("order_id = ? AND position = ?", s.OrderID, s.Position).
				Updates(map[string]any{
					"entered_at": s.EnteredAt,
					"exited_at":  s.ExitedAt,
				}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	orders, err := r.load(ctx, "o.id = ?", id.Bytes())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return orders[0], nil
}

// List retrieves every order in insertion order.
func (r *GormOrderRepository) List(ctx context.Context) ([]*order.WorkOrder, error) {
	return r.load(ctx, "")
}

// ListInStage retrieves in-progress orders whose current stage is s.
func (r *GormOrderRepository) ListInStage(ctx context.Context, s stage.Stage) ([]*order.WorkOrder, error) {
	return r.load(ctx, "o.current_stage = ? AND o.status = ?", s.String(), int(order.InProgress))
}

// load reads headers and stages in one statement, so an order is never
// assembled from before and after a concurrent advance.
func (r *GormOrderRepository) load(ctx context.Context, where string, args ...any) ([]*order.WorkOrder, error) {
	query := r.db.WithContext(ctx).
		Table("work_orders AS o").
		Select(`o.seq, o.id, o.number, o.client, o.current_index, o.current_stage,
			o.status, o.created_at, o.version,
			s.position, s.stage, s.entered_at, s.exited_at`).
		Joins("JOIN work_order_stages AS s ON s.order_id = o.id").
		Order("o.seq, s.position")
	if where != "" {
		query = query.Where(where, args...)
	}

	var rows []orderRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.WorkOrder, 0)
	for start := 0; start < len(rows); {
		end := start
		for end < len(rows) && rows[end].Seq == rows[start].Seq {
			end++
		}

		header, stages := splitRows(rows[start:end])
		o, err := toDomain(header, stages)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		start = end
	}

	return orders, nil
}
