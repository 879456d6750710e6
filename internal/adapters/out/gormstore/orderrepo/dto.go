// Package orderrepo persists work orders with GORM. An order is stored as one
// row in work_orders plus one row per planned stage in work_order_stages.
package orderrepo

import (
	"fmt"
	"sort"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"

	"github.com/google/uuid"
)

// WorkOrderDTO is the order header. Seq keeps insertion order.
type WorkOrderDTO struct {
	Seq          uint64    `gorm:"primaryKey;autoIncrement"`
	ID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Number       string    `gorm:"size:64;not null"`
	Client       string    `gorm:"size:255;not null"`
	CurrentIndex int       `gorm:"not null"`
	CurrentStage string    `gorm:"size:64;index;not null"`
	Status       int       `gorm:"index;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	Version      int       `gorm:"not null"`
}

// TableName overrides GORM's default naming.
func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// StageDTO is one planned stage of an order with its interval.
type StageDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey;autoIncrement:false"`
	Stage     string    `gorm:"size:64;not null"`
	EnteredAt *time.Time
	ExitedAt  *time.Time
}

// TableName overrides GORM's default naming.
func (StageDTO) TableName() string {
	return "work_order_stages"
}

// orderRow is one stage joined with its order header.
type orderRow struct {
	Seq          uint64
	ID           uuid.UUID
	Number       string
	Client       string
	CurrentIndex int
	CurrentStage string
	Status       int
	CreatedAt    time.Time
	Version      int
	Position     int
	Stage        string
	EnteredAt    *time.Time
	ExitedAt     *time.Time
}

// splitRows turns the joined rows of a single order back into its header and
// stages.
func splitRows(rows []orderRow) (WorkOrderDTO, []StageDTO) {
	first := rows[0]
	header := WorkOrderDTO{
		Seq:          first.Seq,
		ID:           first.ID,
		Number:       first.Number,
		Client:       first.Client,
		CurrentIndex: first.CurrentIndex,
		CurrentStage: first.CurrentStage,
		Status:       first.Status,
		CreatedAt:    first.CreatedAt,
		Version:      first.Version,
	}

	stages := make([]StageDTO, len(rows))
	for i, row := range rows {
		stages[i] = StageDTO{
			OrderID:   row.ID,
			Position:  row.Position,
			Stage:     row.Stage,
			EnteredAt: row.EnteredAt,
			ExitedAt:  row.ExitedAt,
		}
	}
	return header, stages
}

func fromDomain(o *order.WorkOrder) (WorkOrderDTO, []StageDTO) {
	id := o.ID().Bytes()

	header := WorkOrderDTO{
		ID:           id,
		Number:       o.Number(),
		Client:       o.Client(),
		CurrentIndex: o.CurrentIndex(),
		CurrentStage: o.CurrentStage().String(),
		Status:       int(o.Status()),
		CreatedAt:    o.CreatedAt(),
		Version:      o.Version(),
	}

	intervals := o.Intervals()
	stages := make([]StageDTO, len(intervals))
	for i, si := range intervals {
		stages[i] = StageDTO{OrderID: id, Position: i, Stage: si.Stage.String()}
		if entry, ok := si.Interval.Entry(); ok {
			stages[i].EnteredAt = &entry
		}
		if exit, ok := si.Interval.Exit(); ok {
			stages[i].ExitedAt = &exit
		}
	}

	return header, stages
}

func toDomain(header WorkOrderDTO, stages []StageDTO) (*order.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(stages, func(i, j int) bool { return stages[i].Position < stages[j].Position })

	plan := make([]stage.Stage, len(stages))
	intervals := make([]order.Interval, len(stages))
	for i, s := range stages {
		if s.Position != i {
			return nil, fmt.Errorf("%w: order %s: stage position %d stored at %d",
				order.ErrCorruptedOrder, id, s.Position, i)
		}
		plan[i] = stage.Stage(s.Stage)
		intervals[i] = order.NewInterval(deref(s.EnteredAt), deref(s.ExitedAt))
	}

	return order.RestoreWorkOrder(
		id,
		header.Number,
		header.Client,
		plan,
		header.CurrentIndex,
		intervals,
		order.Status(header.Status),
		header.CreatedAt,
		header.Version,
	)
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
