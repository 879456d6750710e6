// Package historyrepo stores the append-only history log with GORM.
package historyrepo

import (
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"

	"github.com/google/uuid"
)

// RecordDTO is one closed stage interval.
type RecordDTO struct {
	Seq             uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID         uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderNumber     string    `gorm:"size:64;not null"`
	Client          string    `gorm:"size:255;not null"`
	Stage           string    `gorm:"size:64;not null"`
	EntryTime       time.Time `gorm:"index;not null"`
	ExitTime        time.Time `gorm:"not null"`
	DurationSeconds float64   `gorm:"not null"`
}

// TableName overrides GORM's default naming.
func (RecordDTO) TableName() string {
	return "history_records"
}

func fromDomain(r history.Record) RecordDTO {
	return RecordDTO{
		OrderID:         r.OrderID().Bytes(),
		OrderNumber:     r.OrderNumber(),
		Client:          r.Client(),
		Stage:           r.Stage().String(),
		EntryTime:       r.EntryTime(),
		ExitTime:        r.ExitTime(),
		DurationSeconds: r.DurationSeconds(),
	}
}

func toDomain(dto RecordDTO) (history.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return history.Record{}, err
	}
	return history.NewRecord(id, dto.OrderNumber, dto.Client, stage.Stage(dto.Stage), dto.EntryTime, dto.ExitTime)
}
