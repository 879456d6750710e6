package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is one closed stage interval of a work order.
type Record struct {
	orderID       kernel.UUID
	orderNumber   string
	client        string
	stage         stage.Stage
	entryTime     time.Time
	exitTime      time.Time
	isConstructed bool
}

// NewRecord validates and builds a record. exit must not precede entry.
func NewRecord(
	orderID kernel.UUID,
	orderNumber, client string,
	s stage.Stage,
	entry, exit time.Time,
) (Record, error) {
	r := Record{
		orderID:       orderID,
		orderNumber:   strings.TrimSpace(orderNumber),
		client:        strings.TrimSpace(client),
		stage:         s,
		entryTime:     entry,
		exitTime:      exit,
		isConstructed: true,
	}

	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if r.client == "" {
		problems = append(problems, errs.NewValueIsRequiredError("client"))
	}
	if s == "" {
		problems = append(problems, errs.NewValueIsRequiredError("stage"))
	}
	if entry.IsZero() || exit.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("interval timestamps"))
	} else if exit.Before(entry) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"interval",
			fmt.Errorf("exit %s precedes entry %s", exit.Format(time.RFC3339), entry.Format(time.RFC3339)),
		))
	}
	if err := errors.Join(problems...); err != nil {
		return Record{}, err
	}

	return r, nil
}

// Validate ensures the record was created through NewRecord.
func (r Record) Validate() error {
	if !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r Record) OrderID() kernel.UUID    { return r.orderID }
func (r Record) OrderNumber() string     { return r.orderNumber }
func (r Record) Client() string          { return r.client }
func (r Record) Stage() stage.Stage      { return r.stage }
func (r Record) EntryTime() time.Time    { return r.entryTime }
func (r Record) ExitTime() time.Time     { return r.exitTime }
func (r Record) Duration() time.Duration { return r.exitTime.Sub(r.entryTime) }

// DurationSeconds is the interval length in (possibly fractional) seconds.
func (r Record) DurationSeconds() float64 {
	return r.Duration().Seconds()
}
