package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when a WorkOrder was not created
	// through NewWorkOrder or RestoreWorkOrder.
	ErrOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")

	// ErrAlreadyCompleted is returned when advancing an order that already left
	// its last stage.
	ErrAlreadyCompleted = errors.New("work order already completed")

	// ErrCorruptedOrder is returned by RestoreWorkOrder when stored state
	// violates the interval invariants.
	ErrCorruptedOrder = errors.New("work order state is inconsistent")
)

// StageInterval pairs a planned stage with its interval.
type StageInterval struct {
	Stage    stage.Stage
	Interval Interval
}

// Transition describes what a successful Advance did.
type Transition struct {
	// Left is the stage whose interval was closed.
	Left stage.Stage
	// Entered is the stage opened next; empty when the order completed.
	Entered stage.Stage
	// Completed is true when Left was the last stage of the plan.
	Completed bool
	// Record is the history fact for the closed interval.
	Record history.Record
}

// WorkOrder is the aggregate root for a shop order moving through its plan.
//
// WorkOrder follows these invariants:
//   - currentIndex is always a valid index into plan
//   - intervals has one entry per planned stage
//   - stages before currentIndex are closed, stages after it are pending
//   - the current stage is open while InProgress and closed once Completed
type WorkOrder struct {
	id           kernel.UUID
	number       string
	client       string
	plan         []stage.Stage
	currentIndex int
	intervals    []Interval
	status       Status
	createdAt    time.Time

	// version counts persisted transitions; storage uses it for optimistic locking
	version int

	isConstructed bool
}

// NewWorkOrder creates an order positioned on the first stage of its plan,
// with that stage entered at createdAt.
//
// Example:
//
//	plan, _ := catalog.ParsePlan([]string{"Queued", "Die-cutting", "Transport"})
//	o, err := order.NewWorkOrder(kernel.NewUUID(), "OP-1042", "Acme", plan, catalog, time.Now())
//	if errors.Is(err, stage.ErrInvalidPlan) {
//	    // ask the planner to fix the selection
//	}
func NewWorkOrder(
	id kernel.UUID,
	number, client string,
	plan []stage.Stage,
	catalog stage.Catalog,
	createdAt time.Time,
) (*WorkOrder, error) {
	o := &WorkOrder{
		status:        InProgress,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setClient(client),
		o.setPlan(plan, catalog),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.intervals = make([]Interval, len(o.plan))
	o.intervals[0] = NewInterval(createdAt, time.Time{})

	return o, nil
}

// RestoreWorkOrder rebuilds an order from storage and re-checks every
// invariant. The catalog is not consulted, so orders survive later catalog
// edits.
func RestoreWorkOrder(
	id kernel.UUID,
	number, client string,
	plan []stage.Stage,
	currentIndex int,
	intervals []Interval,
	status Status,
	createdAt time.Time,
	version int,
) (*WorkOrder, error) {
	o := &WorkOrder{
		currentIndex:  currentIndex,
		status:        status,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setClient(client),
		o.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: plan is empty", stage.ErrInvalidPlan)
	}
	o.plan = append([]stage.Stage(nil), plan...)
	o.intervals = append([]Interval(nil), intervals...)

	if err := o.checkInvariants(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was properly constructed.
func (o *WorkOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *WorkOrder) ID() kernel.UUID {
	return o.id
}

// Number returns the shop's OP number.
func (o *WorkOrder) Number() string {
	return o.number
}

// Client returns the client label.
func (o *WorkOrder) Client() string {
	return o.client
}

// Plan returns a copy of the planned stages.
func (o *WorkOrder) Plan() []stage.Stage {
	return append([]stage.Stage(nil), o.plan...)
}

// CurrentIndex returns the position inside the plan.
func (o *WorkOrder) CurrentIndex() int {
	return o.currentIndex
}

// CurrentStage returns plan[currentIndex]. For a completed order this is the
// last stage.
func (o *WorkOrder) CurrentStage() stage.Stage {
	return o.plan[o.currentIndex]
}

// Status returns the lifecycle status.
func (o *WorkOrder) Status() Status {
	return o.status
}

// IsCompleted reports the terminal state.
func (o *WorkOrder) IsCompleted() bool {
	return o.status == Completed
}

// CreatedAt returns the creation time, equal to the first stage's entry.
func (o *WorkOrder) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic locking counter.
func (o *WorkOrder) Version() int {
	return o.version
}

// Interval returns the interval recorded for a planned stage.
func (o *WorkOrder) Interval(s stage.Stage) (Interval, bool) {
	for i, planned := range o.plan {
		if planned == s {
			return o.intervals[i], true
		}
	}
	return Interval{}, false
}

// Intervals returns every planned stage with its interval, in plan order.
func (o *WorkOrder) Intervals() []StageInterval {
	out := make([]StageInterval, len(o.plan))
	for i, s := range o.plan {
		out[i] = StageInterval{Stage: s, Interval: o.intervals[i]}
	}
	return out
}

// OpenStage returns the stage whose interval is open, if any.
func (o *WorkOrder) OpenStage() (stage.Stage, bool) {
	if o.IsCompleted() {
		return "", false
	}
	return o.CurrentStage(), true
}

// ValidateAdvance checks, without side effects, that the order can leave its
// current stage at now.
func (o *WorkOrder) ValidateAdvance(now time.Time) error {
	if err := o.status.ValidateAdvance(); err != nil {
		return err
	}

	entry, _ := o.intervals[o.currentIndex].Entry()
	if now.Before(entry) {
		return errs.NewValueIsInvalidErrorWithCause(
			"advance time",
			fmt.Errorf("%s is before %s entered %s",
				now.Format(time.RFC3339), o.CurrentStage(), entry.Format(time.RFC3339)),
		)
	}

	return nil
}

// Advance closes the current stage at now and either opens the next planned
// stage at the same instant or marks the order Completed. Nothing changes
// when an error is returned.
//
// Example:
//
//	tr, err := o.Advance(time.Now())
//	if errors.Is(err, order.ErrAlreadyCompleted) {
//	    // nothing left to do
//	}
//	historyRepo.Append(ctx, tr.Record)
func (o *WorkOrder) Advance(now time.Time) (Transition, error) {
	if err := o.ValidateAdvance(now); err != nil {
		return Transition{}, err
	}

	left := o.CurrentStage()
	entry, _ := o.intervals[o.currentIndex].Entry()

	record, err := history.NewRecord(o.id, o.number, o.client, left, entry, now)
	if err != nil {
		return Transition{}, err
	}

	tr := Transition{Left: left, Record: record}
	next := o.currentIndex + 1

	if next < len(o.plan) {
		o.intervals[o.currentIndex] = NewInterval(entry, now)
		o.intervals[next] = NewInterval(now, time.Time{})
		o.currentIndex = next
		tr.Entered = o.plan[next]
	} else {
		completed, completeErr := o.status.Complete()
		if completeErr != nil {
			return Transition{}, completeErr
		}
		o.intervals[o.currentIndex] = NewInterval(entry, now)
		o.status = completed
		tr.Completed = true
	}

	o.version++
	return tr, nil
}

// Clone returns a deep copy, used to hand out snapshots that callers cannot
// use to mutate shared state.
func (o *WorkOrder) Clone() *WorkOrder {
	cp := *o
	cp.plan = append([]stage.Stage(nil), o.plan...)
	cp.intervals = append([]Interval(nil), o.intervals...)
	return &cp
}

func (o *WorkOrder) checkInvariants() error {
	corrupted := func(format string, args ...any) error {
		return fmt.Errorf("%w: order %s: %s", ErrCorruptedOrder, o.id, fmt.Sprintf(format, args...))
	}

	if len(o.intervals) != len(o.plan) {
		return corrupted("%d intervals for %d planned stages", len(o.intervals), len(o.plan))
	}
	if o.currentIndex < 0 || o.currentIndex >= len(o.plan) {
		return corrupted("current index %d outside plan of %d stages", o.currentIndex, len(o.plan))
	}
	if o.status == Completed && o.currentIndex != len(o.plan)-1 {
		return corrupted("completed at index %d of %d", o.currentIndex, len(o.plan))
	}

	seen := make(map[stage.Stage]struct{}, len(o.plan))
	for i, s := range o.plan {
		if _, dup := seen[s]; dup {
			return corrupted("stage %q planned twice", s)
		}
		seen[s] = struct{}{}

		iv := o.intervals[i]
		switch {
		case i < o.currentIndex && !iv.IsClosed():
			return corrupted("passed stage %q is not closed", s)
		case i > o.currentIndex && !iv.IsPending():
			return corrupted("future stage %q already has timestamps", s)
		case i == o.currentIndex && o.status == InProgress && !iv.IsOpen():
			return corrupted("current stage %q is not open", s)
		case i == o.currentIndex && o.status == Completed && !iv.IsClosed():
			return corrupted("last stage %q of completed order is not closed", s)
		}

		if entry, ok := iv.Entry(); ok {
			if exit, closed := iv.Exit(); closed && exit.Before(entry) {
				return corrupted("stage %q exits before it is entered", s)
			}
		}
	}

	return nil
}

func (o *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *WorkOrder) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *WorkOrder) setClient(client string) error {
	client = strings.TrimSpace(client)
	if client == "" {
		return errs.NewValueIsRequiredError("client")
	}
	o.client = client
	return nil
}

func (o *WorkOrder) setPlan(plan []stage.Stage, catalog stage.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}
	if err := catalog.ValidatePlan(plan); err != nil {
		return err
	}
	o.plan = append([]stage.Stage(nil), plan...)
	return nil
}

func (o *WorkOrder) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("creation time")
	}
	o.createdAt = createdAt
	return nil
}
