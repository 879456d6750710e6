package order

import "time"

// Interval is the time a work order spent in one stage. A zero time means the
// boundary has not been reached yet.
type Interval struct {
	entry time.Time
	exit  time.Time
}

// NewInterval builds an interval; pass zero times for unset boundaries.
func NewInterval(entry, exit time.Time) Interval {
	return Interval{entry: entry, exit: exit}
}

// Entry returns the entry time and whether it is set.
func (i Interval) Entry() (time.Time, bool) {
	return i.entry, !i.entry.IsZero()
}

// Exit returns the exit time and whether it is set.
func (i Interval) Exit() (time.Time, bool) {
	return i.exit, !i.exit.IsZero()
}

// IsOpen reports an entered but not yet exited stage.
func (i Interval) IsOpen() bool {
	return !i.entry.IsZero() && i.exit.IsZero()
}

// IsClosed reports a stage with both boundaries set.
func (i Interval) IsClosed() bool {
	return !i.entry.IsZero() && !i.exit.IsZero()
}

// IsPending reports a stage not reached yet.
func (i Interval) IsPending() bool {
	return i.entry.IsZero() && i.exit.IsZero()
}

// Duration is zero unless the interval is closed.
func (i Interval) Duration() time.Duration {
	if !i.IsClosed() {
		return 0
	}
	return i.exit.Sub(i.entry)
}
