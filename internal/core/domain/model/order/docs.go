// Package order provides the WorkOrder aggregate root: a shop order (OP) that
// moves through a plan of production stages, recording when it entered and
// left each one.
//
// The package includes:
//   - WorkOrder: the aggregate root holding identity, plan, position and intervals
//   - Interval: the entry/exit pair recorded for one stage
//   - Status: the InProgress -> Completed state machine
//
// Key business rules:
//   - The plan is a non-empty subsequence of the stage catalog in catalog order
//   - Exactly one interval is open (entered, not exited) while the order is in
//     progress; none once it is completed
//   - An interval is only closed after it was opened
//   - Advancing closes the current interval and opens the next one in a single
//     step, emitting exactly one history record
//   - Completed is final; advancing a completed order fails with
//     ErrAlreadyCompleted and changes nothing
package order
