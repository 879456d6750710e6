package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status is the coarse lifecycle state of a work order.
//
//	InProgress ──> Completed
//
// The position inside the plan is tracked separately by the current index;
// Status only says whether there is still a stage to leave.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// InProgress means one stage interval is open.
	InProgress

	// Completed means the last stage was left. Final.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// Validate rejects Unknown and out of range values, e.g. read from storage.
func (s Status) Validate() error {
	if s != InProgress && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateAdvance checks that an order in this status still has a stage to
// leave.
func (s Status) ValidateAdvance() error {
	switch s {
	case InProgress:
		return nil
	case Completed:
		return ErrAlreadyCompleted
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to advance", s),
		)
	}
}

// Complete transitions InProgress to Completed.
func (s Status) Complete() (Status, error) {
	if err := s.ValidateAdvance(); err != nil {
		return Unknown, err
	}
	return Completed, nil
}
