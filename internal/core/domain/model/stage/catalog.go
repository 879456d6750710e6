package stage

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	// ErrUnknownStage is returned when a stage is not part of the catalog.
	ErrUnknownStage = errors.New("unknown stage")

	// ErrInvalidPlan is returned when a stage plan is empty or does not follow
	// catalog order.
	ErrInvalidPlan = errors.New("invalid stage plan")

	ErrCatalogIsNotConstructed = errors.New("Catalog must be created via NewCatalog constructor")
)

// Stage is one step of the production sequence, e.g. "Die-cutting".
type Stage string

// String implements fmt.Stringer.
func (s Stage) String() string {
	return string(s)
}

// defaultStages is the sequence used by the print shop floor.
var defaultStages = []Stage{
	"Queued",
	"Converting",
	"Guillotine",
	"GTOZ Printing",
	"Komori Printing",
	"Varnishing",
	"Laminating",
	"Die-cutting",
	"Manual Finishing",
	"Machine Finishing",
	"Transport",
	"Finished",
}

// Catalog is the immutable ordered list of stages.
type Catalog struct {
	stages   []Stage
	ordinals map[Stage]int
	guard    guard.ConstructorGuard
}

// NewCatalog builds a catalog from names in progression order. Names are
// trimmed; empty names and duplicates are rejected.
func NewCatalog(names ...string) (Catalog, error) {
	if len(names) == 0 {
		return Catalog{}, errs.NewValueIsRequiredError("stages")
	}

	c := Catalog{
		stages:   make([]Stage, 0, len(names)),
		ordinals: make(map[Stage]int, len(names)),
		guard:    guard.NewConstructorGuard(),
	}

	for i, name := range names {
		s := Stage(strings.TrimSpace(name))
		if s == "" {
			return Catalog{}, errs.NewValueIsRequiredError(fmt.Sprintf("stage name at position %d", i))
		}
		if _, dup := c.ordinals[s]; dup {
			return Catalog{}, errs.NewValueIsInvalidErrorWithCause("stages", fmt.Errorf("%q is listed twice", s))
		}
		c.ordinals[s] = len(c.stages)
		c.stages = append(c.stages, s)
	}

	return c, nil
}

// DefaultCatalog returns the print shop's standard stage sequence.
func DefaultCatalog() Catalog {
	names := make([]string, len(defaultStages))
	for i, s := range defaultStages {
		names[i] = string(s)
	}
	c, err := NewCatalog(names...)
	if err != nil {
		panic(err) // static data
	}
	return c
}

// Validate ensures the catalog was built through NewCatalog.
func (c Catalog) Validate() error {
	return c.guard.Validate(ErrCatalogIsNotConstructed)
}

// Stages returns a copy of the stages in progression order.
func (c Catalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Len returns the number of stages.
func (c Catalog) Len() int {
	return len(c.stages)
}

// Contains reports whether the stage belongs to the catalog.
func (c Catalog) Contains(s Stage) bool {
	_, ok := c.ordinals[s]
	return ok
}

// Parse maps a name to a catalog stage.
func (c Catalog) Parse(name string) (Stage, error) {
	s := Stage(strings.TrimSpace(name))
	if !c.Contains(s) {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
	return s, nil
}

// Ordinal returns the zero-based position of the stage in the catalog.
func (c Catalog) Ordinal(s Stage) (int, error) {
	i, ok := c.ordinals[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}
	return i, nil
}

// IsBefore reports whether a comes strictly before b.
func (c Catalog) IsBefore(a, b Stage) (bool, error) {
	ia, err := c.Ordinal(a)
	if err != nil {
		return false, err
	}
	ib, err := c.Ordinal(b)
	if err != nil {
		return false, err
	}
	return ia < ib, nil
}

// ValidatePlan checks that plan is a non-empty subsequence of the catalog in
// catalog order. All failures wrap ErrInvalidPlan; unknown stages also wrap
// ErrUnknownStage.
func (c Catalog) ValidatePlan(plan []Stage) error {
	if len(plan) == 0 {
		return fmt.Errorf("%w: plan is empty", ErrInvalidPlan)
	}

	prev := -1
	for i, s := range plan {
		ord, err := c.Ordinal(s)
		if err != nil {
			return fmt.Errorf("%w: position %d: %w", ErrInvalidPlan, i, err)
		}
		if ord <= prev {
			return fmt.Errorf("%w: %q at position %d breaks catalog order", ErrInvalidPlan, s, i)
		}
		prev = ord
	}

	return nil
}

// ParsePlan maps names to stages and validates the resulting plan.
func (c Catalog) ParsePlan(names []string) ([]Stage, error) {
	plan := make([]Stage, len(names))
	for i, name := range names {
		plan[i] = Stage(strings.TrimSpace(name))
	}
	if err := c.ValidatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}
