package commands

import (
	"errors"

	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/services"
	"production/internal/pkg/guard"
)

var ErrExportReportCommandIsNotConstructed = errors.New(
	"ExportReportCommand must be created via NewExportReportCommand constructor",
)

// ExportReportCommand builds the efficiency report for a range and hands it,
// with the raw records in that range, to a report sink.
type ExportReportCommand struct { //nolint:recvcheck //using for validation
	actor  principal.Principal
	filter services.ReportFilter

	guard guard.ConstructorGuard
}

func NewExportReportCommand(actor principal.Principal, filter services.ReportFilter) (ExportReportCommand, error) {
	if err := errors.Join(actor.Validate(), filter.Validate()); err != nil {
		return ExportReportCommand{}, err
	}
	return ExportReportCommand{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExportReportCommand) Validate() error {
	return c.guard.Validate(ErrExportReportCommandIsNotConstructed)
}

func (c ExportReportCommand) Actor() principal.Principal    { return c.actor }
func (c ExportReportCommand) Filter() services.ReportFilter { return c.filter }
