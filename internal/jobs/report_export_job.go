package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DefaultReportSchedule runs the export every day at 06:00.
const DefaultReportSchedule = "0 6 * * *"

// ReportExporter is the use case the job drives.
type ReportExporter interface {
	Handle(ctx context.Context, cmd commands.ExportReportCommand) (services.ReportTable, error)
}

// ReportExportJob exports the previous day's efficiency report on a cron
// schedule. It acts as a built-in coordinator named "report-exporter".
type ReportExportJob struct {
	exporter     ReportExporter
	schedule     string
	idealMinutes int
	location     *time.Location
	now          func() time.Time
	cron         *cron.Cron
	logger       *slog.Logger
}

// ReportExportJobConfig configures the job. Zero values fall back to
// DefaultReportSchedule, services.DefaultIdealMinutes, UTC and time.Now.
type ReportExportJobConfig struct {
	Schedule     string
	IdealMinutes int
	Location     *time.Location
	Now          func() time.Time
}

func NewReportExportJob(exporter ReportExporter, cfg ReportExportJobConfig, logger *slog.Logger) *ReportExportJob {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultReportSchedule
	}
	if cfg.IdealMinutes < 1 {
		cfg.IdealMinutes = services.DefaultIdealMinutes
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &ReportExportJob{
		exporter:     exporter,
		schedule:     cfg.Schedule,
		idealMinutes: cfg.IdealMinutes,
		location:     cfg.Location,
		now:          cfg.Now,
		cron:         cron.New(cron.WithLocation(cfg.Location)),
		logger:       logger.With("component", "report_export_job"),
	}
}

// Start registers the schedule and starts the cron runner.
func (j *ReportExportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Report export failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Report export job started", "schedule", j.schedule)
	return nil
}

// Stop stops the cron runner and waits for a running export to finish.
func (j *ReportExportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Report export job stopped")
}

// Run exports the report for the calendar day before now.
func (j *ReportExportJob) Run(ctx context.Context) error {
	day := j.now().In(j.location).AddDate(0, 0, -1)
	return j.RunFor(ctx, day, day)
}

// RunFor exports the report for an explicit date range.
func (j *ReportExportJob) RunFor(ctx context.Context, from, to time.Time) error {
	actor, err := principal.NewCoordinator("report-exporter")
	if err != nil {
		return err
	}

	cmd, err := commands.NewExportReportCommand(actor, services.ReportFilter{
		From:         from,
		To:           to,
		IdealMinutes: j.idealMinutes,
		Location:     j.location,
	})
	if err != nil {
		return err
	}

	table, err := j.exporter.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	j.logger.InfoContext(ctx, "Report exported",
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly),
		"orders", len(table.Rows),
	)
	return nil
}
