// Package jobs provides scheduled background tasks for the production service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and driven by a JobManager:
//
//	export := jobs.NewReportExportJob(exportHandler, jobs.ReportExportJobConfig{
//		Schedule: "0 6 * * *",
//	}, logger)
//	manager := jobs.NewJobManager(logger, export)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// ReportExportJob writes the previous day's efficiency report, with the raw
// history of that day, through the configured report sink. Export failures
// are logged and retried on the next tick only.
package jobs
