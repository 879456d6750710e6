package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production/cmd"
	"production/internal/adapters/out/catalogfile"
	"production/internal/adapters/out/gormstore"
	"production/internal/core/application/usecases/commands"
	"production/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	envFile    string
	exportFrom string
	exportTo   string
)

var rootCmd = &cobra.Command{
	Use:           "production",
	Short:         "Work order stage tracking for the print shop",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the scheduled report export",
	RunE:  runServe,
}

var exportCmd = &cobra.Command{
	Use:   "export-report",
	Short: "Write the efficiency report for a date range to REPORT_EXPORT_DIR",
	Long: `Write the efficiency report for a date range to REPORT_EXPORT_DIR.

Dates use the YYYY-MM-DD form and are read in REPORT_TIMEZONE. Without
flags the previous day is exported, the same as the scheduled job.`,
	RunE: runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	exportCmd.Flags().StringVar(&exportFrom, "from", "", "first day of the range (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "last day of the range (YYYY-MM-DD)")
	exportCmd.MarkFlagsRequiredTogether("from", "to")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("production: %v", err)
	}
}

func runServe(c *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, root, logger, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := root.CreateRouter()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runExport(c *cobra.Command, _ []string) error {
	config, root, _, err := bootstrap(c.Context())
	if err != nil {
		return err
	}

	job := root.CreateReportExportJob()
	if exportFrom == "" {
		return job.Run(c.Context())
	}

	location, err := config.Location()
	if err != nil {
		return err
	}
	from, err := time.ParseInLocation(time.DateOnly, exportFrom, location)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := time.ParseInLocation(time.DateOnly, exportTo, location)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	return job.RunFor(c.Context(), from, to)
}

// bootstrap loads the configuration, opens and migrates the database and
// seeds the first coordinator when the directory is empty.
func bootstrap(ctx context.Context) (cmd.Config, *cmd.CompositionRoot, *slog.Logger, error) {
	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}

	logger := logging.New(logging.Config{Level: config.LogLevel, ServiceName: "production"})
	slog.SetDefault(logger)

	location, err := config.Location()
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}

	catalog, err := catalogfile.LoadFile(config.StageCatalogFile)
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}

	db, err := gormstore.Open(config.Database())
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}
	if err = gormstore.Migrate(db); err != nil {
		return cmd.Config{}, nil, nil, err
	}

	root := cmd.NewCompositionRoot(config, db, catalog, location, logger)

	if config.SeedAdminPassword != "" {
		seed, seedErr := commands.NewSeedDirectoryCommand(config.SeedAdminUsername, config.SeedAdminPassword)
		if seedErr != nil {
			return cmd.Config{}, nil, nil, seedErr
		}
		handler := root.CreateSeedDirectoryCommandHandler()
		created, seedErr := handler.Handle(ctx, seed)
		if seedErr != nil {
			return cmd.Config{}, nil, nil, seedErr
		}
		if created {
			logger.Info("Seeded coordinator", "username", config.SeedAdminUsername)
		}
	}

	return config, root, logger, nil
}
