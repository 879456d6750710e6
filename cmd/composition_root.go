package cmd

import (
	"log/slog"
	"net/http"
	"time"

	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/gormstore"
	"production/internal/adapters/out/gormstore/historyrepo"
	"production/internal/adapters/out/gormstore/orderrepo"
	"production/internal/adapters/out/gormstore/userrepo"
	"production/internal/adapters/out/metrics"
	"production/internal/adapters/out/xlsx"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/jobs"
	"production/internal/pkg/keylock"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide state: the catalog, the access
// policy, the per-order locks and the metrics registry.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	catalog    stage.Catalog
	location   *time.Location
	logger     *slog.Logger
	uowFactory *gormstore.GormUnitOfWorkFactory
	directory  *userrepo.GormDirectory
	policy     services.AccessPolicy
	aggregator services.HistoryAggregator
	locks      *keylock.KeyedMutex
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	catalog stage.Catalog,
	location *time.Location,
	logger *slog.Logger,
) *CompositionRoot {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		catalog:    catalog,
		location:   location,
		logger:     logger,
		uowFactory: gormstore.NewGormUnitOfWorkFactory(gormDB),
		directory:  userrepo.NewGormDirectory(gormDB, config.BcryptCost),
		policy:     services.NewAccessPolicy(),
		aggregator: services.NewHistoryAggregator(catalog),
		locks:      keylock.New(),
		metrics:    metrics.New(metrics.DefaultConfig(), logger),
		now:        time.Now,
	}
}

func (c *CompositionRoot) Directory() ports.Directory {
	return c.directory
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.catalog, c.policy, c.metrics)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, services.NewProgressionEngine(c.policy), c.locks, c.metrics)
}

func (c *CompositionRoot) CreateRegisterPrincipalCommandHandler() commands.RegisterPrincipalCommandHandler {
	return commands.NewRegisterPrincipalCommandHandler(c.directory, c.catalog, c.policy)
}

func (c *CompositionRoot) CreateUpdatePrincipalCommandHandler() commands.UpdatePrincipalCommandHandler {
	return commands.NewUpdatePrincipalCommandHandler(c.directory, c.catalog, c.policy)
}

func (c *CompositionRoot) CreateRemovePrincipalCommandHandler() commands.RemovePrincipalCommandHandler {
	return commands.NewRemovePrincipalCommandHandler(c.directory, c.policy)
}

func (c *CompositionRoot) CreateSeedDirectoryCommandHandler() commands.SeedDirectoryCommandHandler {
	return commands.NewSeedDirectoryCommandHandler(c.directory)
}

func (c *CompositionRoot) CreateExportReportCommandHandler(sink ports.ReportSink) *commands.ExportReportCommandHandler {
	return commands.NewExportReportCommandHandler(c.historyRepository(), c.aggregator, c.policy, sink)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderRepository())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderRepository(), c.policy)
}

func (c *CompositionRoot) CreateGetBoardQueryHandler() queries.GetBoardQueryHandler {
	return queries.NewGetBoardQueryHandler(c.gormDB, c.catalog, c.policy)
}

func (c *CompositionRoot) CreateGetHistoryQueryHandler() queries.GetHistoryQueryHandler {
	return queries.NewGetHistoryQueryHandler(c.historyRepository(), c.policy)
}

func (c *CompositionRoot) CreateGetEfficiencyReportQueryHandler() queries.GetEfficiencyReportQueryHandler {
	return queries.NewGetEfficiencyReportQueryHandler(c.historyRepository(), c.aggregator, c.policy)
}

func (c *CompositionRoot) CreateListPrincipalsQueryHandler() queries.ListPrincipalsQueryHandler {
	return queries.NewListPrincipalsQueryHandler(c.directory, c.policy)
}

// CreateRouter wires every handler into the echo router.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		AdvanceOrder:    c.CreateAdvanceOrderCommandHandler(),
		RegisterUser:    c.CreateRegisterPrincipalCommandHandler(),
		UpdateUser:      c.CreateUpdatePrincipalCommandHandler(),
		RemoveUser:      c.CreateRemovePrincipalCommandHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		ListOrders:      c.CreateListOrdersQueryHandler(),
		GetBoard:        c.CreateGetBoardQueryHandler(),
		GetHistory:      c.CreateGetHistoryQueryHandler(),
		GetReport:       c.CreateGetEfficiencyReportQueryHandler(),
		ListPrincipals:  c.CreateListPrincipalsQueryHandler(),
		NewExportReport: c.CreateExportReportCommandHandler,
	}, c.config.ReportIdealMinutes, c.location, c.now, c.logger)

	return httpin.NewRouter(httpin.RouterConfig{
		Server:    server,
		Directory: c.directory,
		Metrics:   c.MetricsHandler(),
		Observer:  c.metrics,
		Logger:    c.logger,
	})
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return c.metrics.Handler()
}

// CreateReportExportJob builds the scheduled export writing into
// ReportExportDir.
func (c *CompositionRoot) CreateReportExportJob() *jobs.ReportExportJob {
	sink := xlsx.NewDirSink(c.config.ReportExportDir, c.now)
	return jobs.NewReportExportJob(c.CreateExportReportCommandHandler(sink), jobs.ReportExportJobConfig{
		Schedule:     c.config.ReportExportSchedule,
		IdealMinutes: c.config.ReportIdealMinutes,
		Location:     c.location,
		Now:          c.now,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.logger, c.CreateReportExportJob())
}

func (c *CompositionRoot) orderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB)
}

func (c *CompositionRoot) historyRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
