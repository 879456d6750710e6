// Package http exposes the production service over a JSON API built on echo.
// Every /api/v1 route requires HTTP basic auth against the directory.
package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"production/internal/adapters/out/xlsx"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	AdvanceOrder    commands.AdvanceOrderCommandHandler
	RegisterUser    commands.RegisterPrincipalCommandHandler
	UpdateUser      commands.UpdatePrincipalCommandHandler
	RemoveUser      commands.RemovePrincipalCommandHandler
	GetOrder        queries.GetOrderQueryHandler
	ListOrders      queries.ListOrdersQueryHandler
	GetBoard        queries.GetBoardQueryHandler
	GetHistory      queries.GetHistoryQueryHandler
	GetReport       queries.GetEfficiencyReportQueryHandler
	ListPrincipals  queries.ListPrincipalsQueryHandler
	NewExportReport func(sink ports.ReportSink) *commands.ExportReportCommandHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers     Handlers
	idealMinutes int
	location     *time.Location
	now          func() time.Time
	logger       *slog.Logger
}

// NewServer creates the server. idealMinutes is the report default when the
// request does not give one. Request dates are read in location, UTC when
// nil; now defaults to time.Now.
func NewServer(
	handlers Handlers,
	idealMinutes int,
	location *time.Location,
	now func() time.Time,
	logger *slog.Logger,
) *Server {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if idealMinutes < 1 {
		idealMinutes = services.DefaultIdealMinutes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers:     handlers,
		idealMinutes: idealMinutes,
		location:     location,
		now:          now,
		logger:       logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return s.fail(c, http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actor(c), orderID, body.Number, body.Client, body.Plan, s.now())
	if err != nil {
		return s.failErr(c, err)
	}

	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.failErr(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedOrder{ID: orderID.String()})
}

// ListOrders handles GET /api/v1/orders?includeCompleted=true&stage=Printing.
func (s *Server) ListOrders(c echo.Context) error {
	includeCompleted, _ := strconv.ParseBool(c.QueryParam("includeCompleted"))

	query, err := queries.NewListOrdersQuery(actor(c), includeCompleted)
	if err != nil {
		return s.failErr(c, err)
	}
	if name := c.QueryParam("stage"); name != "" {
		query = query.InStage(stage.Stage(name))
	}

	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.failErr(c, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.failErr(c, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.failErr(c, err)
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.failErr(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(o))
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrder(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.failErr(c, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(actor(c), id, s.now())
	if err != nil {
		return s.failErr(c, err)
	}

	tr, err := s.handlers.AdvanceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.failErr(c, err)
	}
	return c.JSON(http.StatusOK, toTransition(tr))
}

// GetBoard handles GET /api/v1/board.
func (s *Server) GetBoard(c echo.Context) error {
	query, err := queries.NewGetBoardQuery(actor(c))
	if err != nil {
		return s.failErr(c, err)
	}

	columns, err := s.handlers.GetBoard.Handle(c.Request().Context(), query)
	if err != nil {
		return s.failErr(c, err)
	}

	response := make([]BoardColumn, len(columns))
	for i, col := range columns {
		cards := make([]BoardCard, len(col.Orders))
		for j, card := range col.Orders {
			cards[j] = BoardCard{
				ID:        card.ID.String(),
				Number:    card.Number,
				Client:    card.Client,
				EnteredAt: card.EnteredAt,
			}
		}
		response[i] = BoardColumn{Stage: col.Stage.String(), Orders: cards}
	}
	return c.JSON(http.StatusOK, response)
}

// GetHistory handles GET /api/v1/history?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both bounds are optional.
func (s *Server) GetHistory(c echo.Context) error {
	from, err := s.parseDate("from", c.QueryParam("from"))
	if err != nil {
		return s.failErr(c, err)
	}
	to, err := s.parseDate("to", c.QueryParam("to"))
	if err != nil {
		return s.failErr(c, err)
	}

	query, err := queries.NewGetHistoryQuery(actor(c), from, to)
	if err != nil {
		return s.failErr(c, err)
	}
	query = query.InLocation(s.location)

	records, err := s.handlers.GetHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.failErr(c, err)
	}

	response := make([]HistoryRecord, len(records))
	for i, r := range records {
		response[i] = toHistoryRecord(r)
	}
	return c.JSON(http.StatusOK, response)
}

// GetReport handles GET /api/v1/reports/efficiency.
func (s *Server) GetReport(c echo.Context) error {
	filter, err := s.reportFilter(c)
	if err != nil {
		return s.failErr(c, err)
	}

	query, err := queries.NewGetEfficiencyReportQuery(actor(c), filter)
	if err != nil {
		return s.failErr(c, err)
	}

	table, err := s.handlers.GetReport.Handle(c.Request().Context(), query)
	if err != nil {
		return s.failErr(c, err)
	}
	return c.JSON(http.StatusOK, toReport(table))
}

// ExportReport handles GET /api/v1/reports/efficiency/export and returns the
// workbook as an attachment.
func (s *Server) ExportReport(c echo.Context) error {
	filter, err := s.reportFilter(c)
	if err != nil {
		return s.failErr(c, err)
	}

	cmd, err := commands.NewExportReportCommand(actor(c), filter)
	if err != nil {
		return s.failErr(c, err)
	}

	var buf bytes.Buffer
	if _, err = s.handlers.NewExportReport(xlsx.NewWriterSink(&buf)).Handle(c.Request().Context(), cmd); err != nil {
		return s.failErr(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", xlsx.FileName(s.now())))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListPrincipals handles GET /api/v1/principals?role=&stage=.
func (s *Server) ListPrincipals(c echo.Context) error {
	query, err := queries.NewListPrincipalsQuery(actor(c), c.QueryParam("role"), c.QueryParam("stage"))
	if err != nil {
		return s.failErr(c, err)
	}

	principals, err := s.handlers.ListPrincipals.Handle(c.Request().Context(), query)
	if err != nil {
		return s.failErr(c, err)
	}

	response := make([]Principal, len(principals))
	for i, p := range principals {
		response[i] = Principal{Username: p.Username, Role: p.Role.String(), Stage: p.Stage.String()}
	}
	return c.JSON(http.StatusOK, response)
}

// RegisterPrincipal handles POST /api/v1/principals.
func (s *Server) RegisterPrincipal(c echo.Context) error {
	var body PrincipalRequest
	if err := c.Bind(&body); err != nil {
		return s.fail(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRegisterPrincipalCommand(actor(c), body.Username, body.Role, body.Stage, body.Secret)
	if err != nil {
		return s.failErr(c, err)
	}

	if err = s.handlers.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return s.failErr(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// UpdatePrincipal handles PUT /api/v1/principals/:username. An empty secret
// keeps the current one.
func (s *Server) UpdatePrincipal(c echo.Context) error {
	var body PrincipalRequest
	if err := c.Bind(&body); err != nil {
		return s.fail(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdatePrincipalCommand(actor(c), c.Param("username"), body.Role, body.Stage, body.Secret)
	if err != nil {
		return s.failErr(c, err)
	}

	if err = s.handlers.UpdateUser.Handle(c.Request().Context(), cmd); err != nil {
		return s.failErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemovePrincipal handles DELETE /api/v1/principals/:username.
func (s *Server) RemovePrincipal(c echo.Context) error {
	cmd, err := commands.NewRemovePrincipalCommand(actor(c), c.Param("username"))
	if err != nil {
		return s.failErr(c, err)
	}

	if err = s.handlers.RemoveUser.Handle(c.Request().Context(), cmd); err != nil {
		return s.failErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) reportFilter(c echo.Context) (services.ReportFilter, error) {
	from, err := s.parseDate("from", c.QueryParam("from"))
	if err != nil {
		return services.ReportFilter{}, err
	}
	to, err := s.parseDate("to", c.QueryParam("to"))
	if err != nil {
		return services.ReportFilter{}, err
	}

	ideal := s.idealMinutes
	if raw := c.QueryParam("idealMinutes"); raw != "" {
		ideal, err = strconv.Atoi(raw)
		if err != nil {
			return services.ReportFilter{}, errs.NewValueIsInvalidErrorWithCause("idealMinutes", err)
		}
	}

	return services.ReportFilter{From: from, To: to, IdealMinutes: ideal, Location: s.location}, nil
}

func (s *Server) failErr(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return s.fail(c, status, "Internal error")
	}
	return s.fail(c, status, err.Error())
}

func (s *Server) fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Error{Code: status, Message: message})
}

func (s *Server) parseDate(name, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, s.location)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return t, nil
}

func actor(c echo.Context) principal.Principal {
	p, _ := c.Get(principalKey).(principal.Principal)
	return p
}
