package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"production/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const principalKey = "principal"

// RequestObserver records served requests, e.g. as Prometheus metrics.
type RequestObserver interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// RouterConfig wires the server into echo. Metrics and Observer are optional.
type RouterConfig struct {
	Server    *Server
	Directory ports.Directory
	Metrics   http.Handler
	Observer  RequestObserver
	Logger    *slog.Logger
}

// NewRouter builds the echo instance with every route registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "request",
				"component", "http",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	if cfg.Observer != nil {
		e.Use(observe(cfg.Observer))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}

	api := e.Group("/api/v1", basicAuth(cfg.Directory))

	s := cfg.Server
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.GET("/board", s.GetBoard)
	api.GET("/history", s.GetHistory)
	api.GET("/reports/efficiency", s.GetReport)
	api.GET("/reports/efficiency/export", s.ExportReport)
	api.GET("/principals", s.ListPrincipals)
	api.POST("/principals", s.RegisterPrincipal)
	api.PUT("/principals/:username", s.UpdatePrincipal)
	api.DELETE("/principals/:username", s.RemovePrincipal)

	return e
}

// basicAuth authenticates every request against the directory and stores
// the principal in the echo context.
func basicAuth(directory ports.Directory) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "production",
		Validator: func(username, secret string, c echo.Context) (bool, error) {
			p, err := directory.Authenticate(c.Request().Context(), username, secret)
			if errors.Is(err, ports.ErrAuthenticationFailed) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			c.Set(principalKey, p)
			return true, nil
		},
	})
}

func observe(o RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			o.ObserveRequest(c.Request().Method, path, status, time.Since(start))
			return err
		}
	}
}
