package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/mcversion/internal/errs"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/MrSnakeDoc/mcversion/internal/netutil"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// VersionService is what the HTTP layer needs from the resolver.
type VersionService interface {
	Versions(ctx context.Context) ([]string, error)
	Resolve(ctx context.Context, versionID string) (models.ResolvedVersionRecord, error)
}

type Server struct {
	echo    *echo.Echo
	service VersionService
}

type errorBody struct {
	Error string `json:"error"`
}

func New(service VersionService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, service: service}

	e.Use(middleware.Recover())
	e.Use(accessLog())

	e.GET("/versions", s.handleVersions)
	e.GET("/version/:versionId", s.handleVersion)

	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) handleVersions(c echo.Context) error {
	ids, err := s.service.Versions(c.Request().Context())
	if err != nil {
		logger.LogError("list versions: %v", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, ids)
}

func (s *Server) handleVersion(c echo.Context) error {
	id := c.Param("versionId")

	record, err := s.service.Resolve(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, record)
	case errs.IsNotFound(err):
		return c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		logger.LogError("resolve %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func accessLog() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Zap().Info("request",
				zap.String("type", "http"),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.echo.Listener = ln

	port := "0"
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = fmt.Sprint(tcp.Port)
	}
	logger.Success("Minecraft API server running at http://%s/", net.JoinHostPort(netutil.LocalIP(), port))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start("")
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
