// Package httpapi serves the verification API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"founderlens/internal/globaltime"
	"founderlens/internal/pipeline"
	"founderlens/internal/report"
)

const maxQueryLength = 200

// Verifier is the slice of the pipeline the API needs.
type Verifier interface {
	Verify(ctx context.Context, query string) (report.Record, string, error)
	Cached(ctx context.Context, query string) (report.Record, bool, error)
}

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	verifier Verifier
	logger   zerolog.Logger
	opts     Options
}

type searchRequest struct {
	Query string `json:"query" form:"query"`
}

func NewServer(verifier Verifier, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8080
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		// A cold verification run fans out to several slow upstreams.
		writeTimeout = 90 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		verifier: verifier,
		logger:   logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.verifier == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := s.buildEcho()

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("founderlens api started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("founderlens api stopped")
	return nil
}

func (s *Server) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.GET("/verify", s.handleVerify)
	api.POST("/search", s.handleSearch)

	return e
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "founderlens",
		"time":    globaltime.UTC(),
	})
}

// handleVerify answers from cache only; it never triggers the slow
// multi-source pipeline.
func (s *Server) handleVerify(c echo.Context) error {
	query, fieldErr := cleanQuery(c.QueryParam("query"))
	if fieldErr != "" {
		return failValidation(c, map[string]string{"query": fieldErr})
	}

	rec, ok, err := s.verifier.Cached(c.Request().Context(), query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("cache lookup failed")
		return internalError(c, "Failed to look up cached result")
	}
	if !ok {
		return failNotFound(c, "No cached result for this query; run a search first")
	}
	return success(c, map[string]any{
		"record":       rec,
		"cache_status": pipeline.StatusHit,
	})
}

func (s *Server) handleSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"query": "could not parse request body"})
	}
	query, fieldErr := cleanQuery(req.Query)
	if fieldErr != "" {
		return failValidation(c, map[string]string{"query": fieldErr})
	}

	rec, status, err := s.verifier.Verify(c.Request().Context(), query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("verification failed")
		return internalError(c, "Verification failed")
	}
	return success(c, map[string]any{
		"record":       rec,
		"cache_status": status,
	})
}

func cleanQuery(raw string) (string, string) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", "is required"
	}
	if len(query) > maxQueryLength {
		return "", fmt.Sprintf("must be at most %d characters", maxQueryLength)
	}
	return query, ""
}
