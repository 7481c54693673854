package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/logging"
	"github.com/agbru/paramsweep/internal/metrics"
)

const metricsShutdownTimeout = 2 * time.Second

// metricsServer exposes the sweep metrics on /metrics for the duration of a run.
type metricsServer struct {
	srv    *http.Server
	addr   string
	logger logging.Logger
}

// startMetricsServer listens on addr before returning, so a bad address is
// reported as a configuration error instead of a background failure.
func startMetricsServer(addr string, m *metrics.SweepMetrics, logger logging.Logger) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, apperrors.NewConfigError("cannot serve metrics on %s: %v", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	s := &metricsServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:   ln.Addr().String(),
		logger: logger,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", err)
		}
	}()
	logger.Info("metrics server listening", logging.String("addr", s.addr))
	return s, nil
}

// Addr returns the address actually bound.
func (s *metricsServer) Addr() string { return s.addr }

// Shutdown stops the server, waiting briefly for in-flight scrapes.
func (s *metricsServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("metrics server shutdown", logging.Err(err))
	}
}
