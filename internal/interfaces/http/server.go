package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/swarakshak/vidhaan/internal/config"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
)

// Server wraps http.Server with configured timeouts and graceful shutdown.
type Server struct {
	srv *http.Server
	cfg config.ServerConfig
	log logging.Logger
}

// NewServer builds the HTTP server around the given handler.
func NewServer(cfg config.ServerConfig, handler http.Handler, log logging.Logger) *Server {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Server{
		srv: &http.Server{
			Addr:         ":" + strconv.Itoa(cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg: cfg,
		log: log,
	}
}

// Start serves until the listener fails or Shutdown is called.
// http.ErrServerClosed is swallowed so a graceful stop returns nil.
func (s *Server) Start() error {
	s.log.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.log.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}
