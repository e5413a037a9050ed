// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stapubox-search/internal/common/config"
	"stapubox-search/internal/common/logger"
)

// Server wires the handler into an http.Server with the configured
// timeouts.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func New(cfg *config.Config, handler *Handler, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", handler.HandleSearch)
	mux.HandleFunc("/healthz", handler.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      mux,
			ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		},
		logger: log,
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
