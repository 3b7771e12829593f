// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"notion-pdf-service/internal/common/config"
	"notion-pdf-service/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server owns the HTTP listener. Application routes, Prometheus metrics
// and pprof share one port; this service is internal-only.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func New(cfg config.ServerConfig, handler *Handler, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", handler.HandleWebhook)
	mux.HandleFunc("/health", handler.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	readTimeout := 30 * time.Second
	if cfg.ReadTimeout > 0 {
		readTimeout = time.Duration(cfg.ReadTimeout) * time.Millisecond
	}
	writeTimeout := 60 * time.Second
	if cfg.WriteTimeout > 0 {
		writeTimeout = time.Duration(cfg.WriteTimeout) * time.Millisecond
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
		},
		logger: log.WithFields(map[string]interface{}{"component": "http-server"}),
	}
}

// Start blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
