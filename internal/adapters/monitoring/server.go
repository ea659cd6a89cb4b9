package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// HealthCheck probes one dependency; a non-nil error fails the probe.
type HealthCheck func() error

// DirCheck reports whether path exists and is a directory.
func DirCheck(path string) HealthCheck {
	return func() error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", path)
		}
		return nil
	}
}

// Server exposes the metrics registry and a health probe on a bind address
// separate from the resize listener.
type Server struct {
	srv *http.Server
}

func NewServer(bind string, registry *prometheus.Registry, checks ...HealthCheck) *Server {
	r := chi.NewRouter()
	r.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry:          registry,
		EnableOpenMetrics: true,
	}).ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		for _, check := range checks {
			if err := check(); err != nil {
				log.Warn().Err(err).Msg("health check failed")
				http.Error(w, "unhealthy", http.StatusInternalServerError)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		srv: &http.Server{
			Addr:    bind,
			Handler: r,
		},
	}
}

func (s *Server) Start() error {
	log.Info().Str("bind", s.srv.Addr).Msg("monitoring enabled")

	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
