package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/remtori/image-resize/internal/adapters/codec"
	"github.com/remtori/image-resize/internal/adapters/handler"
	"github.com/remtori/image-resize/internal/adapters/monitoring"
	"github.com/remtori/image-resize/internal/adapters/resizer"
	"github.com/remtori/image-resize/internal/adapters/source"
	"github.com/remtori/image-resize/internal/config"
	"github.com/remtori/image-resize/internal/core/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("starting image-resize...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	var logLevel zerolog.Level

	switch cfg.Level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var sources []source.Source
	if cfg.Origin.LocalFolder != "" {
		log.Info().Str("folder", cfg.Origin.LocalFolder).Msg("local origin enabled")
		sources = append(sources, source.NewLocalSource(cfg.Origin.LocalFolder))
	}
	if cfg.Origin.RemoteCDN != "" {
		log.Info().Str("cdn", cfg.Origin.RemoteCDN).Msg("remote origin enabled")
		sources = append(sources, source.NewRemoteSource(cfg.Origin.RemoteCDN, cfg.Origin.ConnectTimeout))
	}

	imagingResizer, err := resizer.NewImagingResizer(cfg.Resize.Filter)
	if err != nil {
		log.Panic().Err(err).Msg("invalid resize filter in config")
	}

	pipeline := service.NewPipeline(source.NewChain(sources...), codec.NewImagingCodec(), imagingResizer)

	metrics := monitoring.New(monitoring.Options{Labels: cfg.PrometheusLabels()})

	var monitoringServer *monitoring.Server
	if cfg.Monitoring.Enabled {
		registry := prometheus.NewRegistry()
		metrics.Register(registry)

		var checks []monitoring.HealthCheck
		if cfg.Origin.LocalFolder != "" {
			checks = append(checks, monitoring.DirCheck(cfg.Origin.LocalFolder))
		}

		monitoringServer = monitoring.NewServer(cfg.Monitoring.Bind, registry, checks...)
		go func() {
			if err := monitoringServer.Start(); err != nil {
				log.Fatal().Err(err).Msg("monitoring server failed")
			}
		}()
	}

	resizeHandler := handler.NewResize(pipeline, metrics)
	router := handler.NewRouter(resizeHandler, cfg.Server.Timeout, cfg.Server.CORSOriginSuffixes)

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("bind", srv.Addr).Str("filter", imagingResizer.FilterName()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("could not drain in-flight requests")
	}

	if monitoringServer != nil {
		if err := monitoringServer.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("could not stop monitoring server")
		}
	}
}
