package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/paperpress/paperpress/handlers"
	"github.com/paperpress/paperpress/internal/config"
	"github.com/paperpress/paperpress/internal/render"
	"github.com/paperpress/paperpress/internal/storage"
	"github.com/paperpress/paperpress/pkg/logger"
	"github.com/paperpress/paperpress/pkg/metrics"
)

func main() {
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	cfg, err := config.LoadConfig()
	if err != nil {
		fallback := logger.New(out, "")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(out, cfg.LogLevel)

	var store storage.Store
	if cfg.MinIO.Endpoint != "" {
		s, err := storage.NewMinIOStorage(&cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object store")
		}
		log.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.Bucket).Msg("connected to MinIO")
		store = s
	} else {
		log.Warn().Msg("MINIO_ENDPOINT not set, storing rendered objects in memory")
		store = storage.NewMemoryStore()
	}

	renderer := render.NewRenderer(cfg, store, log, out)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.NewRenderHandler(renderer, log).Register(r)
	handlers.RegisterSwagger(r)

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("paperpress listening")
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
