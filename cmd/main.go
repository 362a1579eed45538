package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/slide_uploader/internal/config"
	"github.com/Vovarama1992/slide_uploader/internal/convert"
	"github.com/Vovarama1992/slide_uploader/internal/delivery"
	"github.com/Vovarama1992/slide_uploader/internal/infra"
	"github.com/Vovarama1992/slide_uploader/internal/publish"
	"github.com/Vovarama1992/slide_uploader/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	s3Client, err := infra.NewS3Client(cfg.S3)
	if err != nil {
		log.Fatalf("failed to init s3: %v", err)
	}

	stager, err := convert.NewStager(cfg.StagingDir)
	if err != nil {
		log.Fatalf("failed to init staging dir: %v", err)
	}

	renderer := convert.NewFitzRenderer()
	transcoder := convert.NewSofficeTranscoder(cfg.SofficePath)

	// reports need postgres; the conversion pipeline runs without it
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			log.Fatalf("db ping failed: %v", err)
		}
		cancel()
		defer db.Close()
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	publishService := publish.NewService(s3Client)

	convertService := convert.NewService(
		stager,
		renderer,
		transcoder,
		publishService,
		cfg.MaxConcurrent,
		cfg.ConvertTimeout,
	)

	var reportService *report.Service
	if db != nil {
		reportService = report.NewService(report.NewSessionRepo(db), publishService)
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// HANDLERS
	convertHandler := delivery.NewConvertHandler(convertService, zl, cfg.MaxUploadBytes)

	var reportHandler *delivery.ReportHandler
	if reportService != nil {
		reportHandler = delivery.NewReportHandler(reportService, zl)
	}

	// ROUTES
	delivery.RegisterRoutes(r, convertHandler, reportHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + cfg.Addr,
		Service: "slide_uploader",
	})

	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
