package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type S3 struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// Config is built once in main and handed to constructors.
// Nothing below reads the environment after Load returns.
type Config struct {
	Addr        string
	S3          S3
	DatabaseURL string

	StagingDir     string
	SofficePath    string
	ConvertTimeout time.Duration
	MaxConcurrent  int64
	MaxUploadBytes int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr: ":" + envOr("PORT", "8080"),
		S3: S3{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StagingDir:  envOr("STAGING_DIR", "uploads"),
		SofficePath: envOr("SOFFICE_PATH", "libreoffice"),
	}

	if cfg.S3.Endpoint == "" || cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" || cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET must be set")
	}

	timeout, err := time.ParseDuration(envOr("CONVERT_TIMEOUT", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONVERT_TIMEOUT: %w", err)
	}
	cfg.ConvertTimeout = timeout

	parallel, err := strconv.ParseInt(envOr("CONVERT_PARALLELISM", "2"), 10, 64)
	if err != nil || parallel < 1 {
		return nil, fmt.Errorf("invalid CONVERT_PARALLELISM: %q", os.Getenv("CONVERT_PARALLELISM"))
	}
	cfg.MaxConcurrent = parallel

	maxUpload, err := strconv.ParseInt(envOr("MAX_UPLOAD_MB", "50"), 10, 64)
	if err != nil || maxUpload < 1 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadBytes = maxUpload << 20

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
