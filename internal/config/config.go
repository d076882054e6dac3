package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL      string
	Port             string
	UploadBackend    string
	UploadPath       string
	UploadManifest   string
	MaxUploadBytes   int64
	S3               S3Config
	CorsOrigins      []string
	LogDir           string
	LogRetentionDays int
	LogLevel         string
	LogFormat        string
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

func Load() Config {
	retention := envOrInt("LOG_RETENTION_DAYS", 7)
	if retention <= 0 || retention > 7 {
		retention = 7
	}
	return Config{
		DatabaseURL:      envOr("DATABASE_URL", "sqlite://storage/studybuddy.db"),
		Port:             envOr("PORT", "5000"),
		UploadBackend:    strings.ToLower(envOr("UPLOAD_BACKEND", BackendLocal)),
		UploadPath:       envOr("UPLOAD_PATH", "uploads"),
		UploadManifest:   envRaw("UPLOAD_MANIFEST", "storage/uploads.yaml"),
		MaxUploadBytes:   int64(envOrInt("MAX_UPLOAD_MB", 50)) << 20,
		CorsOrigins:      parseCSV(envOr("CORS_ORIGINS", "")),
		LogDir:           envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays: retention,
		LogLevel:         strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(envOr("LOG_FORMAT", "json")),
		S3: S3Config{
			Endpoint:  envOr("S3_ENDPOINT", ""),
			Region:    envOr("S3_REGION", "us-east-1"),
			Bucket:    envOr("S3_BUCKET", ""),
			AccessKey: envOr("S3_ACCESS_KEY", ""),
			SecretKey: envOr("S3_SECRET_KEY", ""),
			UseSSL:    envOrBool("S3_USE_SSL", true),
		},
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// envRaw distinguishes an unset variable from one explicitly set to empty.
func envRaw(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(value)
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
