package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	S3      S3Config
	Archive ArchiveConfig
	Batch   BatchConfig
	Export  ExportConfig
	CORS    CORSConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// S3Config holds object storage settings for the GRN document store.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// ArchiveConfig controls copying locally uploaded PDFs into object storage.
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Prefix  string `mapstructure:"prefix"`
}

// BatchConfig holds batch processing settings.
type BatchConfig struct {
	Concurrency    int `mapstructure:"concurrency"`
	DaysBack       int `mapstructure:"days_back"`
	MaxFiles       int `mapstructure:"max_files"`
	ResultCapacity int `mapstructure:"result_capacity"`
}

// ExportConfig holds export and master workbook settings.
type ExportConfig struct {
	MasterWorkbook string `mapstructure:"master_workbook"`
	MasterSheet    string `mapstructure:"master_sheet"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the GRNFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GRNFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "grnflow-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.prefix", "archive")

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.days_back", 30)
	v.SetDefault("batch.max_files", 100)
	v.SetDefault("batch.result_capacity", 16)

	// Export defaults
	v.SetDefault("export.master_workbook", "grn_master.xlsx")
	v.SetDefault("export.master_sheet", "GRN_Master")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "GRNFLOW_SERVER_PORT",
		"server.read_timeout":   "GRNFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "GRNFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":    "GRNFLOW_SERVER_ENVIRONMENT",
		"s3.enabled":            "GRNFLOW_S3_ENABLED",
		"s3.region":             "GRNFLOW_S3_REGION",
		"s3.bucket":             "GRNFLOW_S3_BUCKET",
		"s3.endpoint":           "GRNFLOW_S3_ENDPOINT",
		"s3.access_key":         "GRNFLOW_S3_ACCESS_KEY",
		"s3.secret_key":         "GRNFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "GRNFLOW_S3_MAX_FILE_SIZE_MB",
		"archive.enabled":       "GRNFLOW_ARCHIVE_ENABLED",
		"archive.prefix":        "GRNFLOW_ARCHIVE_PREFIX",
		"batch.concurrency":     "GRNFLOW_BATCH_CONCURRENCY",
		"batch.days_back":       "GRNFLOW_BATCH_DAYS_BACK",
		"batch.max_files":       "GRNFLOW_BATCH_MAX_FILES",
		"batch.result_capacity": "GRNFLOW_BATCH_RESULT_CAPACITY",
		"export.master_workbook": "GRNFLOW_EXPORT_MASTER_WORKBOOK",
		"export.master_sheet":    "GRNFLOW_EXPORT_MASTER_SHEET",
		"cors.allowed_origins":   "GRNFLOW_CORS_ALLOWED_ORIGINS",
		"log.level":              "GRNFLOW_LOG_LEVEL",
		"log.format":             "GRNFLOW_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GRNFLOW_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GRNFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled: v.GetBool("archive.enabled"),
		Prefix:  v.GetString("archive.prefix"),
	}
	cfg.Batch = BatchConfig{
		Concurrency:    v.GetInt("batch.concurrency"),
		DaysBack:       v.GetInt("batch.days_back"),
		MaxFiles:       v.GetInt("batch.max_files"),
		ResultCapacity: v.GetInt("batch.result_capacity"),
	}
	cfg.Export = ExportConfig{
		MasterWorkbook: v.GetString("export.master_workbook"),
		MasterSheet:    v.GetString("export.master_sheet"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	if cfg.Batch.Concurrency < 1 {
		return nil, fmt.Errorf("batch.concurrency must be at least 1")
	}

	return cfg, nil
}
