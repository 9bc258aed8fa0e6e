package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	Report   ReportConfig
	Pipeline PipelineConfig
	Ingest   IngestConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr   string
	BaseURL    string // external origin used to derive absolute file URLs
	APIToken   string // opaque bearer token gating the reports listing
	ContentDir string // stored sheet images and rendered reports
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string
	Language    string
	TessdataDir string
	PSM         int
	OEM         int
}

// ReportConfig holds report rendering configuration
type ReportConfig struct {
	// FontPath points at a UTF-8 capable TTF so reports can carry the full
	// character repertoire of the OCR language. Empty falls back to the
	// built-in Latin-only font.
	FontPath string
}

// PipelineConfig holds worker queue configuration
type PipelineConfig struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// IngestConfig holds drop-folder ingestion configuration
type IngestConfig struct {
	WatchDir string // empty disables the watcher
	Debounce time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "file:attendance.db?_pragma=busy_timeout(5000)"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:   getEnv("HTTP_ADDR", ":8000"),
			BaseURL:    getEnv("HOST", "http://localhost:8000"),
			APIToken:   getEnv("API_TOKEN", ""),
			ContentDir: getEnv("CONTENT_DIR", "files"),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT", "tesseract"),
			Language:    getEnv("OCR_LANG", "mkd"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("OCR_PSM", 0),
			OEM:         getEnvAsInt("OCR_OEM", 0),
		},
		Report: ReportConfig{
			FontPath: getEnv("REPORT_FONT", ""),
		},
		Pipeline: PipelineConfig{
			Workers:        getEnvAsInt("PIPELINE_WORKERS", 4),
			QueueSize:      getEnvAsInt("PIPELINE_QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("PIPELINE_TIMEOUT", 3*time.Minute),
		},
		Ingest: IngestConfig{
			WatchDir: getEnv("WATCH_DIR", ""),
			Debounce: getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", nil)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", nil)
	}
	if c.Server.ContentDir == "" {
		return NewAppError("CONFIG_ERROR", "CONTENT_DIR is required", nil)
	}
	if c.Pipeline.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "PIPELINE_WORKERS must be positive", nil)
	}
	// The built-in PDF fonts only carry basic Latin. A non-Latin OCR
	// language without a UTF-8 font would render every name as mojibake.
	if c.Report.FontPath == "" && !latinScript(c.OCR.Language) {
		return NewAppError("CONFIG_ERROR", "REPORT_FONT is required for OCR_LANG "+c.OCR.Language, nil)
	}
	return nil
}

// latinScriptLanguages lists the tesseract language models whose output fits
// the built-in Latin PDF fonts.
var latinScriptLanguages = map[string]bool{
	"eng": true, "spa": true, "fra": true, "deu": true, "ita": true,
	"por": true, "nld": true, "swe": true, "dan": true, "nor": true,
	"fin": true, "pol": true, "ces": true, "hrv": true, "slv": true,
	"ron": true, "hun": true, "tur": true,
}

// latinScript reports whether every component of a tesseract language spec
// (e.g. "mkd+eng") is a Latin-script model.
func latinScript(lang string) bool {
	for _, part := range strings.Split(lang, "+") {
		if !latinScriptLanguages[part] {
			return false
		}
	}
	return true
}
