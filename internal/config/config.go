package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"rfp-similarity/internal/domain"

	"github.com/spf13/viper"
)

const (
	defaultServerPort      = "8000"
	defaultReferencePath   = "./templates/default_rfp_template.pdf"
	defaultShutdownTimeout = 10 * time.Second
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	LogFormat       string
	ReferencePath   string
	PDFEngine       string
	ErrorStatusMode string
	MaxUploadSize   int64
	StopWords       []string
	ShutdownTimeout time.Duration
	GopsEnabled     bool
}

// NewConfig creates a new configuration instance. Values come from defaults,
// then an optional config.yaml (directory from CONFIG_PATH), then the environment.
func NewConfig() domain.Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getEnvOrDefault("CONFIG_PATH", "."))
	v.AutomaticEnv()

	v.SetDefault("server_port", defaultServerPort)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("reference_path", defaultReferencePath)
	v.SetDefault("pdf_engine", "fitz")
	v.SetDefault("error_status_mode", string(domain.ErrorStatusLegacy))
	v.SetDefault("max_upload_size", "0")
	v.SetDefault("similarity_stop_words", "")
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout.String())
	v.SetDefault("gops_enabled", "false")

	// config.yaml is optional
	_ = v.ReadInConfig()

	// Cloud Run (and many PaaS) provide the listening port via PORT.
	// Keep SERVER_PORT for local/dev compatibility.
	port := v.GetString("port")
	if port == "" {
		port = v.GetString("server_port")
	}

	return &AppConfig{
		ServerPort:      port,
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		ReferencePath:   v.GetString("reference_path"),
		PDFEngine:       v.GetString("pdf_engine"),
		ErrorStatusMode: v.GetString("error_status_mode"),
		MaxUploadSize:   parseInt64OrDefault(v.GetString("max_upload_size"), 0),
		StopWords:       splitList(v.GetString("similarity_stop_words")),
		ShutdownTimeout: parseDurationOrDefault(v.GetString("shutdown_timeout"), defaultShutdownTimeout),
		GopsEnabled:     parseBoolOrDefault(v.GetString("gops_enabled"), false),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetReferencePath returns the location of the reference template
func (c *AppConfig) GetReferencePath() string {
	return c.ReferencePath
}

// GetPDFEngine returns the name of the PDF extraction engine
func (c *AppConfig) GetPDFEngine() string {
	return c.PDFEngine
}

// GetErrorStatusMode returns how analysis errors map to HTTP status codes
func (c *AppConfig) GetErrorStatusMode() string {
	return c.ErrorStatusMode
}

// GetMaxUploadSize returns the maximum upload size in bytes (0 means unlimited)
func (c *AppConfig) GetMaxUploadSize() int64 {
	return c.MaxUploadSize
}

// GetStopWords returns the stop words removed before scoring
func (c *AppConfig) GetStopWords() []string {
	return c.StopWords
}

// GetShutdownTimeout returns the graceful shutdown timeout
func (c *AppConfig) GetShutdownTimeout() time.Duration {
	return c.ShutdownTimeout
}

// IsGopsEnabled reports whether the gops diagnostics agent should run
func (c *AppConfig) IsGopsEnabled() bool {
	return c.GopsEnabled
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64OrDefault(value string, defaultValue int64) int64 {
	if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil && intValue >= 0 {
		return intValue
	}
	return defaultValue
}

func parseDurationOrDefault(value string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func parseBoolOrDefault(value string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
		return b
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
