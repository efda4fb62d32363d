package domain

import (
	"context"
	"io"
	"time"
)

// TextExtractor turns raw PDF bytes into text
type TextExtractor interface {
	// Extract returns the text of every page joined with newlines, in page order.
	Extract(ctx context.Context, data []byte) (string, error)
	// ExtractPages returns the text of every page in page order.
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}

// SimilarityScorer compares two texts and returns a percentage in [0, 100]
type SimilarityScorer interface {
	Score(candidate, reference string) (float64, error)
}

// Analyzer runs an uploaded document through extraction and scoring
type Analyzer interface {
	Analyze(ctx context.Context, upload io.Reader) (*AnalysisResult, error)
	Reference() *ReferenceDocument
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetLogFormat() string
	GetReferencePath() string
	GetPDFEngine() string
	GetErrorStatusMode() string
	GetMaxUploadSize() int64
	GetStopWords() []string
	GetShutdownTimeout() time.Duration
	IsGopsEnabled() bool
}
