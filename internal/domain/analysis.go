package domain

import (
	"fmt"
	"strings"
	"time"
)

// AnalysisSuccessMessage is returned with every successful similarity score
const AnalysisSuccessMessage = "Similarity analysis with default template successful."

// ErrorStatusMode controls which HTTP status accompanies an analysis error payload
type ErrorStatusMode string

const (
	// ErrorStatusLegacy answers every analysis error with 200 and an error body.
	ErrorStatusLegacy ErrorStatusMode = "legacy"
	// ErrorStatusStrict answers with the status carried by the typed error.
	ErrorStatusStrict ErrorStatusMode = "strict"
)

// ParseErrorStatusMode converts a config value into an ErrorStatusMode
func ParseErrorStatusMode(value string) (ErrorStatusMode, error) {
	switch ErrorStatusMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ErrorStatusLegacy:
		return ErrorStatusLegacy, nil
	case ErrorStatusStrict:
		return ErrorStatusStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatusMode, value)
	}
}

// ReferenceDocument is the template every upload is compared against.
// It is built once at startup and never modified.
type ReferenceDocument struct {
	Source      string
	Text        string
	PageCount   int
	Fingerprint string
	LoadedAt    time.Time
}

// Info returns the public description of the reference document
func (r *ReferenceDocument) Info() ReferenceInfo {
	return ReferenceInfo{
		Source:      r.Source,
		PageCount:   r.PageCount,
		Characters:  len([]rune(r.Text)),
		Fingerprint: r.Fingerprint,
		LoadedAt:    r.LoadedAt,
	}
}

// ReferenceInfo describes the loaded reference document without its text
type ReferenceInfo struct {
	Source      string    `json:"source"`
	PageCount   int       `json:"page_count"`
	Characters  int       `json:"characters"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// AnalysisResult is the outcome of comparing an upload with the reference document
type AnalysisResult struct {
	SimilarityScore float64 `json:"similarity_score"`
	Message         string  `json:"message"`
}
