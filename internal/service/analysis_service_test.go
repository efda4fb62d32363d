package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"rfp-similarity/internal/domain"
	"rfp-similarity/internal/pdftest"
	apperrors "rfp-similarity/pkg/errors"
)

// Mock implementations for testing
type MockLogger struct {
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.messages = append(m.messages, "INFO: "+msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.messages = append(m.messages, "ERROR: "+msg)
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.messages = append(m.messages, "DEBUG: "+msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.messages = append(m.messages, "WARN: "+msg)
}

type stubExtractor struct {
	text  string
	err   error
	panic string
	got   []byte
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	s.got = data
	if s.panic != "" {
		panic(s.panic)
	}
	return s.text, s.err
}

func (s *stubExtractor) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	text, err := s.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	return []string{text}, nil
}

type stubScorer struct {
	score float64
	err   error
}

func (s *stubScorer) Score(candidate, reference string) (float64, error) {
	return s.score, s.err
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func testReference(text string) *domain.ReferenceDocument {
	return &domain.ReferenceDocument{Source: "memory", Text: text, PageCount: 1}
}

func TestAnalysisService_EndToEnd(t *testing.T) {
	logger := NewMockLogger()
	extractor := NewPureExtractor(logger)

	refText, err := extractor.Extract(context.Background(), pdftest.Build("alpha beta gamma"))
	if err != nil {
		t.Fatalf("failed to extract reference: %v", err)
	}
	svc := NewAnalysisService(extractor, NewTFIDFScorer(), testReference(refText), 0, logger)

	result, err := svc.Analyze(context.Background(), strings.NewReader(string(pdftest.Build("alpha beta gamma"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SimilarityScore != 100 {
		t.Fatalf("expected score 100, got %v", result.SimilarityScore)
	}
	if result.Message != domain.AnalysisSuccessMessage {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestAnalysisService_PassesUploadAndReference(t *testing.T) {
	extractor := &stubExtractor{text: "candidate"}
	scorer := &recordingScorer{}
	svc := NewAnalysisService(extractor, scorer, testReference("template"), 0, NewMockLogger())

	if _, err := svc.Analyze(context.Background(), strings.NewReader("%PDF-raw")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(extractor.got) != "%PDF-raw" {
		t.Fatalf("expected upload bytes to reach extractor, got %q", extractor.got)
	}
	if scorer.candidate != "candidate" || scorer.reference != "template" {
		t.Fatalf("unexpected scorer inputs: %q, %q", scorer.candidate, scorer.reference)
	}
}

type recordingScorer struct {
	candidate, reference string
}

func (r *recordingScorer) Score(candidate, reference string) (float64, error) {
	r.candidate, r.reference = candidate, reference
	return 42, nil
}

func TestAnalysisService_Errors(t *testing.T) {
	cases := []struct {
		name      string
		extractor *stubExtractor
		scorer    *stubScorer
		upload    io.Reader
		maxSize   int64
		errType   apperrors.ErrorType
		status    int
		contains  string
	}{
		{
			name:      "invalid pdf",
			extractor: &stubExtractor{err: fmt.Errorf("%w: missing header", domain.ErrInvalidPDF)},
			scorer:    &stubScorer{},
			upload:    strings.NewReader("nope"),
			errType:   apperrors.ErrorTypeProcessing,
			status:    http.StatusUnprocessableEntity,
			contains:  "missing header",
		},
		{
			name:      "extractor internal failure",
			extractor: &stubExtractor{err: context.Canceled},
			scorer:    &stubScorer{},
			upload:    strings.NewReader("%PDF-"),
			errType:   apperrors.ErrorTypeInternal,
			status:    http.StatusInternalServerError,
			contains:  "context canceled",
		},
		{
			name:      "scoring failure",
			extractor: &stubExtractor{text: "text"},
			scorer:    &stubScorer{err: errors.New("unsupported input")},
			upload:    strings.NewReader("%PDF-"),
			errType:   apperrors.ErrorTypeInternal,
			status:    http.StatusInternalServerError,
			contains:  "unsupported input",
		},
		{
			name:      "panic recovered",
			extractor: &stubExtractor{panic: "nil dictionary"},
			scorer:    &stubScorer{},
			upload:    strings.NewReader("%PDF-"),
			errType:   apperrors.ErrorTypeInternal,
			status:    http.StatusInternalServerError,
			contains:  "nil dictionary",
		},
		{
			name:      "unreadable upload",
			extractor: &stubExtractor{},
			scorer:    &stubScorer{},
			upload:    failingReader{},
			errType:   apperrors.ErrorTypeValidation,
			status:    http.StatusBadRequest,
			contains:  "connection reset",
		},
		{
			name:      "missing upload",
			extractor: &stubExtractor{},
			scorer:    &stubScorer{},
			upload:    nil,
			errType:   apperrors.ErrorTypeValidation,
			status:    http.StatusBadRequest,
			contains:  "RFP file is required",
		},
		{
			name:      "upload too large",
			extractor: &stubExtractor{},
			scorer:    &stubScorer{},
			upload:    strings.NewReader("0123456789"),
			maxSize:   5,
			errType:   apperrors.ErrorTypeTooLarge,
			status:    http.StatusRequestEntityTooLarge,
			contains:  "larger than 5 bytes",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAnalysisService(tc.extractor, tc.scorer, testReference("ref"), tc.maxSize, NewMockLogger())

			result, err := svc.Analyze(context.Background(), tc.upload)
			if err == nil {
				t.Fatalf("expected error, got result %+v", result)
			}
			if result != nil {
				t.Fatalf("expected nil result on error")
			}
			if !apperrors.IsType(err, tc.errType) {
				t.Fatalf("expected error type %s, got %v", tc.errType, err)
			}
			if got := apperrors.GetStatusCode(err); got != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, got)
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Fatalf("expected error to contain %q, got %q", tc.contains, err.Error())
			}
		})
	}
}

func TestAnalysisService_UploadAtLimit(t *testing.T) {
	extractor := &stubExtractor{text: "ok"}
	svc := NewAnalysisService(extractor, &stubScorer{score: 12.5}, testReference("ref"), 5, NewMockLogger())

	result, err := svc.Analyze(context.Background(), strings.NewReader("12345"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SimilarityScore != 12.5 {
		t.Fatalf("unexpected score: %v", result.SimilarityScore)
	}
	if len(extractor.got) != 5 {
		t.Fatalf("expected full upload, got %d bytes", len(extractor.got))
	}
}

func TestAnalysisService_Reference(t *testing.T) {
	ref := testReference("ref")
	svc := NewAnalysisService(&stubExtractor{}, &stubScorer{}, ref, 0, NewMockLogger())
	if svc.Reference() != ref {
		t.Fatalf("expected the injected reference document")
	}
}
