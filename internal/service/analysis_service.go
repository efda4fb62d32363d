package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"rfp-similarity/internal/domain"
	apperrors "rfp-similarity/pkg/errors"
)

// AnalysisService compares uploaded documents with the reference document
type AnalysisService struct {
	extractor     domain.TextExtractor
	scorer        domain.SimilarityScorer
	reference     *domain.ReferenceDocument
	maxUploadSize int64
	logger        domain.Logger
}

// NewAnalysisService creates a new analysis service. maxUploadSize <= 0 disables the limit.
func NewAnalysisService(
	extractor domain.TextExtractor,
	scorer domain.SimilarityScorer,
	reference *domain.ReferenceDocument,
	maxUploadSize int64,
	logger domain.Logger,
) *AnalysisService {
	return &AnalysisService{
		extractor:     extractor,
		scorer:        scorer,
		reference:     reference,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Reference returns the reference document uploads are scored against
func (s *AnalysisService) Reference() *domain.ReferenceDocument {
	return s.reference
}

// Analyze reads the upload, extracts its text and scores it against the
// reference text. Every failure is returned as an *apperrors.AppError.
func (s *AnalysisService) Analyze(ctx context.Context, upload io.Reader) (result *domain.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = apperrors.NewInternalError("similarity analysis failed", fmt.Errorf("panic: %v", r))
		}
	}()

	data, err := s.readUpload(upload)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Upload received", "bytes", len(data))

	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPDF) {
			return nil, apperrors.NewProcessingError("failed to extract text from PDF", err)
		}
		return nil, apperrors.NewInternalError("failed to extract text from PDF", err)
	}

	score, err := s.scorer.Score(text, s.reference.Text)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute similarity", err)
	}

	return &domain.AnalysisResult{
		SimilarityScore: score,
		Message:         domain.AnalysisSuccessMessage,
	}, nil
}

func (s *AnalysisService) readUpload(upload io.Reader) ([]byte, error) {
	if upload == nil {
		return nil, apperrors.NewValidationError("RFP file is required")
	}

	reader := upload
	if s.maxUploadSize > 0 {
		reader = io.LimitReader(upload, s.maxUploadSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewValidationError("failed to read upload", err.Error())
	}
	if s.maxUploadSize > 0 && int64(len(data)) > s.maxUploadSize {
		return nil, apperrors.NewTooLargeError(
			fmt.Sprintf("upload is larger than %d bytes", s.maxUploadSize),
			domain.ErrUploadTooLarge,
		)
	}
	return data, nil
}
