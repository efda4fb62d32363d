// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"rfp-similarity/internal/domain"
	apperrors "rfp-similarity/pkg/errors"
)

// UploadField is the multipart field holding the uploaded RFP
const UploadField = "rfp"

// multipartOverhead is the room left above the upload cap for the
// multipart envelope (boundaries, part headers, other fields).
const multipartOverhead = 64 << 10

// AnalysisHandler handles similarity analysis requests
type AnalysisHandler struct {
	analyzer      domain.Analyzer
	statusMode    domain.ErrorStatusMode
	maxUploadSize int64
	logger        domain.Logger
}

// NewAnalysisHandler creates a new analysis handler. maxUploadSize <= 0
// leaves the request body unbounded.
func NewAnalysisHandler(
	analyzer domain.Analyzer,
	statusMode domain.ErrorStatusMode,
	maxUploadSize int64,
	logger domain.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:      analyzer,
		statusMode:    statusMode,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Analyze scores the uploaded PDF against the reference document.
// Failures are reported as {"error": ...}; see writeFailure for the status.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	requestID, _ := GetRequestIDFromContext(r)

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	}

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeFailure(w, requestID, apperrors.NewTooLargeError(
				fmt.Sprintf("upload is larger than %d bytes", h.maxUploadSize),
				domain.ErrUploadTooLarge,
			))
			return
		}

		// A request without the field never reaches analysis and is
		// rejected as unprocessable in every status mode.
		validationErr := apperrors.NewValidationError(
			"RFP file is required",
			fmt.Sprintf("form field %q: %v", UploadField, err),
		)
		validationErr.StatusCode = http.StatusUnprocessableEntity
		h.writeStatus(w, requestID, validationErr.StatusCode, validationErr)
		return
	}
	defer file.Close()

	result, err := h.analyzer.Analyze(r.Context(), file)
	if err != nil {
		h.writeFailure(w, requestID, err)
		return
	}

	h.logger.Info("Similarity analysis completed",
		"request_id", requestID,
		"filename", header.Filename,
		"size", header.Size,
		"similarity_score", result.SimilarityScore,
	)
	writeJSON(w, http.StatusOK, result)
}

// GetReference describes the loaded reference document
func (h *AnalysisHandler) GetReference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analyzer.Reference().Info())
}

// writeFailure writes the error payload. In legacy mode the status is always
// 200 and callers must inspect the body; strict mode uses the error's status.
func (h *AnalysisHandler) writeFailure(w http.ResponseWriter, requestID string, err error) {
	status := http.StatusOK
	if h.statusMode == domain.ErrorStatusStrict {
		status = apperrors.GetStatusCode(err)
	}
	h.writeStatus(w, requestID, status, err)
}

func (h *AnalysisHandler) writeStatus(w http.ResponseWriter, requestID string, status int, err error) {
	h.logger.Warn("Similarity analysis failed",
		"request_id", requestID,
		"status", status,
		"error", err,
	)
	writeError(w, status, err.Error())
}
