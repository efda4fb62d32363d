package service

import (
	"bytes"
	"context"
	"fmt"

	"rfp-similarity/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PureExtractor extracts PDF text without cgo using ledongthuc/pdf
type PureExtractor struct {
	logger domain.Logger
}

// NewPureExtractor creates a new pure Go extractor
func NewPureExtractor(logger domain.Logger) *PureExtractor {
	return &PureExtractor{
		logger: logger,
	}
}

// Extract returns the text of all pages joined with newlines
func (e *PureExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	pages, err := e.ExtractPages(ctx, data)
	if err != nil {
		return "", err
	}
	return joinPages(pages), nil
}

// ExtractPages returns the text of each page. Pages without a content
// dictionary yield an empty string.
func (e *PureExtractor) ExtractPages(ctx context.Context, data []byte) (pages []string, err error) {
	if err := checkPDFHeader(data); err != nil {
		return nil, err
	}

	// the reader panics on some malformed object streams
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", domain.ErrInvalidPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", domain.ErrInvalidPDF, err)
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.logger.Debug("PDF processing page", "page", i, "total", numPages)

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrInvalidPDF, i, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}
