package service

import (
	"context"
	"fmt"

	"rfp-similarity/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// FitzExtractor extracts PDF text with MuPDF
type FitzExtractor struct {
	logger domain.Logger
}

// NewFitzExtractor creates a new MuPDF backed extractor
func NewFitzExtractor(logger domain.Logger) *FitzExtractor {
	return &FitzExtractor{
		logger: logger,
	}
}

// Extract returns the text of all pages joined with newlines
func (e *FitzExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	pages, err := e.ExtractPages(ctx, data)
	if err != nil {
		return "", err
	}
	return joinPages(pages), nil
}

// ExtractPages opens the PDF from memory and returns the text of each page.
// The document handle is released before returning.
func (e *FitzExtractor) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	if err := checkPDFHeader(data); err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", domain.ErrInvalidPDF, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		text, err := doc.Text(pageNum)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrInvalidPDF, pageNum+1, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}
