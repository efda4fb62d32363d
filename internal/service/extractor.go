package service

import (
	"bytes"
	"fmt"
	"strings"

	"rfp-similarity/internal/domain"
)

// Supported PDF engines
const (
	EngineFitz = "fitz"
	EnginePure = "pure"
)

// NewTextExtractor returns the extraction engine registered under name
func NewTextExtractor(name string, logger domain.Logger) (domain.TextExtractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineFitz:
		return NewFitzExtractor(logger), nil
	case EnginePure:
		return NewPureExtractor(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEngine, name)
	}
}

// joinPages concatenates page texts in page order.
// Empty pages still contribute a separator.
func joinPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// pdfHeaderWindow is how far into the input the "%PDF-" marker may appear.
const pdfHeaderWindow = 1024

// checkPDFHeader rejects input that does not carry a PDF header, so every
// engine treats uploads as PDF regardless of what else it could open.
func checkPDFHeader(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", domain.ErrInvalidPDF)
	}
	window := data
	if len(window) > pdfHeaderWindow {
		window = window[:pdfHeaderWindow]
	}
	if !bytes.Contains(window, []byte("%PDF-")) {
		return fmt.Errorf("%w: missing %%PDF- header", domain.ErrInvalidPDF)
	}
	return nil
}
