package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"rfp-similarity/internal/domain"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

var fingerprintKey = []byte("rfp-similarity-reference-key-v01")

// ReferenceLoader reads the reference template once and extracts its text
type ReferenceLoader struct {
	fs        afs.Service
	extractor domain.TextExtractor
	logger    domain.Logger
}

// NewReferenceLoader creates a loader backed by the default AFS service
func NewReferenceLoader(extractor domain.TextExtractor, logger domain.Logger) *ReferenceLoader {
	return &ReferenceLoader{
		fs:        afs.New(),
		extractor: extractor,
		logger:    logger,
	}
}

// Load fetches the document at location (a path or URL) and returns it as an
// immutable reference. A missing document yields domain.ErrReferenceNotFound.
func (l *ReferenceLoader) Load(ctx context.Context, location string) (*domain.ReferenceDocument, error) {
	URL, err := normalizeLocation(location)
	if err != nil {
		return nil, err
	}

	exists, err := l.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check reference document %s: %w", location, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w at: %s", domain.ErrReferenceNotFound, location)
	}

	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference document %s: %w", location, err)
	}

	pages, err := l.extractor.ExtractPages(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract reference document %s: %w", location, err)
	}

	sum, err := fingerprint(data)
	if err != nil {
		return nil, err
	}

	ref := &domain.ReferenceDocument{
		Source:      location,
		Text:        joinPages(pages),
		PageCount:   len(pages),
		Fingerprint: sum,
		LoadedAt:    time.Now().UTC(),
	}
	l.logger.Info("Reference document loaded",
		"source", location,
		"pages", ref.PageCount,
		"bytes", len(data),
		"fingerprint", ref.Fingerprint,
	)
	return ref, nil
}

// normalizeLocation turns relative and absolute OS paths into file URLs and
// leaves URLs with a scheme untouched.
func normalizeLocation(location string) (string, error) {
	norm := location
	if url.Scheme(norm, "") == "" && url.IsRelative(norm) {
		abs, err := filepath.Abs(norm)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path for %s: %w", location, err)
		}
		norm = abs
	}
	if url.Scheme(norm, "") == "" && !url.IsRelative(norm) {
		norm = url.ToFileURL(norm)
	}
	return norm, nil
}

func fingerprint(data []byte) (string, error) {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
