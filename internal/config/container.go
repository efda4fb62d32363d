package config

import (
	"context"
	"fmt"

	"rfp-similarity/internal/domain"
	"rfp-similarity/internal/service"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	StatusMode      domain.ErrorStatusMode
	Reference       *domain.ReferenceDocument
	AnalysisService domain.Analyzer
}

// NewContainer wires every dependency and loads the reference document.
// It fails instead of returning a container that cannot serve requests.
func NewContainer(ctx context.Context, config domain.Config, logger domain.Logger) (*Container, error) {
	statusMode, err := domain.ParseErrorStatusMode(config.GetErrorStatusMode())
	if err != nil {
		return nil, err
	}

	extractor, err := service.NewTextExtractor(config.GetPDFEngine(), logger)
	if err != nil {
		return nil, err
	}

	scorer := service.NewTFIDFScorer(service.WithStopWords(config.GetStopWords()))

	loader := service.NewReferenceLoader(extractor, logger)
	reference, err := loader.Load(ctx, config.GetReferencePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load reference document: %w", err)
	}

	analysisService := service.NewAnalysisService(
		extractor,
		scorer,
		reference,
		config.GetMaxUploadSize(),
		logger,
	)

	return &Container{
		Config:          config,
		Logger:          logger,
		StatusMode:      statusMode,
		Reference:       reference,
		AnalysisService: analysisService,
	}, nil
}
