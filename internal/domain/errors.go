package domain

import "errors"

// Domain errors
var (
	ErrInvalidPDF        = errors.New("invalid PDF document")
	ErrReferenceNotFound = errors.New("reference document not found")
	ErrUploadTooLarge    = errors.New("upload exceeds maximum size")
	ErrEmptyVocabulary   = errors.New("empty vocabulary")
	ErrUnknownEngine     = errors.New("unknown PDF engine")
	ErrUnknownStatusMode = errors.New("unknown error status mode")
)
