package inlinehtml

import (
	"errors"

	"github.com/alnah/go-inlinehtml/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNilStore       = errors.New("asset store is nil")
	ErrAssetNotFound  = errors.New("asset not found")
	ErrAssetRead      = errors.New("failed to read asset")
	ErrAssetWrite     = errors.New("failed to write asset")
	ErrInvalidPattern = errors.New("invalid asset pattern")
	ErrHookFailed     = errors.New("template hook failed")

	// Marker syntax errors, shared with the scanning pipeline.
	ErrInvalidSyntax = pipeline.ErrInvalidSyntax
	ErrUnknownSyntax = pipeline.ErrUnknownSyntax
	ErrInvalidMode   = pipeline.ErrInvalidMode
	ErrDuplicateName = pipeline.ErrDuplicateName
)
