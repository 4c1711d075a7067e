package main

import (
	"errors"
	"os"

	inlinehtml "github.com/alnah/go-inlinehtml"
	"github.com/alnah/go-inlinehtml/internal/config"
	"github.com/alnah/go-inlinehtml/internal/fileutil"
	"github.com/alnah/go-inlinehtml/internal/templates"
)

// Exit codes for the inlinehtml CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // All templates rendered and inlined
	ExitGeneral    = 1 // General/unexpected error, render failures
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // Missing directories, unreadable or unwritable files
	ExitUnresolved = 4 // Markers left unresolved (check, --strict)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUnresolvedMarkers) {
		return ExitUnresolved
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrInvalidDir) ||
		errors.Is(err, fileutil.ErrPathTraversal) ||
		errors.Is(err, inlinehtml.ErrAssetRead) ||
		errors.Is(err, inlinehtml.ErrAssetWrite) ||
		errors.Is(err, templates.ErrTemplateRead) ||
		errors.Is(err, templates.ErrTemplateNotFound) ||
		errors.Is(err, ErrNoAssets) ||
		errors.Is(err, ErrNoTemplates) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoAssetDir) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, inlinehtml.ErrInvalidSyntax) ||
		errors.Is(err, inlinehtml.ErrUnknownSyntax) ||
		errors.Is(err, inlinehtml.ErrInvalidMode) ||
		errors.Is(err, inlinehtml.ErrDuplicateName) ||
		errors.Is(err, inlinehtml.ErrInvalidPattern) ||
		errors.Is(err, templates.ErrInvalidPattern) {
		return ExitUsage
	}

	return ExitGeneral
}
