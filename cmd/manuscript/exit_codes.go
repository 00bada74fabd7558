package main

import (
	"context"
	"errors"
	"os"

	manuscript "github.com/alnah/go-manuscript"
	"github.com/alnah/go-manuscript/internal/metadata"
	"github.com/alnah/go-manuscript/internal/validate"
)

// Exit codes for the manuscript CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every requested output was written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or manuscript
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, manuscript.ErrBrowserConnect) ||
		errors.Is(err, manuscript.ErrPageCreate) ||
		errors.Is(err, manuscript.ErrPageLoad) ||
		errors.Is(err, manuscript.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, validate.ErrReadManuscript) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidManuscript) ||
		errors.Is(err, manuscript.ErrConfigNotFound) ||
		errors.Is(err, manuscript.ErrConfigParse) ||
		errors.Is(err, manuscript.ErrInvalidConfig) ||
		errors.Is(err, manuscript.ErrUnknownFormat) ||
		errors.Is(err, manuscript.ErrEmptyMarkdown) ||
		errors.Is(err, manuscript.ErrInvalidAssetPath) ||
		errors.Is(err, manuscript.ErrStyleNotFound) ||
		errors.Is(err, manuscript.ErrTemplateNotFound) ||
		errors.Is(err, metadata.ErrFrontMatter) {
		return ExitUsage
	}

	return ExitGeneral
}
