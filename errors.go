package manuscript

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrUnknownFormat = errors.New("unknown output format")

	// Emitter errors.
	ErrHTMLGeneration = errors.New("HTML generation failed")
	ErrDOCXGeneration = errors.New("DOCX generation failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrPDFVerify      = errors.New("generated PDF is unreadable")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	ErrInvalidAssetPath = errors.New("invalid asset path")
)
