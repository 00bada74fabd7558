package manuscript

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Format is an output format.
type Format string

// Supported output formats, in emission order.
const (
	FormatHTML Format = "html"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// AllFormats lists every supported format in emission order.
var AllFormats = []Format{FormatHTML, FormatDOCX, FormatPDF}

// ParseFormats parses format names such as "html", "PDF" or "docx".
// Duplicates are dropped and the result follows emission order.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		if f == "" {
			continue
		}
		if !f.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
		}
		seen[f] = true
	}
	out := make([]Format, 0, len(seen))
	for _, f := range AllFormats {
		if seen[f] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (f Format) valid() bool {
	for _, known := range AllFormats {
		if f == known {
			return true
		}
	}
	return false
}

// Input contains the data for one conversion.
type Input struct {
	Markdown string // required
	// SourceDir resolves relative image paths for the PDF renderer.
	SourceDir string
	// Formats selects emitters; empty means the configured output.formats.
	Formats []Format
	// Title overrides the metadata, H1 and configured titles.
	Title string
	// Author overrides the document and configured author.
	Author string
}

// FormatError records the failure of one emitter.
type FormatError struct {
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ConvertResult holds every output a conversion produced.
// A format that failed has a nil output and an entry in Errors.
type ConvertResult struct {
	Title    string
	HTML     []byte
	DOCX     []byte
	PDF      []byte
	PDFPages int

	// Formats lists the requested formats in emission order.
	Formats []Format
	Errors  map[Format]error
}

// Output returns the bytes produced for f.
func (r *ConvertResult) Output(f Format) []byte {
	switch f {
	case FormatHTML:
		return r.HTML
	case FormatDOCX:
		return r.DOCX
	case FormatPDF:
		return r.PDF
	}
	return nil
}

// Err joins the per-format errors in emission order.
// Returns nil when every requested format succeeded.
func (r *ConvertResult) Err() error {
	var errs []error
	for _, f := range r.Formats {
		if err, ok := r.Errors[f]; ok {
			errs = append(errs, &FormatError{Format: f, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (r *ConvertResult) fail(f Format, err error) {
	if r.Errors == nil {
		r.Errors = make(map[Format]error)
	}
	r.Errors[f] = err
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds converter configuration.
type converterConfig struct {
	timeout   time.Duration
	assetPath string
	extraCSS  string
}

// defaultTimeout is the default PDF generation timeout.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF generation timeout. Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		if d > 0 {
			c.cfg.timeout = d
		}
	}
}

// WithConfig sets the conversion configuration. Default is DefaultConfig().
func WithConfig(cfg *Config) Option {
	return func(c *Converter) {
		if cfg != nil {
			c.config = cfg
		}
	}
}

// WithAssetPath sets a directory whose styles/, templates/ and scripts/
// files override the embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// WithExtraCSS appends CSS after the built-in and configured styles.
func WithExtraCSS(css string) Option {
	return func(c *Converter) {
		c.cfg.extraCSS = css
	}
}
