package manuscript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-manuscript/internal/assets"
	"github.com/alnah/go-manuscript/internal/docxwriter"
	"github.com/alnah/go-manuscript/internal/pipeline"
)

// docxWriter abstracts the DOCX emitter to allow testing its failures.
type docxWriter interface {
	Write(ctx context.Context, doc *pipeline.Document, out io.Writer) error
}

var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ docxWriter                    = (*docxwriter.Writer)(nil)
)

// Converter runs the manuscript pipeline and its emitters.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is not safe for concurrent use; use ConverterPool instead.
type Converter struct {
	cfg         converterConfig
	config      *Config
	assetLoader AssetLoader
	bundle      *assets.Bundle
	html        *pipeline.HTMLEmitter
	docx        docxWriter
	pdf         pdfConverter
	now         func() time.Time
}

// NewConverter builds a Converter from the default configuration and opts.
// It fails when the assets or the page template cannot be loaded. No
// browser is started until the first PDF.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{timeout: defaultTimeout},
		config: DefaultConfig(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	bundle, err := assets.LoadBundle(c.assetLoader, c.cfg.extraCSS)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	c.bundle = bundle

	c.html, err = pipeline.NewHTMLEmitter(bundle.Template)
	if err != nil {
		return nil, fmt.Errorf("initializing HTML emitter: %w", err)
	}

	// Emitters may already be injected (e.g., by tests).
	if c.docx == nil {
		c.docx = docxwriter.New(docxStyle(c.config))
	}
	if c.pdf == nil {
		c.pdf = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Config returns the configuration the converter was built with.
func (c *Converter) Config() *Config {
	return c.config
}

// Convert assembles the manuscript once and runs every requested emitter.
// The returned result is non-nil whenever assembly succeeds; the error then
// joins the per-format failures (see ConvertResult.Err). The context is used
// for cancellation and timeout.
// A panic inside the pipeline is returned as an error.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	formats, err := outputFormats(input.Formats, c.config)
	if err != nil {
		return nil, err
	}

	settings, err := assemblySettings(c.config, c.now())
	if err != nil {
		return nil, fmt.Errorf("%w: document.date: %v", ErrInvalidConfig, err)
	}
	settings.Title = strings.TrimSpace(input.Title)
	if a := strings.TrimSpace(input.Author); a != "" {
		settings.Author = a
	}
	doc, err := pipeline.Assemble(ctx, input.Markdown, settings)
	if err != nil {
		return nil, fmt.Errorf("assembling manuscript: %w", err)
	}

	res := &ConvertResult{Title: doc.Title, Formats: formats}
	want := make(map[Format]bool, len(formats))
	for _, f := range formats {
		want[f] = true
	}

	// The PDF is printed from the HTML page, so a PDF request needs it too.
	var htmlContent string
	var htmlErr error
	if want[FormatHTML] || want[FormatPDF] {
		htmlContent, htmlErr = c.emitHTML(ctx, doc)
	}
	if want[FormatHTML] {
		if htmlErr != nil {
			res.fail(FormatHTML, htmlErr)
		} else {
			res.HTML = []byte(htmlContent)
		}
	}

	if want[FormatDOCX] {
		var buf bytes.Buffer
		if err := c.docx.Write(ctx, doc, &buf); err != nil {
			res.fail(FormatDOCX, fmt.Errorf("%w: %v", ErrDOCXGeneration, err))
		} else {
			res.DOCX = buf.Bytes()
		}
	}

	if want[FormatPDF] {
		if htmlErr != nil {
			res.fail(FormatPDF, htmlErr)
		} else if data, pages, err := c.emitPDF(ctx, htmlContent, input.SourceDir); err != nil {
			res.fail(FormatPDF, err)
		} else {
			res.PDF, res.PDFPages = data, pages
		}
	}

	return res, res.Err()
}

// emitHTML renders the standalone page with the configured CSS appended
// after the bundled styles.
func (c *Converter) emitHTML(ctx context.Context, doc *pipeline.Document) (string, error) {
	css := c.bundle.CSS + buildConfigCSS(c.config)
	out, err := c.html.Emit(ctx, doc, pipeline.Assets{CSS: css, Script: c.bundle.Script})
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLGeneration, err)
	}
	return out, nil
}

// emitPDF prints the page and verifies the produced bytes parse.
func (c *Converter) emitPDF(ctx context.Context, htmlContent, sourceDir string) ([]byte, int, error) {
	if sourceDir != "" {
		rewritten, err := pipeline.ResolveAssetPaths(htmlContent, sourceDir)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: rewriting relative paths: %v", ErrPDFGeneration, err)
		}
		htmlContent = rewritten
	}

	opts := &pdfOptions{
		PaperSize: c.config.Document.PaperSize,
		Margins:   c.config.Formatting.Margins,
	}
	data, err := c.pdf.ToPDF(ctx, htmlContent, opts)
	if err != nil {
		return nil, 0, err
	}
	pages, err := countPDFPages(data)
	if err != nil {
		return nil, 0, err
	}
	return data, pages, nil
}

// Close shuts down the browser, if one was started.
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}
