package manuscript

import (
	"time"

	"github.com/alnah/go-manuscript/internal/config"
	"github.com/alnah/go-manuscript/internal/docxwriter"
	"github.com/alnah/go-manuscript/internal/pipeline"
)

// assemblySettings maps the configuration onto the assembler's settings.
// The document section only fills in what the manuscript itself lacks.
func assemblySettings(cfg *Config, now time.Time) (pipeline.Settings, error) {
	date, err := ResolveDate(cfg.Document.Date, now, cfg.Document.Language)
	if err != nil {
		return pipeline.Settings{}, err
	}
	return pipeline.Settings{
		DefaultTitle:  cfg.Document.Title,
		DefaultAuthor: cfg.Document.Author,
		DefaultDate:   date,
		Language:      cfg.Document.Language,

		TOC:          cfg.TOC.Enabled,
		TOCDepth:     cfg.TOC.Depth,
		TOCTitle:     cfg.TOC.Title,
		TOCPageBreak: cfg.TOC.PageBreakAfter,

		NumberSections: cfg.Numbering.Sections,
		NumberFormat:   cfg.Numbering.Format,
		NumberFigures:  cfg.Numbering.Figures,
		NumberTables:   cfg.Numbering.Tables,

		Bibliography:      cfg.Bibliography.Enabled,
		BibliographyStyle: cfg.Bibliography.Style,
		BibliographyTitle: cfg.Bibliography.Title,

		Index:      cfg.Index.Enabled,
		IndexTitle: cfg.Index.Title,
	}, nil
}

// docxStyle maps the configuration onto the DOCX typography.
func docxStyle(cfg *Config) docxwriter.Style {
	style := docxwriter.DefaultStyle()
	if cfg.Formatting.FontFamily != "" {
		style.FontFamily = cfg.Formatting.FontFamily
	}
	switch {
	case cfg.Styles.Body.FontSize > 0:
		style.BodySize = cfg.Styles.Body.FontSize
	case cfg.Formatting.FontSize > 0:
		style.BodySize = int(cfg.Formatting.FontSize + 0.5)
	}
	if cfg.Styles.Body.Alignment != "" {
		style.Alignment = cfg.Styles.Body.Alignment
	}
	for i, h := range []config.HeadingStyle{cfg.Styles.Heading1, cfg.Styles.Heading2, cfg.Styles.Heading3} {
		if h.FontSize > 0 {
			style.Headings[i].Size = h.FontSize
		}
		style.Headings[i].Bold = h.Bold
		if h.Color != "" {
			style.Headings[i].Color = h.Color
		}
	}
	size, _ := config.CanonicalPaperSize(cfg.Document.PaperSize)
	style.A4 = size == "A4" || size == ""
	return style
}

// outputFormats resolves the requested formats, falling back to
// output.formats.
func outputFormats(requested []Format, cfg *Config) ([]Format, error) {
	names := make([]string, 0, len(requested))
	for _, f := range requested {
		names = append(names, string(f))
	}
	if len(names) == 0 {
		names = cfg.Output.Formats
	}
	formats, err := ParseFormats(names)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return AllFormats, nil
	}
	return formats, nil
}
