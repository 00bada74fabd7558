package config

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field length limits.
const (
	MaxTitleLength  = 250 // DOCX core properties cap titles near 255
	MaxAuthorLength = 200
	MaxDateLength   = 50
	MaxFontLength   = 100
	MaxHeadingTitle = 100
	MaxPathLength   = 4096
)

// Known layout and style choices. Anything else resolves to the default
// that follows each list.
var (
	PaperSizes         = []string{"A4", "Letter", "Legal"}
	Alignments         = []string{"left", "right", "center", "justify"}
	NumberingFormats   = []string{"decimal", "roman", "letter"}
	BibliographyStyles = []string{"numbered", "apa", "mla"}
)

const (
	DefaultPaperSize         = "A4"
	DefaultAlignment         = "justify"
	DefaultNumberingFormat   = "decimal"
	DefaultBibliographyStyle = "numbered"
)

// OutputFormats are the emitters a config can select.
var OutputFormats = []any{"html", "docx", "pdf"}

var (
	hexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	languagePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})?$`)
)

// Validate checks every section and wraps the first failure in ErrInvalidConfig.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    validation.Validatable
	}{
		{"document", c.Document},
		{"formatting", c.Formatting},
		{"styles", c.Styles},
		{"toc", c.TOC},
		{"bibliography", c.Bibliography},
		{"index", c.Index},
		{"output", c.Output},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, s.name, err)
		}
	}
	return nil
}

// Validate ensures document metadata defaults are well-formed.
func (d DocumentConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&d.Author, validation.Length(0, MaxAuthorLength)),
		validation.Field(&d.Date, validation.Length(0, MaxDateLength)),
		validation.Field(&d.Language, validation.Match(languagePattern)),
	)
}

// CanonicalPaperSize maps a case-insensitive paper size to its canonical spelling.
func CanonicalPaperSize(s string) (string, bool) {
	return canonical(s, PaperSizes)
}

func canonical(value string, known []string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, k := range known {
		if strings.EqualFold(k, value) {
			return k, true
		}
	}
	return "", false
}

func choose(value string, known []string, def string) string {
	if c, ok := canonical(value, known); ok {
		return c
	}
	return def
}

// resolveChoices rewrites layout and style choices to their canonical
// spelling, or to the default when the value is not one of the known ones.
func (c *Config) resolveChoices() {
	c.Document.PaperSize = choose(c.Document.PaperSize, PaperSizes, DefaultPaperSize)
	c.Styles.Body.Alignment = choose(c.Styles.Body.Alignment, Alignments, DefaultAlignment)
	c.Numbering.Format = choose(c.Numbering.Format, NumberingFormats, DefaultNumberingFormat)
	c.Bibliography.Style = choose(c.Bibliography.Style, BibliographyStyles, DefaultBibliographyStyle)
}

// Validate ensures typography values are in printable ranges.
func (f FormattingConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FontFamily, validation.Required, validation.Length(1, MaxFontLength)),
		validation.Field(&f.FontSize, validation.Required, validation.Min(6.0), validation.Max(72.0)),
		validation.Field(&f.LineSpacing, validation.Required, validation.Min(0.5), validation.Max(4.0)),
		validation.Field(&f.Margins),
	)
}

// Validate ensures margins are between 0 and 10 cm.
func (m MarginsConfig) Validate() error {
	rules := []validation.Rule{validation.Min(0.0), validation.Max(10.0)}
	return validation.ValidateStruct(&m,
		validation.Field(&m.Top, rules...),
		validation.Field(&m.Bottom, rules...),
		validation.Field(&m.Left, rules...),
		validation.Field(&m.Right, rules...),
	)
}

// Validate checks every element style.
func (s StylesConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Heading1),
		validation.Field(&s.Heading2),
		validation.Field(&s.Heading3),
		validation.Field(&s.Body),
	)
}

// Validate ensures a heading style has a sane size and hex color.
func (h HeadingStyle) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.FontSize, validation.Required, validation.Min(6), validation.Max(72)),
		validation.Field(&h.Color, validation.Match(hexColorPattern)),
	)
}

// Validate ensures the body font size is printable.
func (b BodyStyle) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.FontSize, validation.Required, validation.Min(6), validation.Max(72)),
	)
}

// Validate ensures the TOC depth is a heading level.
func (t TOCConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Depth, validation.Required, validation.Min(1), validation.Max(6)),
		validation.Field(&t.Title, validation.Length(0, MaxHeadingTitle)),
	)
}

// Validate ensures the bibliography title fits.
func (b BibliographyConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Length(0, MaxHeadingTitle)),
	)
}

// Validate ensures the index title fits.
func (i IndexConfig) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Length(0, MaxHeadingTitle)),
	)
}

// Validate ensures at least one known output format is selected.
func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Formats, validation.Required, validation.Each(validation.In(OutputFormats...))),
		validation.Field(&o.OutputDir, validation.Length(0, MaxPathLength)),
	)
}
