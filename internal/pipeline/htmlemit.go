package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/alnah/go-manuscript/internal/metadata"
)

// Sentinel errors for HTML emission.
var (
	ErrTemplateParse  = errors.New("failed to parse document template")
	ErrTemplateRender = errors.New("failed to render document template")
)

// HTMLEmitter serialises an assembled Document as a standalone HTML5 page.
type HTMLEmitter struct {
	converter HTMLConverter
	css       CSSInjector
	script    ScriptInjector
	tmpl      *template.Template
}

// NewHTMLEmitter parses the page template.
func NewHTMLEmitter(templateSource string) (*HTMLEmitter, error) {
	tmpl, err := template.New("manuscript").Parse(templateSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &HTMLEmitter{
		converter: NewGoldmarkConverter(),
		css:       &CSSInjection{},
		script:    &ScriptInjection{},
		tmpl:      tmpl,
	}, nil
}

// Assets are the stylesheet and script embedded in every page.
type Assets struct {
	CSS    string
	Script string
}

// page is the template data.
type page struct {
	Lang         string
	Title        string
	Fields       []metadata.Field
	TOC          []TOCEntry
	TOCTitle     string
	TOCPageBreak bool
	Preamble     template.HTML
	Sections     []renderedSection

	Figures      []ListEntry
	FiguresTitle string
	Tables       []ListEntry
	TablesTitle  string

	References        []metadata.Reference
	BibliographyTitle string
	BibliographyStyle string

	Index      []IndexEntry
	IndexTitle string
}

type renderedSection struct {
	Level   int
	Anchor  string
	Heading template.HTML
	Body    template.HTML
}

// Emit converts every section, fills the page template and embeds the
// assets. Converted markdown is safe HTML (raw HTML is never passed
// through) and fragments escape their own values.
func (e *HTMLEmitter) Emit(ctx context.Context, doc *Document, assets Assets) (string, error) {
	p := page{
		Lang:              doc.Language,
		Title:             doc.Title,
		Fields:            doc.Metadata,
		TOC:               doc.TOC,
		TOCTitle:          doc.Settings.TOCTitle,
		TOCPageBreak:      doc.Settings.TOCPageBreak,
		Figures:           doc.Figures,
		FiguresTitle:      doc.FiguresTitle(),
		Tables:            doc.Tables,
		TablesTitle:       doc.TablesTitle(),
		References:        doc.References,
		BibliographyTitle: doc.Settings.BibliographyTitle,
		BibliographyStyle: normalizeStyle(doc.Settings.BibliographyStyle),
		Index:             doc.Index,
		IndexTitle:        doc.Settings.IndexTitle,
	}

	preamble, err := e.body(ctx, doc, doc.Preamble)
	if err != nil {
		return "", err
	}
	p.Preamble = preamble

	for _, sec := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		body, err := e.body(ctx, doc, sec.Content)
		if err != nil {
			return "", err
		}
		p.Sections = append(p.Sections, renderedSection{
			Level:   sec.Level,
			Anchor:  sec.Anchor,
			Heading: headingHTML(sec),
			Body:    body,
		})
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	out := e.css.InjectCSS(ctx, buf.String(), assets.CSS)
	out = e.script.InjectScript(ctx, out, assets.Script)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return out, nil
}

// body converts one block of processed markdown and swaps its tokens for
// fragment HTML. Blank content gives nothing.
func (e *HTMLEmitter) body(ctx context.Context, doc *Document, content string) (template.HTML, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	out, err := e.converter.ToFragment(ctx, content)
	if err != nil {
		return "", err
	}
	return template.HTML(ConvertMarkPlaceholders(doc.Registry.Expand(out))), nil // #nosec G203 -- goldmark output without raw HTML
}

// headingHTML renders the section heading, or nothing for the title section.
func headingHTML(sec SectionView) template.HTML {
	if !sec.ShowHeading {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<h%d>", sec.HeadingLevel)
	if sec.Number != "" {
		fmt.Fprintf(&b, `<span class="section-number">%s</span> `, html.EscapeString(sec.Number))
	}
	b.WriteString(html.EscapeString(PlainText(sec.Title)))
	fmt.Fprintf(&b, "</h%d>\n", sec.HeadingLevel)
	return template.HTML(b.String()) // #nosec G203 -- escaped above
}

// PlainText drops the markdown emphasis markers and mark placeholders
// from a heading title.
func PlainText(s string) string {
	s = StripMarkPlaceholders(s)
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}

func normalizeStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case StyleAPA:
		return StyleAPA
	case StyleMLA:
		return StyleMLA
	}
	return StyleNumbered
}

// ReferenceText formats one bibliography entry as plain text:
// "[n] text url" (numbered), "text. url" (apa) or "text. <url>" (mla).
func ReferenceText(style string, r metadata.Reference) string {
	switch normalizeStyle(style) {
	case StyleAPA:
		if r.URL == "" {
			return r.Text + "."
		}
		return r.Text + ". " + r.URL
	case StyleMLA:
		if r.URL == "" {
			return r.Text + "."
		}
		return r.Text + ". <" + r.URL + ">"
	}
	if r.URL == "" {
		return fmt.Sprintf("[%d] %s", r.ID, r.Text)
	}
	return fmt.Sprintf("[%d] %s %s", r.ID, r.Text, r.URL)
}
