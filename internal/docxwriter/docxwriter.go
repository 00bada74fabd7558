// Package docxwriter emits an assembled manuscript as a Word document.
//
// Section content is parsed with goldmark and walked block by block.
// Visual components have no Word counterpart; their fragments are written
// as their plain-text summaries.
package docxwriter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/alnah/go-manuscript/internal/pipeline"
)

// ErrDOCXWrite indicates the document could not be serialised.
var ErrDOCXWrite = errors.New("failed to write DOCX")

const monospaceFont = "Courier New"

// HeadingStyle formats one heading level.
type HeadingStyle struct {
	Size  int // points
	Bold  bool
	Color string // RRGGBB
}

// Style is the typography of the generated document.
type Style struct {
	FontFamily string
	BodySize   int    // points
	Alignment  string // justify, left, right, center
	Headings   [pipeline.MaxHeadingLevel]HeadingStyle
	// A4 selects A4 pages; otherwise the library default is kept.
	A4 bool
}

// DefaultStyle mirrors the configuration defaults.
func DefaultStyle() Style {
	return Style{
		FontFamily: "Times New Roman",
		BodySize:   12,
		Alignment:  "justify",
		Headings: [pipeline.MaxHeadingLevel]HeadingStyle{
			{Size: 16, Bold: true, Color: "000000"},
			{Size: 14, Bold: true, Color: "000000"},
			{Size: 12, Bold: true, Color: "000000"},
		},
		A4: true,
	}
}

// Writer serialises pipeline documents with go-docx.
type Writer struct {
	style     Style
	converter *pipeline.GoldmarkConverter
}

// New creates a Writer.
func New(style Style) *Writer {
	return &Writer{style: style, converter: pipeline.NewGoldmarkConverter()}
}

// Write renders doc and writes the .docx bytes to out.
func (w *Writer) Write(ctx context.Context, doc *pipeline.Document, out io.Writer) error {
	f := docx.New().WithDefaultTheme()
	if w.style.A4 {
		f = f.WithA4Page()
	}
	b := &builder{file: f, style: w.style, doc: doc}

	b.titlePage()
	if len(doc.TOC) > 0 {
		b.toc()
	}
	if doc.Preamble != "" {
		source := []byte(doc.Preamble)
		b.blocks(w.converter.Parse(source), source, 0)
	}
	for _, sec := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sec.ShowHeading {
			b.heading(sec.HeadingLevel, joinNonEmpty(sec.Number, pipeline.PlainText(sec.Title)))
		}
		source := []byte(sec.Content)
		b.blocks(w.converter.Parse(source), source, 0)
	}
	b.lists()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDOCXWrite, err)
	}
	return nil
}

// builder carries the state of one document being written.
type builder struct {
	file      *docx.Docx
	style     Style
	doc       *pipeline.Document
	highlight bool
}

// span is the inline formatting of one run.
type span struct {
	bold   bool
	italic bool
	code   bool
}

func (b *builder) paragraph() *docx.Paragraph {
	p := b.file.AddParagraph()
	if j := justification(b.style.Alignment); j != "" {
		p.Justification(j)
	}
	return p
}

// text adds runs for s, toggling highlight at mark placeholders.
func (b *builder) text(p *docx.Paragraph, s string, sp span) {
	for s != "" {
		start := strings.Index(s, pipeline.MarkStartPlaceholder)
		end := strings.Index(s, pipeline.MarkEndPlaceholder)
		cut, toggle, width := len(s), false, 0
		switch {
		case start >= 0 && (end < 0 || start < end):
			cut, toggle, width = start, true, len(pipeline.MarkStartPlaceholder)
		case end >= 0:
			cut, toggle, width = end, true, len(pipeline.MarkEndPlaceholder)
		}
		if cut > 0 {
			b.run(p, s[:cut], sp)
		}
		if !toggle {
			return
		}
		b.highlight = !b.highlight
		s = s[cut+width:]
	}
}

func (b *builder) run(p *docx.Paragraph, s string, sp span) {
	r := p.AddText(s).Size(halfPoints(b.style.BodySize))
	switch {
	case sp.code:
		r.Font(monospaceFont, monospaceFont, monospaceFont, "")
	case b.style.FontFamily != "":
		r.Font(b.style.FontFamily, b.style.FontFamily, b.style.FontFamily, "")
	}
	if sp.bold {
		r.Bold()
	}
	if sp.italic {
		r.Italic()
	}
	if b.highlight {
		r.Highlight("yellow")
	}
}

func (b *builder) heading(level int, title string) {
	level = min(max(level, 1), pipeline.MaxHeadingLevel)
	hs := b.style.Headings[level-1]
	p := b.file.AddParagraph().Style("Heading" + strconv.Itoa(level))
	r := p.AddText(title).Size(halfPoints(hs.Size))
	if b.style.FontFamily != "" {
		r.Font(b.style.FontFamily, b.style.FontFamily, b.style.FontFamily, "")
	}
	if hs.Bold {
		r.Bold()
	}
	if hs.Color != "" {
		r.Color(hs.Color)
	}
}

func (b *builder) pageBreak() {
	b.file.AddParagraph().AddPageBreaks()
}

func (b *builder) titlePage() {
	p := b.file.AddParagraph().Justification("center")
	size := b.style.Headings[0].Size + 4
	p.AddText(b.doc.Title).Size(halfPoints(size)).Bold()
	for _, f := range b.doc.Metadata {
		p := b.file.AddParagraph().Justification("center")
		b.run(p, f.Label+": ", span{bold: true})
		b.run(p, f.Value, span{})
	}
	b.pageBreak()
}

func (b *builder) toc() {
	b.heading(1, b.doc.Settings.TOCTitle)
	for _, e := range b.doc.TOC {
		p := b.paragraph()
		indent := strings.Repeat("    ", max(e.Level-1, 0))
		b.run(p, indent+joinNonEmpty(e.Number, pipeline.PlainText(e.Title)), span{bold: e.Level == 1})
	}
	if b.doc.Settings.TOCPageBreak {
		b.pageBreak()
	}
}

// lists writes the figure and table lists, the bibliography and the index.
func (b *builder) lists() {
	d := b.doc
	if len(d.Figures) > 0 {
		b.entryList(d.FiguresTitle(), d.Figures)
	}
	if len(d.Tables) > 0 {
		b.entryList(d.TablesTitle(), d.Tables)
	}
	if len(d.References) > 0 {
		b.pageBreak()
		b.heading(1, d.Settings.BibliographyTitle)
		for _, r := range d.References {
			b.run(b.paragraph(), pipeline.ReferenceText(d.Settings.BibliographyStyle, r), span{})
		}
	}
	if len(d.Index) > 0 {
		b.pageBreak()
		b.heading(1, d.Settings.IndexTitle)
		for _, e := range d.Index {
			p := b.paragraph()
			b.run(p, e.Term, span{bold: true})
			var refs []string
			for _, s := range e.Sections {
				refs = append(refs, joinNonEmpty(s.Number, pipeline.PlainText(s.Title)))
			}
			if len(refs) > 0 {
				b.run(p, " "+strings.Join(refs, ", "), span{})
			}
		}
	}
}

func (b *builder) entryList(title string, entries []pipeline.ListEntry) {
	b.pageBreak()
	b.heading(1, title)
	for _, e := range entries {
		line := e.Label
		if e.Caption != "" {
			line += ". " + e.Caption
		}
		b.run(b.paragraph(), line, span{})
	}
}

// blocks writes the block children of n.
func (b *builder) blocks(n ast.Node, source []byte, depth int) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.block(c, source, depth)
	}
}

func (b *builder) block(n ast.Node, source []byte, depth int) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if b.fragment(n, source) {
			return
		}
		p := b.paragraph()
		b.inlines(p, n, source, span{})
	case *ast.Heading:
		p := b.paragraph()
		b.inlines(p, n, source, span{bold: true})
	case *ast.List:
		b.list(node, source, depth)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(source)), "\n")
			b.run(b.paragraph(), line, span{code: true})
		}
	case *ast.Blockquote:
		b.blocks(n, source, depth)
	case *east.Table:
		b.table(node, source)
	case *east.FootnoteList:
		b.blocks(n, source, depth)
	case *east.Footnote:
		b.blocks(n, source, depth)
	}
}

// fragment writes the summary of a paragraph that is exactly one token.
func (b *builder) fragment(n ast.Node, source []byte) bool {
	if n.ChildCount() != 1 {
		return false
	}
	t, ok := n.FirstChild().(*ast.Text)
	if !ok {
		return false
	}
	frag, ok := b.doc.Registry.Lookup(string(t.Segment.Value(source)))
	if !ok {
		return false
	}
	for i, line := range frag.Summary {
		b.run(b.paragraph(), line, span{bold: frag.Heading && i == 0})
	}
	return true
}

func (b *builder) list(l *ast.List, source []byte, depth int) {
	number := l.Start
	if number == 0 {
		number = 1
	}
	indent := strings.Repeat("    ", depth)
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = strconv.Itoa(number) + ". "
			number++
		}
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				p := b.paragraph()
				prefix := indent + "    "
				if first {
					prefix = indent + marker
				}
				b.run(p, prefix, span{})
				b.inlines(p, c, source, span{})
			default:
				b.block(c, source, depth+1)
			}
			first = false
		}
	}
}

func (b *builder) table(t *east.Table, source []byte) {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		_, header := row.(*east.TableHeader)
		p := b.paragraph()
		i := 0
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if i > 0 {
				b.run(p, " | ", span{})
			}
			b.inlines(p, cell, source, span{bold: header})
			i++
		}
	}
}

// inlines writes the inline children of n as runs.
func (b *builder) inlines(p *docx.Paragraph, n ast.Node, source []byte, sp span) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.text(p, string(node.Segment.Value(source)), sp)
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.run(p, " ", sp)
			}
		case *ast.String:
			b.text(p, string(node.Value), sp)
		case *ast.Emphasis:
			inner := sp
			if node.Level >= 2 {
				inner.bold = true
			} else {
				inner.italic = true
			}
			b.inlines(p, node, source, inner)
		case *ast.CodeSpan:
			inner := sp
			inner.code = true
			b.inlines(p, node, source, inner)
		case *ast.AutoLink:
			b.text(p, string(node.URL(source)), sp)
		case *ast.Image:
			b.text(p, "["+altText(node, source)+"]", sp)
		case *ast.RawHTML:
			// omitted, as in the HTML output
		default:
			b.inlines(p, c, source, sp)
		}
	}
}

func altText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// halfPoints converts a point size to the half-point string Word expects.
func halfPoints(pt int) string {
	if pt <= 0 {
		pt = 12
	}
	return strconv.Itoa(pt * 2)
}

func justification(alignment string) string {
	switch strings.ToLower(alignment) {
	case "justify":
		return "both"
	case "left":
		return "start"
	case "right":
		return "end"
	case "center":
		return "center"
	}
	return ""
}

func joinNonEmpty(number, title string) string {
	if number == "" {
		return title
	}
	return number + " " + title
}
