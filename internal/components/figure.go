package components

import (
	"fmt"
	"strings"
)

// Inline caption kinds.
const (
	KindFigure = "figure"
	KindTable  = "table"
)

// CaptionedFigure is a single markdown image followed by a caption line
// such as "*Figure 2. Axial CT*".
type CaptionedFigure struct {
	ID      string
	Image   Image
	Word    string // caption word as written: "Figure", "Рисунок"
	Number  string
	Caption string
}

// Kind implements Component.
func (CaptionedFigure) Kind() string { return KindFigure }

func (f CaptionedFigure) label() string {
	word := f.Word
	if word == "" {
		word = "Figure"
	}
	return word + " " + f.Number + "."
}

// HTML renders the image and its numbered caption.
func (f CaptionedFigure) HTML() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="figure-container" id="%s">`+"\n", esc(orDefault(f.ID, KindFigure)))
	fmt.Fprintf(&b, `  <img src="%s" alt="%s" class="figure-image"%s>`+"\n", esc(f.Image.Path), esc(f.Image.AltText), f.Image.sizeAttrs())
	fmt.Fprintf(&b, "  <div class=\"figure-caption\"><strong>%s</strong> %s</div>\n", esc(f.label()), esc(f.Caption))
	b.WriteString("</div>")
	return b.String()
}

// Summary is the caption line.
func (f CaptionedFigure) Summary() []string {
	return []string{strings.TrimSpace(f.label() + " " + f.Caption)}
}

// TableCaption wraps a markdown table with a caption such as
// "Table 1. Baseline characteristics". The table itself stays markdown.
type TableCaption struct {
	ID      string
	Caption string
}

// Open renders the wrapper and caption before the table.
func (t TableCaption) Open() string {
	return fmt.Sprintf(`<div class="table-container" id="%s">`+"\n"+`<div class="table-caption">%s</div>`,
		esc(orDefault(t.ID, KindTable)), esc(t.Caption))
}

// Close renders the end of the wrapper.
func (TableCaption) Close() string {
	return "</div>"
}

// Summary is the caption line.
func (t TableCaption) Summary() []string {
	return []string{t.Caption}
}
