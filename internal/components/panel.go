package components

import (
	"fmt"
	"strings"
)

// Layout names a multi-panel grid arrangement.
type Layout string

// Panel layouts.
const (
	Layout2x2        Layout = "2x2"
	Layout3x2        Layout = "3x2"
	Layout2x3        Layout = "2x3"
	Layout3x3        Layout = "3x3"
	Layout4x2        Layout = "4x2"
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
	LayoutCustom     Layout = "custom"
)

// DefaultLayout is used for unknown layout tokens.
const DefaultLayout = Layout2x2

// gridDimensions maps named layouts to (rows, cols).
var gridDimensions = map[Layout][2]int{
	Layout2x2: {2, 2},
	Layout3x2: {2, 3},
	Layout2x3: {3, 2},
	Layout3x3: {3, 3},
	Layout4x2: {2, 4},
}

// ParseLayout returns the layout for a token, or DefaultLayout and false
// when the token is not recognised.
func ParseLayout(s string) (Layout, bool) {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case Layout2x2, Layout3x2, Layout2x3, Layout3x3, Layout4x2,
		LayoutHorizontal, LayoutVertical, LayoutCustom:
		return l, true
	}
	return DefaultLayout, false
}

// MultiPanelFigure is a scientific figure made of labelled panels.
type MultiPanelFigure struct {
	ID      string
	Panels  []Image
	Layout  Layout
	Rows    int // custom layout only
	Cols    int // custom layout only
	Number  string
	Caption string
}

// Kind implements Component.
func (MultiPanelFigure) Kind() string { return KindFigurePanel }

// Grid returns the (rows, cols) of the figure.
// Custom layouts without explicit positive dimensions fall back to 2x2.
func (f MultiPanelFigure) Grid() (rows, cols int) {
	n := len(f.Panels)
	switch f.Layout {
	case LayoutHorizontal:
		return 1, n
	case LayoutVertical:
		return n, 1
	case LayoutCustom:
		if f.Rows > 0 && f.Cols > 0 {
			return f.Rows, f.Cols
		}
	}
	if d, ok := gridDimensions[f.Layout]; ok {
		return d[0], d[1]
	}
	d := gridDimensions[DefaultLayout]
	return d[0], d[1]
}

// Labels returns the label shown for each panel.
// Auto-labels A, B, C... are assigned only when no panel carries a label;
// the decision is taken once over all panels.
func (f MultiPanelFigure) Labels() []string {
	labels := make([]string, len(f.Panels))
	anyLabel := false
	for i, p := range f.Panels {
		labels[i] = p.Label
		if p.Label != "" {
			anyLabel = true
		}
	}
	if anyLabel {
		return labels
	}
	for i := range labels {
		labels[i] = PanelLetter(i)
	}
	return labels
}

// PanelLetter returns the auto-label for the i-th panel (0-indexed):
// A..Z, then AA, AB...
func PanelLetter(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return PanelLetter(i/26-1) + string(rune('A'+i%26))
}

// HTML renders the figure grid and its caption.
func (f MultiPanelFigure) HTML() string {
	rows, cols := f.Grid()
	labels := f.Labels()
	id := orDefault(f.ID, "figure")

	var b strings.Builder
	fmt.Fprintf(&b, `<figure class="multi-panel-figure" id="%s">`, esc(id))
	b.WriteByte('\n')
	fmt.Fprintf(&b, `  <div class="panel-grid" data-rows="%d" data-cols="%d">`, rows, cols)
	b.WriteByte('\n')
	for i, p := range f.Panels {
		b.WriteString("    <div class=\"panel-item\">\n")
		if labels[i] != "" {
			fmt.Fprintf(&b, `      <div class="panel-label">%s</div>`, esc(labels[i]))
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, `      <img src="%s" alt="%s"%s>`, esc(p.Path), esc(p.AltText), p.sizeAttrs())
		b.WriteByte('\n')
		if p.Caption != "" {
			fmt.Fprintf(&b, `      <div class="panel-caption">%s</div>`, esc(p.Caption))
			b.WriteByte('\n')
		}
		b.WriteString("    </div>\n")
	}
	b.WriteString("  </div>\n")
	if f.Caption != "" {
		fmt.Fprintf(&b, "  <figcaption>%s</figcaption>\n", numberedCaption(f.Number, f.Caption))
	}
	b.WriteString("</figure>")
	return b.String()
}

// Summary lists the numbered caption and one line per labelled panel.
func (f MultiPanelFigure) Summary() []string {
	lines := make([]string, 0, len(f.Panels)+1)
	if f.Caption != "" || f.Number != "" {
		lines = append(lines, strings.TrimSuffix(numberedTitle(f.Number, f.Caption), ": "))
	}
	labels := f.Labels()
	for i, p := range f.Panels {
		p.Label = labels[i]
		lines = append(lines, p.describe())
	}
	return lines
}
