package components

import (
	"fmt"
	"strings"
)

// DefaultSliderPosition is the initial split in percent.
const DefaultSliderPosition = 50

// ComparisonSlider is an interactive before/after image comparison.
type ComparisonSlider struct {
	ID       string
	Before   Image
	After    Image
	Caption  string
	Number   string
	Position int // 0-100
}

// Kind implements Component.
func (ComparisonSlider) Kind() string { return KindComparison }

// Renderable reports whether both sides carry an image path.
func (c ComparisonSlider) Renderable() bool {
	return c.Before.Path != "" && c.After.Path != ""
}

func (c ComparisonSlider) position() int {
	switch {
	case c.Position < 0:
		return 0
	case c.Position > 100:
		return 100
	}
	return c.Position
}

// HTML renders the slider. It returns "" when the slider is not renderable.
func (c ComparisonSlider) HTML() string {
	if !c.Renderable() {
		return ""
	}
	id := orDefault(c.ID, KindComparison)
	pos := c.position()

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="comparison-slider-container" id="%s">`, esc(id))
	b.WriteString("\n  <div class=\"comparison-slider-wrapper\">\n")
	fmt.Fprintf(&b, `    <img src="%s" alt="%s" class="comparison-image comparison-after">`+"\n", esc(c.After.Path), esc(c.After.AltText))
	fmt.Fprintf(&b, `    <div class="comparison-before-wrapper" style="width: %d%%;">`+"\n", pos)
	fmt.Fprintf(&b, `      <img src="%s" alt="%s" class="comparison-image comparison-before">`+"\n", esc(c.Before.Path), esc(c.Before.AltText))
	b.WriteString("    </div>\n")
	fmt.Fprintf(&b, `    <div class="comparison-slider-handle" style="left: %d%%;">`+"\n", pos)
	b.WriteString("      <div class=\"slider-line\"></div>\n")
	b.WriteString("      <div class=\"slider-button\">&#8596;</div>\n")
	b.WriteString("    </div>\n")
	b.WriteString("    <div class=\"comparison-label comparison-label-before\">Before</div>\n")
	b.WriteString("    <div class=\"comparison-label comparison-label-after\">After</div>\n")
	b.WriteString("  </div>\n")
	if c.Caption != "" {
		fmt.Fprintf(&b, "  <div class=\"comparison-caption\">%s</div>\n", numberedCaption(c.Number, c.Caption))
	}
	b.WriteString("</div>")
	return b.String()
}

// Summary lists the caption and both sides.
func (c ComparisonSlider) Summary() []string {
	if !c.Renderable() {
		return nil
	}
	lines := make([]string, 0, 3)
	if c.Caption != "" {
		lines = append(lines, numberedTitle(c.Number, c.Caption))
	}
	return append(lines, "Before: "+c.Before.describe(), "After: "+c.After.describe())
}
