package components

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Component kinds, shared with the block tokenizer.
const (
	KindGallery        = "gallery"
	KindFigurePanel    = "figure-panel"
	KindAnnotatedImage = "annotated-image"
	KindComparison     = "comparison"
	KindProcedure      = "procedure-steps"
	KindSurgicalPhotos = "surgical-photos"
)

// Component is a renderable visual block.
type Component interface {
	Kind() string
	HTML() string
	Summary() []string
}

// Compile-time interface checks.
var (
	_ Component = Gallery{}
	_ Component = MultiPanelFigure{}
	_ Component = AnnotatedImage{}
	_ Component = ComparisonSlider{}
	_ Component = Procedure{}
	_ Component = SurgicalPhotoPanel{}
	_ Component = CaptionedFigure{}
)

// Image describes one picture inside a component.
// Width and Height are zero when unknown.
type Image struct {
	Path    string
	AltText string
	Caption string
	Label   string
	Width   int
	Height  int
}

// describe renders an image as one summary line.
func (img Image) describe() string {
	text := img.AltText
	if text == "" {
		text = img.Path
	}
	if img.Label != "" {
		text = "(" + img.Label + ") " + text
	}
	if img.Caption != "" {
		text += ": " + img.Caption
	}
	return text
}

// sizeAttrs renders width/height attributes for known dimensions.
func (img Image) sizeAttrs() string {
	var b strings.Builder
	if img.Width > 0 {
		fmt.Fprintf(&b, ` width="%d"`, img.Width)
	}
	if img.Height > 0 {
		fmt.Fprintf(&b, ` height="%d"`, img.Height)
	}
	return b.String()
}

var esc = html.EscapeString

// numberedCaption prefixes an escaped caption with a bold "Figure N:" label.
func numberedCaption(number, caption string) string {
	if number == "" {
		return esc(caption)
	}
	return "<strong>Figure " + esc(number) + ":</strong> " + esc(caption)
}

// numberedTitle prefixes a plain title with "Figure N: ".
func numberedTitle(number, title string) string {
	if number == "" {
		return title
	}
	return "Figure " + number + ": " + title
}

// orDefault returns id, or fallback when id is empty.
func orDefault(id, fallback string) string {
	if id == "" {
		return fallback
	}
	return id
}

// formatNumber renders a coordinate without trailing zeros.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
