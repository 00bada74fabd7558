package components

import (
	"fmt"
	"strings"
)

// AnnotationType is the overlay primitive drawn for an annotation.
type AnnotationType string

// Annotation types.
const (
	AnnotationArrow     AnnotationType = "arrow"
	AnnotationCircle    AnnotationType = "circle"
	AnnotationRectangle AnnotationType = "rectangle"
	AnnotationLabel     AnnotationType = "label"
)

// Annotation defaults.
const (
	DefaultAnnotationColor = "red"
	DefaultAnnotationSize  = SizeMedium
)

// Annotation sizes.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// ParseAnnotationType reports whether s names a known annotation type.
func ParseAnnotationType(s string) (AnnotationType, bool) {
	t := AnnotationType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case AnnotationArrow, AnnotationCircle, AnnotationRectangle, AnnotationLabel:
		return t, true
	}
	return "", false
}

// Annotation is one overlay primitive. X and Y are percentages (0-100) of
// the image display box, not pixels.
type Annotation struct {
	Type  AnnotationType
	Text  string
	X, Y  float64
	Color string
	Size  string
}

func (a Annotation) color() string {
	if a.Color == "" {
		return DefaultAnnotationColor
	}
	return a.Color
}

// AnnotatedImage is a base image with an SVG overlay of annotations.
// Later annotations draw on top of earlier ones.
type AnnotatedImage struct {
	ID          string
	Image       Image
	Annotations []Annotation
	Number      string
}

// Kind implements Component.
func (AnnotatedImage) Kind() string { return KindAnnotatedImage }

// HTML renders the image, the overlay in a 0-100 viewBox and the caption.
func (a AnnotatedImage) HTML() string {
	id := orDefault(a.ID, "annotated")

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="annotated-image-container" id="%s">`, esc(id))
	b.WriteString("\n  <div class=\"annotated-image-wrapper\">\n")
	fmt.Fprintf(&b, `    <img src="%s" alt="%s" class="base-image"%s>`, esc(a.Image.Path), esc(a.Image.AltText), a.Image.sizeAttrs())
	b.WriteString("\n    <svg class=\"annotation-overlay\" viewBox=\"0 0 100 100\" preserveAspectRatio=\"none\">\n")
	for idx, ann := range a.Annotations {
		switch ann.Type {
		case AnnotationArrow:
			writeArrow(&b, id, idx, ann)
		case AnnotationCircle:
			writeCircle(&b, idx, ann)
		case AnnotationRectangle:
			writeRectangle(&b, idx, ann)
		case AnnotationLabel:
			writeLabel(&b, idx, ann)
		}
	}
	b.WriteString("    </svg>\n  </div>\n")
	if a.Image.Caption != "" {
		fmt.Fprintf(&b, "  <div class=\"annotated-image-caption\">%s</div>\n", numberedCaption(a.Number, a.Image.Caption))
	}
	b.WriteString("</div>")
	return b.String()
}

// writeArrow draws a short line ending at (x, y) with an arrowhead marker.
// Marker IDs are scoped by the figure ID so several figures can share a page.
func writeArrow(b *strings.Builder, id string, idx int, a Annotation) {
	color := esc(a.color())
	marker := fmt.Sprintf("%s-arrowhead-%d", esc(id), idx)
	fmt.Fprintf(b, `      <g class="annotation annotation-arrow" data-idx="%d">`+"\n", idx)
	fmt.Fprintf(b, `        <defs><marker id="%s" markerWidth="10" markerHeight="10" refX="5" refY="3" orient="auto"><polygon points="0 0, 10 3, 0 6" fill="%s"/></marker></defs>`+"\n",
		marker, color)
	fmt.Fprintf(b, `        <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="0.5" marker-end="url(#%s)"/>`+"\n",
		formatNumber(a.X-5), formatNumber(a.Y-5), formatNumber(a.X), formatNumber(a.Y), color, marker)
	if a.Text != "" {
		fmt.Fprintf(b, `        <text x="%s" y="%s" class="annotation-text" fill="%s">%s</text>`+"\n",
			formatNumber(a.X-7), formatNumber(a.Y-7), color, esc(a.Text))
	}
	b.WriteString("      </g>\n")
}

func writeCircle(b *strings.Builder, idx int, a Annotation) {
	radius := 8
	switch a.Size {
	case SizeSmall:
		radius = 5
	case SizeLarge:
		radius = 12
	}
	fmt.Fprintf(b, `      <circle class="annotation annotation-circle" data-idx="%d" cx="%s" cy="%s" r="%d" stroke="%s" stroke-width="0.5" fill="none" opacity="0.7"/>`+"\n",
		idx, formatNumber(a.X), formatNumber(a.Y), radius, esc(a.color()))
}

func writeRectangle(b *strings.Builder, idx int, a Annotation) {
	width := 15.0
	switch a.Size {
	case SizeSmall:
		width = 10
	case SizeLarge:
		width = 20
	}
	fmt.Fprintf(b, `      <rect class="annotation annotation-rectangle" data-idx="%d" x="%s" y="%s" width="%s" height="%s" stroke="%s" stroke-width="0.5" fill="none" opacity="0.7"/>`+"\n",
		idx, formatNumber(a.X), formatNumber(a.Y), formatNumber(width), formatNumber(width*0.75), esc(a.color()))
}

func writeLabel(b *strings.Builder, idx int, a Annotation) {
	fmt.Fprintf(b, `      <text class="annotation annotation-label" data-idx="%d" x="%s" y="%s" fill="%s">%s</text>`+"\n",
		idx, formatNumber(a.X), formatNumber(a.Y), esc(a.color()), esc(a.Text))
}

// Summary lists the caption, the image and one line per annotation.
func (a AnnotatedImage) Summary() []string {
	lines := make([]string, 0, len(a.Annotations)+2)
	if a.Image.Caption != "" {
		lines = append(lines, numberedTitle(a.Number, a.Image.Caption))
	}
	img := a.Image
	img.Caption = ""
	lines = append(lines, img.describe())
	for _, ann := range a.Annotations {
		line := fmt.Sprintf("%s at (%s, %s)", ann.Type, formatNumber(ann.X), formatNumber(ann.Y))
		if ann.Text != "" {
			line += ": " + ann.Text
		}
		lines = append(lines, line)
	}
	return lines
}
