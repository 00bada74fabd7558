package markup

import (
	"strconv"
	"strings"

	"github.com/alnah/go-manuscript/internal/components"
)

// numberedKinds are the visual blocks that take a figure number.
var numberedKinds = map[string]bool{
	components.KindFigurePanel:    true,
	components.KindAnnotatedImage: true,
	components.KindComparison:     true,
	components.KindProcedure:      true,
	components.KindSurgicalPhotos: true,
}

// IsVisualKind reports whether kind names one of the six visual blocks.
func IsVisualKind(kind string) bool {
	return kind == components.KindGallery || numberedKinds[kind]
}

// parseItem parses "- path | alt | caption | label". Path and alt are
// required; caption and label are optional.
func parseItem(line string) (components.Image, bool) {
	rest, ok := cutBullet(line)
	if !ok {
		return components.Image{}, false
	}
	return parseImageFields(rest, true)
}

// cutBullet strips a leading "- " or "* " list marker.
func cutBullet(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):]), true
		}
	}
	return "", false
}

func parseImageFields(s string, needAlt bool) (components.Image, bool) {
	fields := strings.Split(s, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	img := components.Image{Path: fields[0]}
	if len(fields) > 1 {
		img.AltText = fields[1]
	}
	if len(fields) > 2 {
		img.Caption = fields[2]
	}
	if len(fields) > 3 {
		img.Label = fields[3]
	}
	if img.Path == "" || (needAlt && img.AltText == "") {
		return components.Image{}, false
	}
	return img, true
}

func parseItems(lines []string) []components.Image {
	var images []components.Image
	for _, line := range lines {
		if img, ok := parseItem(line); ok {
			images = append(images, img)
		}
	}
	return images
}

// parseAnnotation parses "- type: x, y | text | color | size".
func parseAnnotation(line string) (components.Annotation, bool) {
	rest, ok := cutBullet(line)
	if !ok {
		return components.Annotation{}, false
	}
	fields := strings.Split(rest, "|")
	head, coords, ok := strings.Cut(fields[0], ":")
	if !ok {
		return components.Annotation{}, false
	}
	typ, ok := components.ParseAnnotationType(strings.TrimSpace(head))
	if !ok {
		return components.Annotation{}, false
	}
	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return components.Annotation{}, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return components.Annotation{}, false
	}

	a := components.Annotation{Type: typ, X: clampPercent(x), Y: clampPercent(y)}
	if len(fields) > 1 {
		a.Text = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		a.Color = strings.TrimSpace(fields[2])
	}
	if len(fields) > 3 {
		switch size := strings.ToLower(strings.TrimSpace(fields[3])); size {
		case components.SizeSmall, components.SizeMedium, components.SizeLarge:
			a.Size = size
		}
	}
	return a, true
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// parseAnnotated reads the "image:" and "annotations:" sections.
func parseAnnotated(lines []string) (components.Image, []components.Annotation) {
	const (
		none = iota
		inImage
		inAnnotations
	)
	var (
		img         components.Image
		haveImage   bool
		annotations []components.Annotation
		state       = none
	)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "image:"):
			state = inImage
			if rest := strings.TrimSpace(trimmed[len("image:"):]); rest != "" && !haveImage {
				img, haveImage = parseImageFields(rest, false)
			}
		case strings.HasPrefix(lower, "annotations:"):
			state = inAnnotations
		case state == inImage && !haveImage:
			if rest, ok := cutBullet(trimmed); ok {
				img, haveImage = parseImageFields(rest, false)
			}
		case state == inAnnotations:
			if a, ok := parseAnnotation(trimmed); ok {
				annotations = append(annotations, a)
			}
		}
	}
	return img, annotations
}

// parseSides reads "before: path | alt" and "after: path | alt" lines.
func parseSides(lines []string) (before, after components.Image) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if rest, ok := cutBullet(trimmed); ok {
			trimmed = rest
		}
		key, rest, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		img, ok := parseImageFields(strings.TrimSpace(rest), false)
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "before":
			if img.AltText == "" {
				img.AltText = "Before"
			}
			before = img
		case "after":
			if img.AltText == "" {
				img.AltText = "After"
			}
			after = img
		}
	}
	return before, after
}

// build turns a visual block into its component. The second result is
// false for unknown kinds and for blocks that cannot render.
func build(b Block) (components.Component, bool) {
	id := b.Attrs["id"]
	number := b.Attrs["number"]

	switch b.Kind {
	case components.KindGallery:
		return components.Gallery{
			ID:       id,
			Images:   parseItems(b.Direct),
			Columns:  b.Attrs.Int("columns", components.DefaultGalleryColumns),
			Gap:      b.Attrs.Int("gap", components.DefaultGalleryGap),
			Lightbox: b.Attrs.Bool("lightbox", true),
			Caption:  b.Attrs["caption"],
		}, true

	case components.KindFigurePanel:
		layout, _ := components.ParseLayout(b.Attrs["layout"])
		return components.MultiPanelFigure{
			ID:      id,
			Panels:  parseItems(b.Direct),
			Layout:  layout,
			Rows:    b.Attrs.Int("rows", 0),
			Cols:    b.Attrs.Int("cols", 0),
			Number:  number,
			Caption: b.Attrs["caption"],
		}, true

	case components.KindAnnotatedImage:
		img, annotations := parseAnnotated(b.Direct)
		if img.Caption == "" {
			img.Caption = b.Attrs["caption"]
		}
		return components.AnnotatedImage{
			ID:          id,
			Image:       img,
			Annotations: annotations,
			Number:      number,
		}, true

	case components.KindComparison:
		before, after := parseSides(b.Direct)
		c := components.ComparisonSlider{
			ID:       id,
			Before:   before,
			After:    after,
			Caption:  b.Attrs["caption"],
			Number:   number,
			Position: b.Attrs.Int("position", components.DefaultSliderPosition),
		}
		return c, c.Renderable()

	case components.KindProcedure:
		return components.Procedure{
			ID:       id,
			Steps:    parseItems(b.Direct),
			Title:    b.Attrs["title"],
			Layout:   b.Attrs["layout"],
			Number:   number,
			Numbered: b.Attrs.Bool("numbered", true),
		}, true

	case components.KindSurgicalPhotos:
		return components.SurgicalPhotoPanel{
			ID:            id,
			Photos:        parseItems(b.Direct),
			Title:         b.Attrs["title"],
			Columns:       b.Attrs.Int("columns", components.DefaultPhotoColumns),
			Number:        number,
			PrivacyNotice: b.Attrs.Bool("privacy", true),
		}, true
	}
	return nil, false
}

// captionOf returns the text a figure list shows for c.
func captionOf(c components.Component) string {
	switch v := c.(type) {
	case components.Gallery:
		return v.Caption
	case components.MultiPanelFigure:
		return v.Caption
	case components.AnnotatedImage:
		return v.Image.Caption
	case components.ComparisonSlider:
		return v.Caption
	case components.Procedure:
		return v.Title
	case components.SurgicalPhotoPanel:
		return v.Title
	}
	return ""
}
