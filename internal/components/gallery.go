package components

import (
	"fmt"
	"strings"
)

// Gallery defaults.
const (
	DefaultGalleryColumns = 3
	DefaultGalleryGap     = 20
)

// Gallery is a responsive image grid with an optional lightbox.
type Gallery struct {
	ID       string
	Images   []Image
	Columns  int
	Gap      int // pixels
	Lightbox bool
	Caption  string
}

// Kind implements Component.
func (Gallery) Kind() string { return KindGallery }

// HTML renders the gallery container, one item per image, the main caption
// (when set) and the lightbox overlay (when enabled).
func (g Gallery) HTML() string {
	id := orDefault(g.ID, KindGallery)
	columns := g.Columns
	if columns < 1 {
		columns = DefaultGalleryColumns
	}
	gap := g.Gap
	if gap < 0 {
		gap = DefaultGalleryGap
	}

	itemClass := "gallery-item"
	if g.Lightbox {
		itemClass += " lightbox-enabled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="image-gallery" id="%s" data-columns="%d" style="gap: %dpx;">`, esc(id), columns, gap)
	b.WriteByte('\n')
	for i, img := range g.Images {
		fmt.Fprintf(&b, `  <div class="%s" data-index="%d">`, itemClass, i)
		b.WriteByte('\n')
		fmt.Fprintf(&b, `    <img src="%s" alt="%s" loading="lazy"%s>`, esc(img.Path), esc(img.AltText), img.sizeAttrs())
		b.WriteByte('\n')
		if img.Caption != "" {
			fmt.Fprintf(&b, `    <div class="gallery-caption">%s</div>`, esc(img.Caption))
			b.WriteByte('\n')
		}
		b.WriteString("  </div>\n")
	}
	b.WriteString("</div>")

	if g.Caption != "" {
		fmt.Fprintf(&b, "\n"+`<div class="gallery-main-caption">%s</div>`, esc(g.Caption))
	}
	if g.Lightbox {
		b.WriteByte('\n')
		b.WriteString(lightboxHTML(id))
	}
	return b.String()
}

func lightboxHTML(id string) string {
	return `<div class="lightbox-overlay" id="` + esc(id) + `-lightbox" style="display: none;">
  <div class="lightbox-content">
    <span class="lightbox-close">&times;</span>
    <img class="lightbox-image" src="" alt="">
    <div class="lightbox-caption"></div>
    <button class="lightbox-nav lightbox-prev">&#10094;</button>
    <button class="lightbox-nav lightbox-next">&#10095;</button>
  </div>
</div>`
}

// Summary lists the caption and one line per image.
func (g Gallery) Summary() []string {
	lines := make([]string, 0, len(g.Images)+1)
	if g.Caption != "" {
		lines = append(lines, g.Caption)
	}
	for _, img := range g.Images {
		lines = append(lines, img.describe())
	}
	return lines
}
