package components

import (
	"fmt"
	"strings"
)

// DefaultPhotoColumns is the photo grid width when unset.
const DefaultPhotoColumns = 2

// PrivacyNotice is shown above surgical photos unless disabled.
const PrivacyNotice = "Note: All patient identifiers have been removed. Informed consent obtained."

// SurgicalPhotoPanel presents clinical photographs in a grid.
type SurgicalPhotoPanel struct {
	ID            string
	Photos        []Image
	Title         string
	Columns       int
	Number        string
	PrivacyNotice bool
}

// Kind implements Component.
func (SurgicalPhotoPanel) Kind() string { return KindSurgicalPhotos }

// HTML renders the title, the privacy notice and the photo grid.
func (s SurgicalPhotoPanel) HTML() string {
	columns := s.Columns
	if columns < 1 {
		columns = DefaultPhotoColumns
	}
	id := orDefault(s.ID, "surgical-panel")

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="surgical-photo-panel" id="%s">`+"\n", esc(id))
	if s.Title != "" {
		fmt.Fprintf(&b, "  <h3 class=\"panel-title\">%s</h3>\n", esc(numberedTitle(s.Number, s.Title)))
	}
	if s.PrivacyNotice {
		fmt.Fprintf(&b, "  <div class=\"privacy-notice\">\n    <em>%s</em>\n  </div>\n", esc(PrivacyNotice))
	}
	fmt.Fprintf(&b, "  <div class=\"photo-grid\" data-columns=\"%d\">\n", columns)
	for _, photo := range s.Photos {
		b.WriteString("    <div class=\"photo-item\">\n")
		fmt.Fprintf(&b, `      <img src="%s" alt="%s" class="surgical-photo"%s>`+"\n", esc(photo.Path), esc(photo.AltText), photo.sizeAttrs())
		if photo.Caption != "" {
			fmt.Fprintf(&b, "      <div class=\"photo-caption\">%s</div>\n", esc(photo.Caption))
		}
		b.WriteString("    </div>\n")
	}
	b.WriteString("  </div>\n</div>")
	return b.String()
}

// Summary lists the title, the privacy notice and one line per photo.
func (s SurgicalPhotoPanel) Summary() []string {
	lines := make([]string, 0, len(s.Photos)+2)
	if s.Title != "" {
		lines = append(lines, numberedTitle(s.Number, s.Title))
	}
	if s.PrivacyNotice {
		lines = append(lines, PrivacyNotice)
	}
	for _, photo := range s.Photos {
		lines = append(lines, photo.describe())
	}
	return lines
}
