package manuscript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-manuscript/internal/config"
)

// fallbackFontStack follows the configured font family.
const fallbackFontStack = "Times, serif"

// buildPageCSS generates the @page rule from the paper size and margins.
// Chrome reads it when printing, so it must precede the stylesheets that
// could otherwise set another size.
func buildPageCSS(doc config.DocumentConfig, m config.MarginsConfig) string {
	size, ok := config.CanonicalPaperSize(doc.PaperSize)
	if !ok {
		size = "A4"
	}
	return fmt.Sprintf(`
/* Page: paper size and margins */
@page {
  size: %s;
  margin: %scm %scm %scm %scm;
}
`, size, formatNumber(m.Top), formatNumber(m.Right), formatNumber(m.Bottom), formatNumber(m.Left))
}

// buildTypographyCSS generates body and heading rules from the formatting
// and styles sections.
func buildTypographyCSS(f config.FormattingConfig, s config.StylesConfig) string {
	var buf strings.Builder

	size := f.FontSize
	if s.Body.FontSize > 0 {
		size = float64(s.Body.FontSize)
	}

	buf.WriteString("\n/* Typography */\nbody.manuscript {\n")
	if f.FontFamily != "" {
		fmt.Fprintf(&buf, "  font-family: \"%s\", %s;\n", escapeCSSString(f.FontFamily), fallbackFontStack)
	}
	if size > 0 {
		fmt.Fprintf(&buf, "  font-size: %spt;\n", formatNumber(size))
	}
	if f.LineSpacing > 0 {
		fmt.Fprintf(&buf, "  line-height: %s;\n", formatNumber(f.LineSpacing))
	}
	if s.Body.Alignment != "" {
		fmt.Fprintf(&buf, "  text-align: %s;\n", s.Body.Alignment)
	}
	buf.WriteString("}\n")

	for i, h := range []config.HeadingStyle{s.Heading1, s.Heading2, s.Heading3} {
		fmt.Fprintf(&buf, "h%d {\n", i+1)
		if h.FontSize > 0 {
			fmt.Fprintf(&buf, "  font-size: %dpt;\n", h.FontSize)
		}
		if h.Bold {
			buf.WriteString("  font-weight: bold;\n")
		} else {
			buf.WriteString("  font-weight: normal;\n")
		}
		if h.Color != "" {
			fmt.Fprintf(&buf, "  color: #%s;\n", h.Color)
		}
		buf.WriteString("}\n")
	}
	return buf.String()
}

// buildConfigCSS combines the configuration-driven rules. They follow the
// built-in stylesheets so configured values win.
func buildConfigCSS(cfg *Config) string {
	return buildPageCSS(cfg.Document, cfg.Formatting.Margins) +
		buildTypographyCSS(cfg.Formatting, cfg.Styles)
}

// escapeCSSString escapes a string for use inside a double-quoted CSS
// string. Newlines are dropped.
func escapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// formatNumber prints v without trailing zeros: 2.5 -> "2.5", 12 -> "12".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
