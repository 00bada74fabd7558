package pipeline

import (
	"context"
	"html"
	"regexp"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos, ok := afterBodyOpen(htmlContent, lowerHTML); ok {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// ScriptInjector defines the contract for script injection into HTML.
type ScriptInjector interface {
	InjectScript(ctx context.Context, htmlContent, script string) string
}

// ScriptInjection appends an inline <script> block to HTML content.
type ScriptInjection struct{}

// InjectScript inserts a <script> block before </body>, or appends it.
func (s *ScriptInjection) InjectScript(ctx context.Context, htmlContent, script string) string {
	if strings.TrimSpace(script) == "" || ctx.Err() != nil {
		return htmlContent
	}

	block := "<script>" + sanitizeScript(script) + "</script>"
	if idx := strings.LastIndex(strings.ToLower(htmlContent), "</body>"); idx != -1 {
		return htmlContent[:idx] + block + "\n" + htmlContent[idx:]
	}
	return htmlContent + block
}

var scriptCloseRe = regexp.MustCompile(`(?i)</script`)

// sanitizeScript escapes closing script tags inside the script body.
func sanitizeScript(script string) string {
	return scriptCloseRe.ReplaceAllString(script, `<\/script`)
}

// afterBodyOpen returns the position just after the <body ...> tag.
func afterBodyOpen(htmlContent, lowerHTML string) (int, bool) {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return 0, false
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return 0, false
	}
	return idx + closeIdx + 1, true
}

// Compile-time interface checks.
var (
	_ CSSInjector    = (*CSSInjection)(nil)
	_ ScriptInjector = (*ScriptInjection)(nil)
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTMLTags removes HTML tags, decodes entities and trims whitespace.
// Decoding avoids double-encoding when the text is escaped again later.
func StripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
