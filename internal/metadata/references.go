package metadata

import (
	"regexp"
	"strings"

	"github.com/alnah/go-manuscript/internal/markup"
)

// Reference is one bibliography entry, numbered by appearance.
type Reference struct {
	ID   int
	Text string
	URL  string
}

// referenceTitles are the lower-cased headings of a references section.
var referenceTitles = map[string]bool{
	"references":        true,
	"bibliography":      true,
	"literature":        true,
	"источники":         true,
	"список литературы": true,
	"литература":        true,
}

var (
	refHeadingRe = regexp.MustCompile(`^(#{2,3})\s+(.+?)\s*$`)
	anyHeadingRe = regexp.MustCompile(`^(#{1,6})\s+`)
	linkRe       = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]*)[^)]*\)`)
)

// IsReferencesTitle reports whether a heading title names a references
// section. Case and a trailing colon are ignored.
func IsReferencesTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	t = strings.TrimSuffix(t, ":")
	return referenceTitles[t]
}

// ExtractReferences finds the first "##" or "###" references heading and
// numbers every markdown link in that section's body. The body ends at the
// next heading of the same or a higher level. Image links are ignored.
func ExtractReferences(text string) []Reference {
	body := referencesBody(text)
	if body == "" {
		return nil
	}

	var refs []Reference
	for _, m := range linkRe.FindAllStringSubmatch(body, -1) {
		if m[1] == "!" {
			continue
		}
		ref := Reference{ID: len(refs) + 1, Text: strings.TrimSpace(m[2]), URL: m[3]}
		if ref.Text == "" {
			ref.Text = ref.URL
		}
		refs = append(refs, ref)
	}
	return refs
}

// HasReferencesSection reports whether text has a references heading.
func HasReferencesSection(text string) bool {
	_, ok := findReferencesHeading(strings.Split(text, "\n"))
	return ok
}

func findReferencesHeading(lines []string) (int, bool) {
	code := markup.CodeLines(lines)
	for i, line := range lines {
		if code[i] {
			continue
		}
		if m := refHeadingRe.FindStringSubmatch(line); m != nil && IsReferencesTitle(m[2]) {
			return i, true
		}
	}
	return 0, false
}

func referencesBody(text string) string {
	lines := strings.Split(text, "\n")
	start, ok := findReferencesHeading(lines)
	if !ok {
		return ""
	}
	level := len(refHeadingRe.FindStringSubmatch(lines[start])[1])

	code := markup.CodeLines(lines)
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if code[i] {
			continue
		}
		if m := anyHeadingRe.FindStringSubmatch(lines[i]); m != nil && len(m[1]) <= level {
			end = i
			break
		}
	}
	return strings.Join(lines[start+1:end], "\n")
}
