// Package metadata extracts the descriptive fields, references and the
// figure and table inventory of a manuscript.
package metadata

import (
	"errors"
	"regexp"
	"strings"

	"github.com/alnah/go-manuscript/internal/markup"
)

// ErrFrontMatter is returned when the YAML front matter cannot be decoded.
var ErrFrontMatter = errors.New("invalid front matter")

// Canonical field keys.
const (
	KeyTitle       = "title"
	KeyAuthor      = "author"
	KeyInstitution = "institution"
	KeyDate        = "date"
	KeyKeywords    = "keywords"
)

// fieldOrder is the order fields appear on the title page.
var fieldOrder = []string{KeyTitle, KeyAuthor, KeyInstitution, KeyDate, KeyKeywords}

// synonyms maps a lower-cased field label to its canonical key.
var synonyms = map[string]string{
	"title":          KeyTitle,
	"название":       KeyTitle,
	"заголовок":      KeyTitle,
	"author":         KeyAuthor,
	"authors":        KeyAuthor,
	"автор":          KeyAuthor,
	"авторы":         KeyAuthor,
	"institution":    KeyInstitution,
	"affiliation":    KeyInstitution,
	"учреждение":     KeyInstitution,
	"организация":    KeyInstitution,
	"date":           KeyDate,
	"дата":           KeyDate,
	"keywords":       KeyKeywords,
	"key words":      KeyKeywords,
	"ключевые слова": KeyKeywords,
}

// defaultLabels are used when a field did not come from an inline label.
var defaultLabels = map[string]string{
	KeyTitle:       "Title",
	KeyAuthor:      "Author",
	KeyInstitution: "Institution",
	KeyDate:        "Date",
	KeyKeywords:    "Keywords",
}

// fieldRe matches "**Author:** Jane Doe" and "**Author**: Jane Doe".
var fieldRe = regexp.MustCompile(`^\s*\*\*([^*]+?)(?::\*\*|\*\*:)\s*(.*?)\s*$`)

// CanonicalKey returns the field key for a label, and false when the
// label is not a recognised field.
func CanonicalKey(label string) (string, bool) {
	key, ok := synonyms[strings.ToLower(strings.TrimSpace(label))]
	return key, ok
}

// Field is one descriptive field.
type Field struct {
	Key   string
	Label string // as written in the source, or the English default
	Value string
}

// Metadata holds the recognised fields of a document.
// The zero value is an empty set ready to use.
type Metadata struct {
	fields map[string]Field
}

// Get returns the value for key, or "".
func (m Metadata) Get(key string) string {
	return m.fields[key].Value
}

// Has reports whether key carries a non-empty value.
func (m Metadata) Has(key string) bool {
	return m.fields[key].Value != ""
}

// Set stores a field, replacing any previous value.
func (m *Metadata) Set(key, label, value string) {
	if m.fields == nil {
		m.fields = make(map[string]Field)
	}
	if label == "" {
		label = defaultLabels[key]
	}
	m.fields[key] = Field{Key: key, Label: label, Value: value}
}

// setFirst stores a field only when key is not set yet.
func (m *Metadata) setFirst(key, label, value string) {
	if _, ok := m.fields[key]; ok {
		return
	}
	m.Set(key, label, value)
}

// Fields returns the non-empty fields in title page order.
func (m Metadata) Fields() []Field {
	out := make([]Field, 0, len(m.fields))
	for _, key := range fieldOrder {
		if f, ok := m.fields[key]; ok && f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// ExtractFields scans text line by line for "**Field:** value" lines whose
// label is a recognised field. The first occurrence of a field wins.
// Lines inside fenced code are ignored.
func ExtractFields(text string) Metadata {
	m, _ := scanFields(strings.Split(text, "\n"))
	return m
}

// StripFields removes the lines ExtractFields reads a value from, so the
// body does not repeat what the title page shows.
func StripFields(text string) string {
	lines := strings.Split(text, "\n")
	_, used := scanFields(lines)
	if len(used) == 0 {
		return text
	}
	out := make([]string, 0, len(lines)-len(used))
	for i, line := range lines {
		if !used[i] {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// scanFields returns the fields and the indices of the lines they came from.
func scanFields(lines []string) (Metadata, map[int]bool) {
	var m Metadata
	used := make(map[int]bool)
	code := markup.CodeLines(lines)
	for i, line := range lines {
		if code[i] {
			continue
		}
		match := fieldRe.FindStringSubmatch(line)
		if match == nil || match[2] == "" {
			continue
		}
		key, ok := CanonicalKey(match[1])
		if !ok || m.Has(key) {
			continue
		}
		m.Set(key, strings.TrimSpace(match[1]), match[2])
		used[i] = true
	}
	return m, used
}

// FormatTitleBlock renders title, author and date as "**Field:** value"
// lines. ExtractFields on the result yields the same values.
func FormatTitleBlock(m Metadata) string {
	var b strings.Builder
	for _, key := range []string{KeyTitle, KeyAuthor, KeyDate} {
		if v := strings.TrimSpace(m.Get(key)); v != "" {
			b.WriteString("**" + defaultLabels[key] + ":** " + v + "\n")
		}
	}
	return b.String()
}
