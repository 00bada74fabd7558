package metadata

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestExtractFields - Inline "**Field:** value" lines
// ---------------------------------------------------------------------------

func TestExtractFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{name: "english author", text: "**Author:** Jane Doe", key: KeyAuthor, want: "Jane Doe"},
		{name: "russian author", text: "**Автор:** Иван Петров", key: KeyAuthor, want: "Иван Петров"},
		{name: "colon outside bold", text: "**Date**: 2024-05-01", key: KeyDate, want: "2024-05-01"},
		{name: "keywords synonym", text: "**Ключевые слова:** хирургия, ортопедия", key: KeyKeywords, want: "хирургия, ортопедия"},
		{name: "first match wins", text: "**Title:** First\n**Title:** Second", key: KeyTitle, want: "First"},
		{name: "unknown label ignored", text: "**Note:** nothing", key: KeyTitle, want: ""},
		{name: "inside code ignored", text: "```\n**Author:** Hidden\n```", key: KeyAuthor, want: ""},
		{name: "empty value ignored", text: "**Author:**\n**Author:** Late", key: KeyAuthor, want: "Late"},
		{name: "trailing space trimmed", text: "**Institution:** City Hospital   ", key: KeyInstitution, want: "City Hospital"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := ExtractFields(tt.text)
			if got := m.Get(tt.key); got != tt.want {
				t.Errorf("Get(%s) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestMetadata_FieldsOrderAndLabels(t *testing.T) {
	t.Parallel()

	m := ExtractFields("**Дата:** 2024\n**Автор:** Иван\n**Title:** Study")
	var got []string
	for _, f := range m.Fields() {
		got = append(got, f.Label+"="+f.Value)
	}
	want := []string{"Title=Study", "Автор=Иван", "Дата=2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestFormatTitleBlock_RoundTrip(t *testing.T) {
	t.Parallel()

	var m Metadata
	m.Set(KeyTitle, "", "Outcomes of Knee Arthroplasty")
	m.Set(KeyAuthor, "", "A. Surgeon, B. Resident")
	m.Set(KeyDate, "", "May 1, 2024")

	block := FormatTitleBlock(m)
	back := ExtractFields(block)
	for _, key := range []string{KeyTitle, KeyAuthor, KeyDate} {
		if back.Get(key) != m.Get(key) {
			t.Errorf("%s = %q after round trip, want %q", key, back.Get(key), m.Get(key))
		}
	}
	if strings.Count(block, "\n") != 3 {
		t.Errorf("block = %q, want three lines", block)
	}
}

func TestStripFields(t *testing.T) {
	t.Parallel()

	text := "# Study\n**Author:** First\nBody\n**Author:** Second\n**Note:** kept\n```\n**Date:** code\n```"
	want := "# Study\nBody\n**Author:** Second\n**Note:** kept\n```\n**Date:** code\n```"
	if got := StripFields(text); got != want {
		t.Errorf("StripFields() = %q, want %q", got, want)
	}
	if got := StripFields("no fields"); got != "no fields" {
		t.Errorf("StripFields() = %q, want unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestSplitFrontMatter
// ---------------------------------------------------------------------------

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	text := "---\ntitle: From YAML\nkeywords:\n  - knee\n  - hip\nunrelated: x\n---\n# Body\n"
	m, body, err := SplitFrontMatter(text)
	if err != nil {
		t.Fatalf("SplitFrontMatter() error = %v", err)
	}
	if m.Get(KeyTitle) != "From YAML" {
		t.Errorf("title = %q", m.Get(KeyTitle))
	}
	if m.Get(KeyKeywords) != "knee, hip" {
		t.Errorf("keywords = %q, want joined list", m.Get(KeyKeywords))
	}
	if !strings.HasPrefix(strings.TrimSpace(body), "# Body") {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontMatter_None(t *testing.T) {
	t.Parallel()

	text := "# Plain\n\nNo front matter."
	m, body, err := SplitFrontMatter(text)
	if err != nil {
		t.Fatalf("SplitFrontMatter() error = %v", err)
	}
	if body != text {
		t.Errorf("body = %q, want unchanged", body)
	}
	if len(m.Fields()) != 0 {
		t.Errorf("fields = %v, want none", m.Fields())
	}
}

func TestSplitFrontMatter_EmptyBlock(t *testing.T) {
	t.Parallel()

	m, body, err := SplitFrontMatter("---\n---\n# Body\n")
	if err != nil {
		t.Fatalf("SplitFrontMatter() error = %v", err)
	}
	if len(m.Fields()) != 0 {
		t.Errorf("fields = %v, want none", m.Fields())
	}
	if !strings.Contains(body, "# Body") {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontMatter_Invalid(t *testing.T) {
	t.Parallel()

	_, _, err := SplitFrontMatter("---\ntitle: [unclosed\n---\nbody")
	if !errors.Is(err, ErrFrontMatter) {
		t.Errorf("error = %v, want ErrFrontMatter", err)
	}
}

func TestExtract_FrontMatterWins(t *testing.T) {
	t.Parallel()

	text := "---\nauthor: YAML Author\n---\n**Author:** Inline Author\n**Date:** 2024"
	res, err := Extract(text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got := res.Metadata.Get(KeyAuthor); got != "YAML Author" {
		t.Errorf("author = %q, want front matter value", got)
	}
	if got := res.Metadata.Get(KeyDate); got != "2024" {
		t.Errorf("date = %q, want inline value kept", got)
	}
}

// ---------------------------------------------------------------------------
// TestExtractReferences
// ---------------------------------------------------------------------------

func TestExtractReferences(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"# Paper",
		"See [outside](http://outside.example).",
		"## References",
		"1. [Smith J. Knee surgery](https://doi.org/10.1/a)",
		"2. [Doe A. Hips](https://doi.org/10.1/b) and ![img](x.png)",
		"### Online",
		"- [Guidelines](https://example.org/g)",
		"## Appendix",
		"[After](http://after.example)",
	}, "\n")

	refs := ExtractReferences(text)
	want := []Reference{
		{ID: 1, Text: "Smith J. Knee surgery", URL: "https://doi.org/10.1/a"},
		{ID: 2, Text: "Doe A. Hips", URL: "https://doi.org/10.1/b"},
		{ID: 3, Text: "Guidelines", URL: "https://example.org/g"},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("references = %+v, want %+v", refs, want)
	}
}

func TestExtractReferences_Synonyms(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"References", "BIBLIOGRAPHY", "Список литературы", "Источники", "Literature:"} {
		t.Run(title, func(t *testing.T) {
			t.Parallel()

			refs := ExtractReferences("## " + title + "\n[A](http://a)")
			if len(refs) != 1 {
				t.Errorf("refs = %d, want 1", len(refs))
			}
		})
	}
}

func TestExtractReferences_None(t *testing.T) {
	t.Parallel()

	if refs := ExtractReferences("# Paper\n[link](http://x)"); refs != nil {
		t.Errorf("refs = %+v, want nil", refs)
	}
	if HasReferencesSection("# References\n") {
		t.Error("level-1 heading must not count as a references section")
	}
}

// ---------------------------------------------------------------------------
// TestTakeInventory
// ---------------------------------------------------------------------------

func TestTakeInventory(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"![First](a.png) and ![Second](b.png \"title\")",
		"",
		"| a | b |",
		"|---|---|",
		"| 1 | 2 |",
		"",
		"| lonely |",
		"",
		"```",
		"![Code](c.png)",
		"| x | y |",
		"| 1 | 2 |",
		"```",
		"| c | d |",
		"| 3 | 4 |",
	}, "\n")

	inv := TakeInventory(text)

	if len(inv.Figures) != 2 {
		t.Fatalf("figures = %+v, want 2", inv.Figures)
	}
	if inv.Figures[1].ID != 2 || inv.Figures[1].Path != "b.png" || inv.Figures[1].Caption != "Second" {
		t.Errorf("figure 2 = %+v", inv.Figures[1])
	}
	if len(inv.Tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(inv.Tables))
	}
	if inv.Tables[0].Caption != "Table 1" || !strings.HasPrefix(inv.Tables[0].Content, "| a | b |") {
		t.Errorf("table 1 = %+v", inv.Tables[0])
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Результаты лечения пациентов": "ru",
		"Results of treatment":         "en",
		"12345":                        "en",
		"Knee: коленный сустав":        "ru",
	}
	for text, want := range tests {
		if got := DetectLanguage(text); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", text, got, want)
		}
	}
}
