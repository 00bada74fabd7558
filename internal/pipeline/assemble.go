package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-manuscript/internal/markup"
	"github.com/alnah/go-manuscript/internal/metadata"
	"github.com/alnah/go-manuscript/internal/sections"
)

// Bibliography styles.
const (
	StyleNumbered = "numbered"
	StyleAPA      = "apa"
	StyleMLA      = "mla"
)

// MaxHeadingLevel caps rendered heading tags. Deeper sections keep their
// number and TOC depth but render as h3.
const MaxHeadingLevel = 3

// listTitles are the figure and table list headings per language.
var listTitles = map[string][2]string{
	"en": {"List of Figures", "List of Tables"},
	"ru": {"Список рисунков", "Список таблиц"},
}

// captionWords label figure and table list entries per language.
var captionWords = map[string][2]string{
	"en": {"Figure", "Table"},
	"ru": {"Рисунок", "Таблица"},
}

// Settings are the configuration values assembly depends on.
type Settings struct {
	// Title overrides every other title source when set.
	Title string
	// DefaultTitle is used when neither metadata nor an H1 names the document.
	DefaultTitle string
	// Author and Date replace the document's fields when non-empty.
	Author string
	Date   string
	// DefaultAuthor and DefaultDate fill the fields the document lacks.
	DefaultAuthor string
	DefaultDate   string
	// Language is the document language; empty means detected.
	Language string

	TOC          bool
	TOCDepth     int
	TOCTitle     string
	TOCPageBreak bool

	NumberSections bool
	NumberFormat   string
	NumberFigures  bool
	NumberTables   bool

	Bibliography      bool
	BibliographyStyle string
	BibliographyTitle string

	Index      bool
	IndexTitle string
}

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	Level  int
	Number string
	Title  string
	Anchor string
}

// SectionView is one section ready for emission, in document order.
type SectionView struct {
	Level        int // source heading level
	HeadingLevel int // rendered level, at most MaxHeadingLevel
	Number       string
	Title        string
	Anchor       string
	// Content is markdown with fragment tokens.
	Content string
	// ShowHeading is false for the title section, whose heading the
	// title page already shows.
	ShowHeading bool
}

// ListEntry is one line of the figure or table list.
type ListEntry struct {
	Label   string // "Figure 3", "Table 1"
	Caption string
	Anchor  string
}

// IndexEntry maps a keyword to the sections mentioning it.
type IndexEntry struct {
	Term     string
	Sections []TOCEntry
}

// Document is an assembled manuscript. Emitters only serialise it.
type Document struct {
	Title    string
	Language string
	// Metadata holds the title page fields other than the title.
	Metadata []metadata.Field
	// Preamble is the text before the first heading, with tokens.
	Preamble   string
	TOC        []TOCEntry
	Sections   []SectionView
	Figures    []ListEntry
	Tables     []ListEntry
	References []metadata.Reference
	Index      []IndexEntry
	Registry   *markup.Registry
	Inventory  metadata.Inventory
	Settings   Settings
}

// FiguresTitle returns the localized figure list heading.
func (d *Document) FiguresTitle() string { return d.listTitle(0) }

// TablesTitle returns the localized table list heading.
func (d *Document) TablesTitle() string { return d.listTitle(1) }

func (d *Document) listTitle(i int) string {
	titles, ok := listTitles[d.Language]
	if !ok {
		titles = listTitles["en"]
	}
	return titles[i]
}

// Assemble runs every document stage up to, but not including, emission.
// The source is preprocessed first; ctx is checked between stages.
func Assemble(ctx context.Context, source string, s Settings) (*Document, error) {
	text := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, source)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extracted, err := metadata.Extract(text)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lang := resolveLanguage(s.Language, extracted.Language)
	mctx := markup.NewContext(markup.Options{Language: lang, NumberFigures: s.NumberFigures})
	processed := markup.Process(metadata.StripFields(extracted.Body), mctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := sections.ParseWith(processed, mctx.Registry)
	tree.Number(s.NumberSections, s.NumberFormat)

	meta := extracted.Metadata
	if s.Author != "" {
		meta.Set(metadata.KeyAuthor, "", s.Author)
	}
	if s.Date != "" {
		meta.Set(metadata.KeyDate, "", s.Date)
	}
	if s.DefaultAuthor != "" && !meta.Has(metadata.KeyAuthor) {
		meta.Set(metadata.KeyAuthor, "", s.DefaultAuthor)
	}
	if s.DefaultDate != "" && !meta.Has(metadata.KeyDate) {
		meta.Set(metadata.KeyDate, "", s.DefaultDate)
	}

	doc := &Document{
		Language:  lang,
		Preamble:  strings.TrimSpace(tree.Preamble),
		Registry:  mctx.Registry,
		Inventory: extracted.Inventory,
		Settings:  s,
	}
	doc.Title = resolveTitle(s, meta, tree)
	for _, f := range meta.Fields() {
		if f.Key != metadata.KeyTitle {
			doc.Metadata = append(doc.Metadata, f)
		}
	}

	if s.Bibliography && len(extracted.References) > 0 {
		doc.References = extracted.References
	}
	doc.Sections = sectionViews(tree, doc.Title, doc.References != nil)
	if s.TOC {
		doc.TOC = tocEntries(doc.Sections, s.TOCDepth)
	}
	words, ok := captionWords[lang]
	if !ok {
		words = captionWords["en"]
	}
	if s.NumberFigures {
		doc.Figures = listEntries(mctx.Counter.Figures, words[0])
	}
	if s.NumberTables {
		doc.Tables = listEntries(mctx.Counter.Tables, words[1])
	}
	if s.Index {
		doc.Index = buildIndex(meta.Get(metadata.KeyKeywords), doc.Sections)
	}
	return doc, nil
}

func resolveLanguage(configured, detected string) string {
	lang := strings.ToLower(strings.TrimSpace(configured))
	if lang == "" {
		lang = detected
	}
	if strings.HasPrefix(lang, "ru") {
		return "ru"
	}
	return "en"
}

// resolveTitle picks the override, then the metadata title, then the
// first root H1, then the configured default.
func resolveTitle(s Settings, meta metadata.Metadata, tree *sections.Tree) string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	if t := strings.TrimSpace(meta.Get(metadata.KeyTitle)); t != "" {
		return t
	}
	for _, root := range tree.Roots {
		if root.Level == 1 {
			return root.Title
		}
	}
	return s.DefaultTitle
}

// sectionViews flattens the tree in document order. The first root H1
// titled like the document loses its heading. With a bibliography the
// source references section and its subsections are dropped.
func sectionViews(tree *sections.Tree, title string, dropReferences bool) []SectionView {
	var (
		out        []SectionView
		titleTaken bool
	)
	tree.Walk(func(sec *sections.Section) bool {
		if dropReferences && sec.Level >= 2 && sec.Level <= 3 && metadata.IsReferencesTitle(sec.Title) {
			return false
		}
		show := true
		if !titleTaken && sec.Level == 1 && strings.EqualFold(strings.TrimSpace(sec.Title), strings.TrimSpace(title)) {
			titleTaken = true
			show = false
		}
		out = append(out, SectionView{
			Level:        sec.Level,
			HeadingLevel: min(sec.Level, MaxHeadingLevel),
			Number:       sec.Number,
			Title:        sec.Title,
			Anchor:       sec.Anchor,
			Content:      sec.Content,
			ShowHeading:  show,
		})
		return true
	})
	return out
}

func tocEntries(views []SectionView, depth int) []TOCEntry {
	var out []TOCEntry
	for _, v := range views {
		if !v.ShowHeading || v.Level > depth {
			continue
		}
		out = append(out, TOCEntry{Level: v.Level, Number: v.Number, Title: v.Title, Anchor: v.Anchor})
	}
	return out
}

func listEntries(entries []markup.Entry, word string) []ListEntry {
	out := make([]ListEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ListEntry{
			Label:   fmt.Sprintf("%s %s", word, e.Number),
			Caption: e.Caption,
			Anchor:  e.ID,
		})
	}
	return out
}

// buildIndex lists, for each comma-separated keyword, the sections whose
// title or content mentions it. Keywords found nowhere are kept with no
// sections.
func buildIndex(keywords string, views []SectionView) []IndexEntry {
	var out []IndexEntry
	seen := make(map[string]bool)
	for _, kw := range strings.FieldsFunc(keywords, func(r rune) bool { return r == ',' || r == ';' }) {
		term := strings.TrimSpace(kw)
		key := strings.ToLower(term)
		if term == "" || seen[key] {
			continue
		}
		seen[key] = true

		entry := IndexEntry{Term: term}
		for _, v := range views {
			if v.Anchor == "" || !v.ShowHeading {
				continue
			}
			if strings.Contains(strings.ToLower(v.Title+"\n"+v.Content), key) {
				entry.Sections = append(entry.Sections, TOCEntry{Level: v.Level, Number: v.Number, Title: v.Title, Anchor: v.Anchor})
			}
		}
		out = append(out, entry)
	}
	return out
}
