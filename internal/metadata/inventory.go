package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/alnah/go-manuscript/internal/markup"
)

// Figure is a markdown image, numbered in document order.
type Figure struct {
	ID      int
	Caption string // the alt text
	Path    string
}

// Table is a markdown table, numbered in document order.
type Table struct {
	ID      int
	Caption string
	Content string
}

// Inventory lists the images and tables of a document.
type Inventory struct {
	Figures []Figure
	Tables  []Table
}

var imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]*)[^)]*\)`)

// TakeInventory numbers every markdown image and every markdown table
// outside fenced code. A table is a run of at least two lines that start
// and end with "|".
func TakeInventory(text string) Inventory {
	var inv Inventory
	lines := strings.Split(text, "\n")
	code := markup.CodeLines(lines)

	var run []string
	flush := func() {
		if len(run) >= 2 {
			id := len(inv.Tables) + 1
			inv.Tables = append(inv.Tables, Table{
				ID:      id,
				Caption: "Table " + strconv.Itoa(id),
				Content: strings.Join(run, "\n"),
			})
		}
		run = nil
	}

	for i, line := range lines {
		if code[i] {
			flush()
			continue
		}
		for _, m := range imageRe.FindAllStringSubmatch(line, -1) {
			inv.Figures = append(inv.Figures, Figure{ID: len(inv.Figures) + 1, Caption: m[1], Path: m[2]})
		}
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			run = append(run, trimmed)
			continue
		}
		flush()
	}
	flush()
	return inv
}

// DetectLanguage returns "ru" when Cyrillic letters outnumber Latin ones,
// otherwise "en".
func DetectLanguage(text string) string {
	var cyrillic, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	if cyrillic > latin {
		return "ru"
	}
	return "en"
}
