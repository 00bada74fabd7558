// Package sections builds the heading tree of a manuscript and numbers it.
package sections

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-manuscript/internal/components"
	"github.com/alnah/go-manuscript/internal/markup"
	"github.com/alnah/go-manuscript/internal/slugs"
)

// MaxLevel is the deepest heading level.
const MaxLevel = 6

// AnchorPrefix starts every section anchor.
const AnchorPrefix = "sec-"

var (
	headingRe       = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	closingHashesRe = regexp.MustCompile(`\s+#+$`)
)

// Section is one heading and the text directly under it.
type Section struct {
	Level   int
	Title   string
	Content string // text before the first deeper heading
	Number  string // "2.3"; empty when numbering is off
	Anchor  string
	Line    int // 1-based line of the heading
	// Children are owned by this section, in document order.
	Children []*Section

	lines []string
}

// Tree is the parsed heading structure of one document.
type Tree struct {
	// Preamble is the text before the first heading. It is kept but not
	// rendered as a section.
	Preamble string
	Roots    []*Section
}

// Parse builds the section tree of text. Lines inside fenced code blocks
// or ":::" blocks are never headings. A heading attaches to the nearest
// open heading of a lower level, or becomes a root when there is none.
func Parse(text string) *Tree {
	return ParseWith(text, nil)
}

// ParseWith is Parse for text that went through markup.Process: lines
// inside the boxes reg holds tokens for are section content too.
func ParseWith(text string, reg *markup.Registry) *Tree {
	lines := strings.Split(text, "\n")
	code := markup.CodeLines(lines)
	blocks := markup.BlockLines(lines)
	boxed := reg.Enclosed(lines)
	anchors := slugs.NewSet(AnchorPrefix)

	var (
		tree     = &Tree{}
		tracked  [MaxLevel + 1]*Section
		current  *Section
		preamble []string
	)

	for i, line := range lines {
		if !code[i] && !blocks[i] && !boxed[i] {
			if m := headingRe.FindStringSubmatch(strings.TrimRight(line, " \t")); m != nil {
				level := len(m[1])
				title := strings.TrimSpace(closingHashesRe.ReplaceAllString(m[2], ""))
				s := &Section{
					Level:  level,
					Title:  title,
					Anchor: anchors.Make(title),
					Line:   i + 1,
				}

				var parent *Section
				for l := level - 1; l >= 1 && level > 1; l-- {
					if tracked[l] != nil {
						parent = tracked[l]
						break
					}
				}
				if parent != nil {
					parent.Children = append(parent.Children, s)
				} else {
					tree.Roots = append(tree.Roots, s)
				}

				tracked[level] = s
				for l := level + 1; l <= MaxLevel; l++ {
					tracked[l] = nil
				}
				current = s
				continue
			}
		}

		if current == nil {
			preamble = append(preamble, line)
		} else {
			current.lines = append(current.lines, line)
		}
	}

	tree.Preamble = joinContent(preamble)
	tree.Walk(func(s *Section) bool {
		s.Content = joinContent(s.lines)
		s.lines = nil
		return true
	})
	return tree
}

// joinContent joins lines and drops surrounding blank lines.
func joinContent(lines []string) string {
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// Walk visits sections in pre-order. Returning false skips the children
// of the visited section.
func (t *Tree) Walk(fn func(*Section) bool) {
	var visit func([]*Section)
	visit = func(list []*Section) {
		for _, s := range list {
			if fn(s) {
				visit(s.Children)
			}
		}
	}
	visit(t.Roots)
}

// Flatten returns every section in pre-order.
func (t *Tree) Flatten() []*Section {
	var out []*Section
	t.Walk(func(s *Section) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Len returns the number of sections in the tree.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(*Section) bool {
		n++
		return true
	})
	return n
}

// Number formats for the root component of section numbers.
const (
	FormatDecimal = "decimal"
	FormatRoman   = "roman"
	FormatLetter  = "letter"
)

// Number assigns dot-separated numbers in pre-order: roots by position
// among roots, children as "parent.index". The format applies to the
// root component only ("II.3"). When enabled is false every number is
// cleared.
func (t *Tree) Number(enabled bool, format string) {
	var assign func(list []*Section, prefix string)
	assign = func(list []*Section, prefix string) {
		for i, s := range list {
			switch {
			case !enabled:
				s.Number = ""
			case prefix == "":
				s.Number = formatRoot(i+1, format)
			default:
				s.Number = prefix + "." + strconv.Itoa(i+1)
			}
			assign(s.Children, s.Number)
		}
	}
	assign(t.Roots, "")
}

func formatRoot(n int, format string) string {
	switch format {
	case FormatRoman:
		return Roman(n)
	case FormatLetter:
		return components.PanelLetter(n - 1)
	}
	return strconv.Itoa(n)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman formats n as an upper-case Roman numeral. Values below 1 fall
// back to decimal.
func Roman(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
