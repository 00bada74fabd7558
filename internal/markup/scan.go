package markup

import (
	"regexp"
	"strings"
)

// openerRe matches a block start marker such as ":::gallery columns=2".
var openerRe = regexp.MustCompile(`^\s{0,3}:::\s*([a-z][a-z0-9-]*)(?:\s+(.*?))?\s*$`)

// Block is one top-level fenced block found by Scan.
type Block struct {
	Kind       string
	Attrs      Attrs
	Positional []string
	// Start and End are the line indexes of the opening and closing markers.
	Start, End int
	// Inner holds every line between the markers, nested blocks included.
	Inner []string
	// Direct holds the lines at depth one only: nested blocks and their
	// markers are left out.
	Direct []string
}

// isCloser reports whether line is a bare closing marker.
func isCloser(line string) bool {
	return strings.TrimSpace(line) == ":::"
}

// fenceState tracks fenced code blocks so markers inside code are ignored.
type fenceState struct {
	char byte
	size int
}

// update consumes line and reports whether it is code (fence lines included).
func (f *fenceState) update(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return f.size > 0
	}
	if f.size == 0 {
		if c, n := fenceRun(trimmed); n >= 3 {
			f.char, f.size = c, n
			return true
		}
		return false
	}
	if c, n := fenceRun(trimmed); c == f.char && n >= f.size && strings.TrimSpace(trimmed[n:]) == "" {
		f.char, f.size = 0, 0
	}
	return true
}

// fenceRun returns the leading run of ` or ~ characters.
func fenceRun(s string) (byte, int) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	c := s[0]
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return c, n
}

// CodeLines marks which lines belong to fenced code blocks.
func CodeLines(lines []string) []bool {
	var fs fenceState
	mask := make([]bool, len(lines))
	for i, line := range lines {
		mask[i] = fs.update(line)
	}
	return mask
}

// Scan returns the top-level blocks of lines in document order. Every
// ":::word" line opens a fence and every bare ":::" closes the innermost
// open one. Openers still open at the end, and closers with nothing to
// close, are plain text. Markers inside fenced code are ignored.
func Scan(lines []string) []Block {
	closeAt := matchMarkers(lines, CodeLines(lines))

	var blocks []Block
	for i := 0; i < len(lines); i++ {
		end, ok := closeAt[i]
		if !ok {
			continue
		}
		m := openerRe.FindStringSubmatch(lines[i])
		attrs, positional := ParseAttrs(m[2])
		b := Block{Kind: m[1], Attrs: attrs, Positional: positional, Start: i, End: end}
		b.Inner = append([]string(nil), lines[i+1:end]...)
		for j := i + 1; j < end; j++ {
			if nestedEnd, nested := closeAt[j]; nested {
				j = nestedEnd
				continue
			}
			b.Direct = append(b.Direct, lines[j])
		}
		blocks = append(blocks, b)
		i = end
	}
	return blocks
}

// BlockLines marks the lines of every top-level block, markers included.
func BlockLines(lines []string) []bool {
	mask := make([]bool, len(lines))
	for _, b := range Scan(lines) {
		for i := b.Start; i <= b.End; i++ {
			mask[i] = true
		}
	}
	return mask
}

// matchMarkers pairs openers with closers in one pass and returns the
// closing line index keyed by the opening one.
func matchMarkers(lines []string, code []bool) map[int]int {
	closeAt := make(map[int]int)
	var open []int
	for i, line := range lines {
		switch {
		case code[i]:
		case openerRe.MatchString(line):
			open = append(open, i)
		case isCloser(line) && len(open) > 0:
			closeAt[open[len(open)-1]] = i
			open = open[:len(open)-1]
		}
	}
	return closeAt
}
