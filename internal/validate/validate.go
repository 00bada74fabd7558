// Package validate reports structural and editorial problems in a
// manuscript before it is converted.
//
// Errors make a manuscript invalid. Warnings and notes are advisory.
package validate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-manuscript/internal/components"
	"github.com/alnah/go-manuscript/internal/markup"
	"github.com/alnah/go-manuscript/internal/metadata"
	"github.com/alnah/go-manuscript/internal/sections"
)

// ErrReadManuscript is returned when the manuscript file cannot be read.
var ErrReadManuscript = errors.New("failed to read manuscript")

// MinSections is the number of level-2 sections below which a warning is
// reported.
const MinSections = 3

// Severity ranks a finding.
type Severity int

// Severities, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "info"
}

// Finding codes.
const (
	CodeMissingField          = "missing-field"
	CodeMissingTitle          = "missing-title"
	CodeFewSections           = "few-sections"
	CodeMissingAbstract       = "missing-abstract"
	CodeUncaptionedTables     = "uncaptioned-tables"
	CodeFigureCaptionMismatch = "figure-caption-mismatch"
	CodeNoCitations           = "no-citations"
	CodeMissingReferences     = "missing-references"
	CodeCallouts              = "callouts"
	CodeStatistics            = "statistics"
)

// Finding is one reported issue.
type Finding struct {
	Severity Severity
	Code     string
	Message  string
}

// Report collects the findings for one manuscript.
type Report struct {
	Path     string
	Findings []Finding

	WordCount int
	Sections  int // level-2 headings
	Figures   int
	Tables    int
	Citations int
	Callouts  map[string]int
}

// Valid reports whether the manuscript has no errors.
func (r *Report) Valid() bool {
	return len(r.bySeverity(SeverityError)) == 0
}

// Errors returns the error findings.
func (r *Report) Errors() []Finding { return r.bySeverity(SeverityError) }

// Warnings returns the warning findings.
func (r *Report) Warnings() []Finding { return r.bySeverity(SeverityWarning) }

// Notes returns the informational findings.
func (r *Report) Notes() []Finding { return r.bySeverity(SeverityInfo) }

func (r *Report) bySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) add(s Severity, code, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: s, Code: code, Message: fmt.Sprintf(format, args...)})
}

var (
	citationRe      = regexp.MustCompile(`\[\d+\]`)
	tableCaptionRe  = regexp.MustCompile(`^\s*\*{0,2}(?:Table|Таблица)\s+\d+\.`)
	figureCaptionRe = regexp.MustCompile(`^\s*\*{1,2}(?:Figure|Рисунок)\s+\d+\.`)
	blockOpenRe     = regexp.MustCompile(`^\s*:::([a-z][a-z-]*)`)
	abstractWords   = []string{"abstract", "аннотация", "резюме"}
)

// requiredFields are checked in this order.
var requiredFields = []string{metadata.KeyAuthor, metadata.KeyDate, metadata.KeyKeywords}

// ValidateFile reads and validates the manuscript at path.
func ValidateFile(path string) (*Report, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadManuscript, err)
	}
	r, err := Validate(string(data))
	if err != nil {
		return nil, err
	}
	r.Path = path
	return r, nil
}

// Validate checks source. It fails only when the front matter cannot be
// decoded.
func Validate(source string) (*Report, error) {
	res, err := metadata.Extract(source)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(res.Body, "\n")
	code := markup.CodeLines(lines)
	tree := sections.Parse(res.Body)

	r := &Report{Callouts: map[string]int{}}
	checkFields(r, res.Metadata)
	checkStructure(r, tree, res.Body)
	checkTables(r, lines, code, len(res.Inventory.Tables))
	checkFigures(r, lines, code, len(res.Inventory.Figures))
	checkCitations(r, lines, code, tree)
	checkCallouts(r, lines, code)

	r.WordCount = countWords(lines, code)
	r.add(SeverityInfo, CodeStatistics, "%d words, %d sections, %d figures, %d tables, %d citations",
		r.WordCount, r.Sections, r.Figures, r.Tables, r.Citations)
	return r, nil
}

func checkFields(r *Report, m metadata.Metadata) {
	for _, key := range requiredFields {
		if err := validation.Validate(strings.TrimSpace(m.Get(key)), validation.Required); err != nil {
			r.add(SeverityWarning, CodeMissingField, "missing %s field", key)
		}
	}
}

func checkStructure(r *Report, tree *sections.Tree, body string) {
	var h1 bool
	tree.Walk(func(s *sections.Section) bool {
		switch s.Level {
		case 1:
			h1 = true
		case 2:
			r.Sections++
		}
		return true
	})
	if !h1 {
		r.add(SeverityError, CodeMissingTitle, "no level-1 heading")
	}
	if r.Sections < MinSections {
		r.add(SeverityWarning, CodeFewSections, "only %d sections, at least %d recommended", r.Sections, MinSections)
	}

	lower := strings.ToLower(body)
	for _, w := range abstractWords {
		if strings.Contains(lower, w) {
			return
		}
	}
	r.add(SeverityWarning, CodeMissingAbstract, "no abstract")
}

func checkTables(r *Report, lines []string, code []bool, tables int) {
	r.Tables = tables
	if tables == 0 {
		return
	}
	for i, line := range lines {
		if !code[i] && tableCaptionRe.MatchString(line) {
			return
		}
	}
	r.add(SeverityWarning, CodeUncaptionedTables, "%d tables without captions", tables)
}

func checkFigures(r *Report, lines []string, code []bool, figures int) {
	r.Figures = figures
	if figures == 0 {
		return
	}
	var captions int
	for i, line := range lines {
		if !code[i] && figureCaptionRe.MatchString(line) {
			captions++
		}
	}
	if captions != figures {
		r.add(SeverityWarning, CodeFigureCaptionMismatch, "%d figures but %d captions", figures, captions)
	}
}

func checkCitations(r *Report, lines []string, code []bool, tree *sections.Tree) {
	for i, line := range lines {
		if !code[i] {
			r.Citations += len(citationRe.FindAllString(line, -1))
		}
	}
	if r.Citations == 0 {
		r.add(SeverityWarning, CodeNoCitations, "no numeric citations")
	}

	var found bool
	tree.Walk(func(s *sections.Section) bool {
		if metadata.IsReferencesTitle(s.Title) {
			found = true
			return false
		}
		return true
	})
	if !found {
		r.add(SeverityWarning, CodeMissingReferences, "no references section")
	}
}

func checkCallouts(r *Report, lines []string, code []bool) {
	for i, line := range lines {
		if code[i] {
			continue
		}
		m := blockOpenRe.FindStringSubmatch(line)
		if m != nil && components.IsCalloutKind(m[1]) {
			r.Callouts[m[1]]++
		}
	}
	if len(r.Callouts) == 0 {
		r.add(SeverityInfo, CodeCallouts, "no callout boxes used")
		return
	}
	var parts []string
	for _, kind := range components.CalloutKinds {
		if n := r.Callouts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", kind, n))
		}
	}
	r.add(SeverityInfo, CodeCallouts, "callout boxes: %s", strings.Join(parts, ", "))
}

// countWords counts words outside code and block markers.
func countWords(lines []string, code []bool) int {
	var n int
	for i, line := range lines {
		if code[i] || strings.HasPrefix(strings.TrimSpace(line), ":::") {
			continue
		}
		for _, f := range strings.Fields(line) {
			if strings.IndexFunc(f, isWordRune) >= 0 {
				n++
			}
		}
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Write prints r in a human-readable layout.
func (r *Report) Write(w io.Writer) {
	if r.Path != "" {
		fmt.Fprintf(w, "%s\n", r.Path)
	}
	for _, group := range []struct {
		title    string
		findings []Finding
	}{
		{"Errors", r.Errors()},
		{"Warnings", r.Warnings()},
		{"Notes", r.Notes()},
	} {
		if len(group.findings) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s (%d):\n", group.title, len(group.findings))
		for _, f := range group.findings {
			fmt.Fprintf(w, "    - %s\n", f.Message)
		}
	}
	if r.Valid() {
		fmt.Fprintln(w, "  PASSED")
	} else {
		fmt.Fprintln(w, "  FAILED")
	}
}
