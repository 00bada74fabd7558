package components

import (
	"fmt"
	"strings"
)

// Procedure layouts.
const (
	ProcedureVertical   = "vertical"
	ProcedureHorizontal = "horizontal"
	ProcedureGrid       = "grid"
)

// ParseProcedureLayout returns the layout for a token, falling back to vertical.
func ParseProcedureLayout(s string) (string, bool) {
	switch l := strings.ToLower(strings.TrimSpace(s)); l {
	case ProcedureVertical, ProcedureHorizontal, ProcedureGrid:
		return l, true
	}
	return ProcedureVertical, false
}

// Procedure is a sequence of step images. Steps are numbered by position;
// Number labels the whole figure.
type Procedure struct {
	ID       string
	Steps    []Image
	Title    string
	Layout   string
	Number   string
	Numbered bool
}

// Kind implements Component.
func (Procedure) Kind() string { return KindProcedure }

// HTML renders the procedure title and its steps.
func (p Procedure) HTML() string {
	layout, _ := ParseProcedureLayout(p.Layout)
	id := orDefault(p.ID, "procedure")

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="procedure-container %s-layout" id="%s">`+"\n", layout, esc(id))
	if p.Title != "" {
		fmt.Fprintf(&b, "  <h3 class=\"procedure-title\">%s</h3>\n", esc(numberedTitle(p.Number, p.Title)))
	}
	b.WriteString("  <div class=\"procedure-steps\">\n")
	for i, step := range p.Steps {
		b.WriteString("    <div class=\"procedure-step\">\n")
		if p.Numbered {
			fmt.Fprintf(&b, "      <div class=\"step-number\">Step %d</div>\n", i+1)
		}
		fmt.Fprintf(&b, `      <img src="%s" alt="%s" class="step-image"%s>`+"\n", esc(step.Path), esc(step.AltText), step.sizeAttrs())
		if step.Caption != "" {
			fmt.Fprintf(&b, "      <div class=\"step-caption\">%s</div>\n", esc(step.Caption))
		}
		b.WriteString("    </div>\n")
	}
	b.WriteString("  </div>\n</div>")
	return b.String()
}

// Summary lists the title and one "Step N" line per step.
func (p Procedure) Summary() []string {
	lines := make([]string, 0, len(p.Steps)+1)
	if p.Title != "" {
		lines = append(lines, numberedTitle(p.Number, p.Title))
	}
	for i, step := range p.Steps {
		line := step.describe()
		if p.Numbered {
			line = fmt.Sprintf("Step %d: %s", i+1, line)
		}
		lines = append(lines, line)
	}
	return lines
}
