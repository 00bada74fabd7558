package components

import (
	"fmt"
	"strings"
)

// Callout box kinds.
const (
	KindKeyPoints            = "key-points"
	KindWarning              = "warning"
	KindClinicalImplications = "clinical-implications"
	KindEvidenceGrading      = "evidence-grading"
)

// Evidence grades.
const (
	GradeHigh     = "high"
	GradeModerate = "moderate"
	GradeLow      = "low"
	GradeVeryLow  = "very-low"
)

// gradeSymbols follow the GRADE certainty notation.
var gradeSymbols = map[string]string{
	GradeHigh:     "⊕⊕⊕⊕",
	GradeModerate: "⊕⊕⊕◯",
	GradeLow:      "⊕⊕◯◯",
	GradeVeryLow:  "⊕◯◯◯",
}

// calloutTitles holds box titles per language; "en" is the fallback.
var calloutTitles = map[string]map[string]string{
	"en": {
		KindKeyPoints:            "Key Points",
		KindWarning:              "⚠️ Important Warning",
		KindClinicalImplications: "Clinical Implications",
		KindEvidenceGrading:      "Level of Evidence",
	},
	"ru": {
		KindKeyPoints:            "Ключевые положения",
		KindWarning:              "⚠️ Важное предупреждение",
		KindClinicalImplications: "КЛИНИЧЕСКИЕ ВЫВОДЫ",
		KindEvidenceGrading:      "Уровень доказательности",
	},
}

// CalloutKinds lists the callout box kinds in processing order.
var CalloutKinds = []string{KindKeyPoints, KindWarning, KindClinicalImplications, KindEvidenceGrading}

// IsCalloutKind reports whether kind names a callout box.
func IsCalloutKind(kind string) bool {
	for _, k := range CalloutKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// NormalizeGrade lower-cases a grade and falls back to moderate when unknown.
func NormalizeGrade(s string) string {
	g := strings.ToLower(strings.TrimSpace(s))
	if _, ok := gradeSymbols[g]; ok {
		return g
	}
	return GradeModerate
}

// Callout is a highlighted box whose body stays markdown. Only the
// surrounding wrapper is rendered here; Open and Close enclose the
// converted body.
type Callout struct {
	Kind     string
	Grade    string // evidence-grading only
	Language string
}

// Title returns the localized box title, including the grade for
// evidence boxes.
func (c Callout) Title() string {
	titles, ok := calloutTitles[c.Language]
	if !ok {
		titles = calloutTitles["en"]
	}
	title := titles[c.Kind]
	if c.Kind == KindEvidenceGrading {
		title += ": " + strings.ToUpper(NormalizeGrade(c.Grade))
	}
	return title
}

// Open renders the wrapper up to the start of the body.
func (c Callout) Open() string {
	var b strings.Builder
	if c.Kind == KindEvidenceGrading {
		grade := NormalizeGrade(c.Grade)
		fmt.Fprintf(&b, `<div class="special-box evidence-grading-box" data-grade="%s">`+"\n", grade)
		fmt.Fprintf(&b, `<div class="box-title"><span class="evidence-symbol">%s</span> %s</div>`+"\n", gradeSymbols[grade], esc(c.Title()))
	} else {
		fmt.Fprintf(&b, `<div class="special-box %s-box">`+"\n", esc(c.Kind))
		fmt.Fprintf(&b, `<div class="box-title">%s</div>`+"\n", esc(c.Title()))
	}
	b.WriteString(`<div class="box-content">`)
	return b.String()
}

// Close renders the end of the wrapper.
func (Callout) Close() string {
	return "</div>\n</div>"
}

// Summary is the box title as a single line.
func (c Callout) Summary() []string {
	return []string{c.Title()}
}
