package markup

import (
	"strings"
	"testing"

	"github.com/alnah/go-manuscript/internal/components"
)

func newTestContext() *Context {
	return NewContext(Options{Language: "en", NumberFigures: true})
}

// expand runs Process then wraps every non-empty line in a paragraph, the
// way goldmark would, and expands the tokens.
func expand(t *testing.T, text string, ctx *Context) (string, string) {
	t.Helper()
	out := Process(text, ctx)
	var html strings.Builder
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			html.WriteString("<p>" + line + "</p>\n")
		}
	}
	return out, ctx.Registry.Expand(html.String())
}

// ---------------------------------------------------------------------------
// TestProcess - Block substitution
// ---------------------------------------------------------------------------

func TestProcess_Gallery(t *testing.T) {
	t.Parallel()

	ctx := newTestContext()
	src := "Intro\n\n:::gallery columns=2 caption=\"Views\"\n- a.png | Front | Front view\n- b.png | Side\n- broken\n:::\n\nOutro"
	out, html := expand(t, src, ctx)

	if strings.Contains(out, ":::") {
		t.Errorf("block markers survived:\n%s", out)
	}
	if ctx.Registry.Len() != 1 {
		t.Fatalf("registry has %d fragments, want 1", ctx.Registry.Len())
	}
	if !strings.Contains(out, "Intro") || !strings.Contains(out, "Outro") {
		t.Error("surrounding text lost")
	}
	if got := strings.Count(html, `class="gallery-item`); got != 2 {
		t.Errorf("gallery items = %d, want 2 (malformed line skipped)", got)
	}
	if !strings.Contains(html, `data-columns="2"`) {
		t.Error("columns attribute not applied")
	}
	if strings.Contains(html, "<p>"+TokenStart) {
		t.Error("token paragraph not replaced")
	}
	if len(ctx.Counter.Figures) != 0 {
		t.Errorf("gallery should not be numbered, got %+v", ctx.Counter.Figures)
	}
}

func TestProcess_NumbersInDocumentOrder(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		`:::procedure-steps title="Suture"`,
		"- s1.png | First",
		":::",
		`:::figure-panel caption="Histology"`,
		"- p1.png | One",
		":::",
		`:::comparison caption="Result" number="5"`,
		"before: pre.png | Pre",
		"after: post.png | Post",
		":::",
		`:::surgical-photos title="Field"`,
		"- f.png | Field",
		":::",
	}, "\n")

	ctx := newTestContext()
	_, html := expand(t, src, ctx)

	var numbers []string
	for _, e := range ctx.Counter.Figures {
		numbers = append(numbers, e.Kind+"="+e.Number)
	}
	want := "procedure-steps=1 figure-panel=2 comparison=5 surgical-photos=6"
	if got := strings.Join(numbers, " "); got != want {
		t.Errorf("figure numbers = %q, want %q", got, want)
	}

	for _, needle := range []string{"Figure 1: Suture", "<strong>Figure 2:</strong> Histology", "<strong>Figure 5:</strong> Result", "Figure 6: Field"} {
		if !strings.Contains(html, needle) {
			t.Errorf("html missing %q", needle)
		}
	}
	if ctx.Counter.Figures[1].ID != "figure-panel-2" {
		t.Errorf("id = %q, want figure-panel-2", ctx.Counter.Figures[1].ID)
	}
	if !strings.Contains(html, `id="figure-panel-2"`) {
		t.Error("rendered id does not match the figure list id")
	}
}

func TestProcess_NumberingDisabled(t *testing.T) {
	t.Parallel()

	ctx := NewContext(Options{NumberFigures: false})
	_, html := expand(t, ":::figure-panel caption=\"Plain\"\n- a.png | A\n:::", ctx)

	if strings.Contains(html, "Figure ") {
		t.Errorf("unexpected figure number in %s", html)
	}
	if len(ctx.Counter.Figures) != 0 {
		t.Errorf("figures = %+v, want none", ctx.Counter.Figures)
	}
}

func TestProcess_UnrenderableComparisonUnchanged(t *testing.T) {
	t.Parallel()

	src := ":::comparison caption=\"Half\"\nbefore: pre.png | Pre\n:::"
	ctx := newTestContext()
	out := Process(src, ctx)

	if out != src {
		t.Errorf("Process() = %q, want source unchanged", out)
	}
	if ctx.Registry.Len() != 0 || len(ctx.Counter.Figures) != 0 {
		t.Error("unrenderable block must not register or number anything")
	}
}

func TestProcess_UnterminatedUnchanged(t *testing.T) {
	t.Parallel()

	src := ":::gallery\n- a.png | A\nno closer"
	if out := Process(src, newTestContext()); out != src {
		t.Errorf("Process() = %q, want unchanged", out)
	}
}

func TestProcess_NestedBlockNotRendered(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		":::procedure-steps",
		"- s1.png | Step one",
		":::gallery",
		"- g.png | Inner",
		":::",
		":::",
	}, "\n")

	ctx := newTestContext()
	_, html := expand(t, src, ctx)

	if ctx.Registry.Len() != 1 {
		t.Fatalf("fragments = %d, want 1", ctx.Registry.Len())
	}
	if strings.Contains(html, "image-gallery") || strings.Contains(html, "g.png") {
		t.Error("nested gallery must not render")
	}
	if got := strings.Count(html, `class="procedure-step"`); got != 1 {
		t.Errorf("steps = %d, want 1", got)
	}
}

func TestProcess_CodeFenceUntouched(t *testing.T) {
	t.Parallel()

	src := "```\n:::gallery\n- a.png | A\n:::\n```"
	ctx := newTestContext()
	if out := Process(src, ctx); out != src {
		t.Errorf("Process() = %q, want code untouched", out)
	}
}

func TestProcess_AnnotatedImage(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		`:::annotated-image caption="Chest X-ray"`,
		"image:",
		"- xray.png | Chest",
		"annotations:",
		"- arrow: 45, 30 | Nodule | blue",
		"- circle: 60, 55 | Effusion | | large",
		"- star: 10, 10 | Unknown type",
		"- label: ten, 10 | Bad coordinates",
		":::",
	}, "\n")

	ctx := newTestContext()
	_, html := expand(t, src, ctx)

	if !strings.Contains(html, `src="xray.png"`) {
		t.Error("base image missing")
	}
	if !strings.Contains(html, `<strong>Figure 1:</strong> Chest X-ray`) {
		t.Error("numbered caption missing")
	}
	if !strings.Contains(html, "annotation-arrow") || !strings.Contains(html, `r="12"`) {
		t.Error("expected arrow and large circle")
	}
	if strings.Count(html, `class="annotation `) != 2 {
		t.Errorf("annotations = %d, want 2", strings.Count(html, `class="annotation `))
	}
}

func TestProcess_InlineImageForm(t *testing.T) {
	t.Parallel()

	src := ":::annotated-image\nimage: scan.png | Scan | Inline caption\nannotations:\n- label: 5, 5 | L\n:::"
	ctx := newTestContext()
	_, html := expand(t, src, ctx)
	if !strings.Contains(html, "Inline caption") || !strings.Contains(html, `src="scan.png"`) {
		t.Errorf("inline image form not parsed:\n%s", html)
	}
}

// ---------------------------------------------------------------------------
// TestProcess - Callout boxes
// ---------------------------------------------------------------------------

func TestProcess_CalloutWithNestedGallery(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		":::key-points",
		"- First **point**",
		":::gallery",
		"- a.png | A",
		":::",
		":::",
	}, "\n")

	ctx := newTestContext()
	out, html := expand(t, src, ctx)

	if !strings.Contains(out, "- First **point**") {
		t.Error("callout body markdown must stay in the text")
	}
	open := strings.Index(html, `class="special-box key-points-box"`)
	gallery := strings.Index(html, "image-gallery")
	closing := strings.LastIndex(html, "</div>\n</div>")
	if open < 0 || gallery < 0 || closing < 0 || !(open < gallery && gallery < closing) {
		t.Errorf("expected box > gallery > close ordering:\n%s", html)
	}

	frags := ctx.Registry.Fragments()
	if len(frags) != 3 {
		t.Fatalf("fragments = %d, want 3", len(frags))
	}
}

func TestProcess_EvidenceGrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "positional", line: ":::evidence-grading high", want: `data-grade="high"`},
		{name: "attribute", line: ":::evidence-grading grade=low", want: `data-grade="low"`},
		{name: "unknown falls back", line: ":::evidence-grading stellar", want: `data-grade="moderate"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := newTestContext()
			_, html := expand(t, tt.line+"\nBody\n:::", ctx)
			if !strings.Contains(html, tt.want) {
				t.Errorf("html missing %s:\n%s", tt.want, html)
			}
		})
	}
}

func TestProcess_CalloutLanguage(t *testing.T) {
	t.Parallel()

	ctx := NewContext(Options{Language: "ru-RU"})
	_, html := expand(t, ":::warning\nОсторожно\n:::", ctx)
	if !strings.Contains(html, "Важное предупреждение") {
		t.Errorf("expected russian title:\n%s", html)
	}
}

func TestProcess_NumbersInsideCallouts(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		":::figure-panel caption=\"Outside\"",
		"- a.png | A",
		":::",
		":::clinical-implications",
		":::figure-panel caption=\"Inside\"",
		"- b.png | B",
		":::",
		":::",
		":::figure-panel caption=\"After\"",
		"- c.png | C",
		":::",
	}, "\n")

	ctx := newTestContext()
	_, html := expand(t, src, ctx)

	var captions []string
	for _, e := range ctx.Counter.Figures {
		captions = append(captions, e.Number+":"+e.Caption)
	}
	if got := strings.Join(captions, ","); got != "1:Outside,2:Inside,3:After" {
		t.Errorf("figures = %s", got)
	}
	if !strings.Contains(html, "<strong>Figure 2:</strong> Inside") {
		t.Error("figure inside callout not rendered")
	}
}

// ---------------------------------------------------------------------------
// TestProcess - Inline captions
// ---------------------------------------------------------------------------

func TestProcess_InlineFigure(t *testing.T) {
	t.Parallel()

	src := "Text\n\n![Axial view](ct.png)\n*Figure 4. Axial CT*\n\n:::figure-panel caption=\"Next\"\n- a.png | A\n:::"
	ctx := newTestContext()
	_, html := expand(t, src, ctx)

	if !strings.Contains(html, `<strong>Figure 4.</strong> Axial CT`) {
		t.Errorf("inline figure not rendered:\n%s", html)
	}
	if len(ctx.Counter.Figures) != 2 || ctx.Counter.Figures[1].Number != "5" {
		t.Errorf("figures = %+v, want block numbered after the inline figure", ctx.Counter.Figures)
	}
}

func TestProcess_InlineFigureRussian(t *testing.T) {
	t.Parallel()

	ctx := newTestContext()
	_, html := expand(t, "![Снимок](a.png)\n*Рисунок 1. Исходное состояние*", ctx)
	if !strings.Contains(html, "<strong>Рисунок 1.</strong> Исходное состояние") {
		t.Errorf("russian caption not rendered:\n%s", html)
	}
}

func TestProcess_ImageWithoutCaptionUnchanged(t *testing.T) {
	t.Parallel()

	src := "![Alt](a.png)\n\nJust a paragraph."
	if out := Process(src, newTestContext()); out != src {
		t.Errorf("Process() = %q, want unchanged", out)
	}
}

func TestProcess_InlineTable(t *testing.T) {
	t.Parallel()

	src := "**Table 1.** Baseline data\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\nAfter"
	ctx := newTestContext()
	out, html := expand(t, src, ctx)

	if !strings.Contains(out, "| 1 | 2 |") {
		t.Error("table markdown must stay in the text")
	}
	if !strings.Contains(html, `<div class="table-caption">Table 1. Baseline data</div>`) {
		t.Errorf("table caption missing:\n%s", html)
	}
	if len(ctx.Counter.Tables) != 1 || ctx.Counter.Tables[0].Caption != "Baseline data" {
		t.Errorf("tables = %+v", ctx.Counter.Tables)
	}
	if ctx.Counter.Tables[0].ID != "table-1" {
		t.Errorf("table id = %q, want table-1", ctx.Counter.Tables[0].ID)
	}
}

// ---------------------------------------------------------------------------
// TestProcess - Determinism
// ---------------------------------------------------------------------------

func TestProcess_Deterministic(t *testing.T) {
	t.Parallel()

	src := ":::gallery\n- a.png | A\n:::\n:::comparison\nbefore: a.png | A\nafter: b.png | B\n:::\n:::warning\nx\n:::"

	ctxA, ctxB := newTestContext(), newTestContext()
	outA, htmlA := expand(t, src, ctxA)
	outB, htmlB := expand(t, src, ctxB)

	if outA != outB || htmlA != htmlB {
		t.Error("identical input must produce identical output")
	}
}

func TestProcess_StripsStrayTokens(t *testing.T) {
	t.Parallel()

	out := Process("before"+TokenStart+"1"+TokenEnd+"after", newTestContext())
	if out != "before1after" {
		t.Errorf("Process() = %q, want delimiters stripped", out)
	}
}

// ---------------------------------------------------------------------------
// TestRegistry
// ---------------------------------------------------------------------------

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	token := r.Add(Fragment{Kind: components.KindGallery, HTML: "<div>g</div>", Summary: []string{"g"}})

	f, ok := r.Lookup("  " + token + "\n")
	if !ok || f.HTML != "<div>g</div>" {
		t.Errorf("Lookup(token) = %+v, %v", f, ok)
	}
	if _, ok := r.Lookup("plain text"); ok {
		t.Error("Lookup(plain) should fail")
	}
	if _, ok := r.Lookup(Token(99)); ok {
		t.Error("Lookup(unknown id) should fail")
	}
}

func TestRegistry_Expand(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	token := r.Add(Fragment{HTML: "<figure/>"})

	got := r.Expand("<p>" + token + "</p>\n<li>" + token + "</li>\n<p>" + Token(42) + "</p>")
	want := "<figure/>\n<li><figure/></li>\n"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestProcess_NumberingKeepsAuthorAttributes(t *testing.T) {
	t.Parallel()

	ctx := newTestContext()
	lines := []string{
		`:::comparison caption=it's"raw" 'loose'`,
		"before: a.png | Before",
		"after: b.png | After",
		":::",
	}
	out := inventory(lines, ctx)

	blocks := Scan(out)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks after numbering, want 1:\n%s", len(blocks), strings.Join(out, "\n"))
	}
	b := blocks[0]
	if got := b.Attrs["caption"]; got != `it's"raw"` {
		t.Errorf("caption = %q, want the author's value", got)
	}
	if b.Attrs["number"] != "1" || b.Attrs["id"] != "comparison-1" {
		t.Errorf("generated attrs = %v", b.Attrs)
	}
	if len(b.Positional) != 1 || b.Positional[0] != "'loose'" {
		t.Errorf("positional = %q, want the author's token", b.Positional)
	}
}
