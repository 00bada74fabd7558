package markup

import (
	"strings"

	"github.com/alnah/go-manuscript/internal/components"
	"github.com/alnah/go-manuscript/internal/slugs"
)

// Options configures one document's processing.
type Options struct {
	// Language selects callout titles ("en", "ru"). Region subtags are ignored.
	Language string
	// NumberFigures enables automatic figure numbers for blocks without
	// an explicit number attribute.
	NumberFigures bool
}

// Context is the per-document state shared by the passes.
type Context struct {
	Registry *Registry
	Counter  *Counter
	opts     Options
	ids      *slugs.Set
}

// NewContext creates a fresh context for one document.
func NewContext(opts Options) *Context {
	lang := strings.ToLower(opts.Language)
	if strings.HasPrefix(lang, "ru") {
		opts.Language = "ru"
	} else {
		opts.Language = "en"
	}
	return &Context{
		Registry: NewRegistry(),
		Counter:  &Counter{},
		opts:     opts,
		ids:      slugs.NewSet(""),
	}
}

// pass substitutes every depth-zero block of one kind.
type pass struct {
	kind   string
	render func(b Block, ctx *Context) ([]string, bool)
}

// passes run in this order; callouts come last so their bodies are
// processed with every visual pass available. Filled by init because
// renderCallout recurses through applyPasses.
var passes []pass

func init() {
	passes = []pass{
		{components.KindGallery, renderVisual},
		{components.KindFigurePanel, renderVisual},
		{components.KindAnnotatedImage, renderVisual},
		{components.KindComparison, renderVisual},
		{components.KindProcedure, renderVisual},
		{components.KindSurgicalPhotos, renderVisual},
		{components.KindKeyPoints, renderCallout},
		{components.KindWarning, renderCallout},
		{components.KindClinicalImplications, renderCallout},
		{components.KindEvidenceGrading, renderCallout},
	}
}

// Process renders every block and inline caption in text and returns the
// substituted text. Fragments and numbered entries are recorded on ctx.
// It never fails: malformed input is left as it was.
func Process(text string, ctx *Context) string {
	lines := strings.Split(Sanitize(text), "\n")
	lines = inventory(lines, ctx)
	lines = applyPasses(lines, ctx)
	return strings.Join(lines, "\n")
}

func applyPasses(lines []string, ctx *Context) []string {
	for _, p := range passes {
		lines = applyPass(lines, p, ctx)
	}
	return lines
}

// applyPass returns a new slice with p's blocks replaced. lines is not modified.
func applyPass(lines []string, p pass, ctx *Context) []string {
	blocks := Scan(lines)
	out := make([]string, 0, len(lines))
	next := 0
	for _, b := range blocks {
		if b.Kind != p.kind {
			continue
		}
		replacement, ok := p.render(b, ctx)
		if !ok {
			continue
		}
		out = append(out, lines[next:b.Start]...)
		out = append(out, replacement...)
		next = b.End + 1
	}
	return append(out, lines[next:]...)
}

// placeholder surrounds a token with blank lines so goldmark gives it a
// paragraph of its own.
func placeholder(token string) []string {
	return []string{"", token, ""}
}

func renderVisual(b Block, ctx *Context) ([]string, bool) {
	c, ok := build(b)
	if !ok {
		return nil, false
	}
	token := ctx.Registry.Add(Fragment{Kind: c.Kind(), HTML: c.HTML(), Summary: c.Summary()})
	return placeholder(token), true
}

func renderCallout(b Block, ctx *Context) ([]string, bool) {
	grade := b.Attrs["grade"]
	if grade == "" && len(b.Positional) > 0 {
		grade = b.Positional[0]
	}
	box := components.Callout{Kind: b.Kind, Grade: grade, Language: ctx.opts.Language}

	open := ctx.Registry.Add(Fragment{Kind: b.Kind, HTML: box.Open(), Summary: box.Summary(), Heading: true})
	body := applyPasses(b.Inner, ctx)
	closing := ctx.Registry.Add(Fragment{Kind: b.Kind, HTML: box.Close(), Closer: true})

	out := make([]string, 0, len(body)+6)
	out = append(out, placeholder(open)...)
	out = append(out, body...)
	return append(out, placeholder(closing)...), true
}
