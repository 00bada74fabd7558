package markup

import (
	"regexp"
	"strconv"
	"strings"
)

// Token delimiters. Both are Unicode private-use characters, which goldmark
// passes through untouched and authors never type.
const (
	TokenStart = "\uE010"
	TokenEnd   = "\uE011"
)

var (
	paragraphTokenRe = regexp.MustCompile(`<p>\x{E010}(\d+)\x{E011}</p>`)
	bareTokenRe      = regexp.MustCompile(`\x{E010}(\d+)\x{E011}`)

	stripTokens = strings.NewReplacer(TokenStart, "", TokenEnd, "")
)

// Fragment is the rendered output of one block.
type Fragment struct {
	Kind string
	HTML string
	// Summary is the plain-text rendering used by non-HTML emitters.
	Summary []string
	// Heading marks a callout opener whose summary is a box title.
	Heading bool
	// Closer marks the token that ends a box opened by a Heading fragment.
	Closer bool
}

// Registry holds the fragments of one document. It is not safe for
// concurrent use; each conversion creates its own.
type Registry struct {
	fragments []Fragment
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers f and returns the token that stands for it in the text.
func (r *Registry) Add(f Fragment) string {
	r.fragments = append(r.fragments, f)
	return Token(len(r.fragments))
}

// Token formats the placeholder for fragment id.
func Token(id int) string {
	return TokenStart + strconv.Itoa(id) + TokenEnd
}

// Len returns the number of registered fragments.
func (r *Registry) Len() int {
	return len(r.fragments)
}

// Fragments returns the registered fragments in registration order.
func (r *Registry) Fragments() []Fragment {
	out := make([]Fragment, len(r.fragments))
	copy(out, r.fragments)
	return out
}

// Get returns the fragment for id (1-based).
func (r *Registry) Get(id int) (Fragment, bool) {
	if id < 1 || id > len(r.fragments) {
		return Fragment{}, false
	}
	return r.fragments[id-1], true
}

// Lookup returns the fragment when text, trimmed, is exactly one token.
func (r *Registry) Lookup(text string) (Fragment, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, TokenStart) || !strings.HasSuffix(text, TokenEnd) {
		return Fragment{}, false
	}
	id, err := strconv.Atoi(text[len(TokenStart) : len(text)-len(TokenEnd)])
	if err != nil {
		return Fragment{}, false
	}
	return r.Get(id)
}

// Expand replaces tokens in converted HTML with fragment HTML. A token that
// goldmark wrapped in its own paragraph loses the paragraph. Unknown
// tokens are removed.
func (r *Registry) Expand(html string) string {
	html = paragraphTokenRe.ReplaceAllStringFunc(html, func(m string) string {
		return r.htmlFor(paragraphTokenRe.FindStringSubmatch(m)[1])
	})
	return bareTokenRe.ReplaceAllStringFunc(html, func(m string) string {
		return r.htmlFor(bareTokenRe.FindStringSubmatch(m)[1])
	})
}

func (r *Registry) htmlFor(id string) string {
	n, _ := strconv.Atoi(id)
	if f, ok := r.Get(n); ok {
		return f.HTML
	}
	return ""
}

// Enclosed marks the lines that sit between a box's opening and closing
// tokens. A nil registry encloses nothing.
func (r *Registry) Enclosed(lines []string) []bool {
	mask := make([]bool, len(lines))
	if r == nil {
		return mask
	}
	depth := 0
	for i, line := range lines {
		if f, ok := r.Lookup(line); ok {
			switch {
			case f.Heading:
				depth++
			case f.Closer && depth > 0:
				depth--
			}
			continue
		}
		mask[i] = depth > 0
	}
	return mask
}

// Sanitize removes stray token delimiters from author text.
func Sanitize(text string) string {
	return stripTokens.Replace(text)
}
