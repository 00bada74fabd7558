package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToFragment(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter renders manuscript bodies with goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter enables GFM, footnotes and chroma highlighting with
// CSS classes, so the stylesheet owns the colours.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// WithUnsafe is not used: block fragments and ==marks== are
			// placeholders swapped in after conversion.
		),
	)
	return &GoldmarkConverter{md: md}
}

// Parse returns the goldmark AST of content. Non-HTML emitters walk it.
func (c *GoldmarkConverter) Parse(content []byte) ast.Node {
	return c.md.Parser().Parse(text.NewReader(content))
}

// ToFragment renders content as an HTML fragment. goldmark ignores
// contexts, so a cancelled caller stops waiting while the render finishes
// in the background.
func (c *GoldmarkConverter) ToFragment(ctx context.Context, content string) (string, error) {
	return whileAlive(ctx, func() (string, error) {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		return buf.String(), nil
	})
}

// whileAlive runs fn on its own goroutine and returns its result, or the
// context error if ctx ends first.
func whileAlive[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type outcome struct {
		v   T
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		v, err := fn()
		ch <- outcome{v, err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case o := <-ch:
		return o.v, o.err
	}
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
