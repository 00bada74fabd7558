package markup

import (
	"regexp"
	"strings"

	"github.com/alnah/go-manuscript/internal/components"
)

var (
	// imageLineRe matches a markdown image alone on its line.
	imageLineRe = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)$`)
	// figureCaptionRe matches "*Figure 2. Axial CT*" and its Russian form.
	figureCaptionRe = regexp.MustCompile(`^\*(Figure|Fig\.|Рисунок|Рис\.)\s+(\d+[A-Za-z]?)\.\s+([^*]+?)\s*\*$`)
	// tableCaptionRe matches "Table 1. Baseline data", optionally bold.
	tableCaptionRe = regexp.MustCompile(`^(?:\*\*)?(Table|Таблица)\s+(\d+[A-Za-z]?)\.(?:\*\*)?\s+(.+?)$`)
)

// inventory walks the document once in order. It numbers visual blocks
// by injecting number and id attributes into their opener lines, renders
// inline captioned figures and tables, and records every numbered entry.
// Callout bodies are walked in place; blocks nested in visual blocks are not.
func inventory(lines []string, ctx *Context) []string {
	code := CodeLines(lines)
	out := make([]string, 0, len(lines))
	next := 0
	for _, b := range Scan(lines) {
		out = append(out, inlineCaptions(lines[next:b.Start], code[next:b.Start], ctx)...)
		out = append(out, inventoryBlock(lines[b.Start:b.End+1], b, ctx)...)
		next = b.End + 1
	}
	return append(out, inlineCaptions(lines[next:], code[next:], ctx)...)
}

func inventoryBlock(lines []string, b Block, ctx *Context) []string {
	if components.IsCalloutKind(b.Kind) {
		out := make([]string, 0, len(lines))
		out = append(out, lines[0])
		out = append(out, inventory(b.Inner, ctx)...)
		return append(out, lines[len(lines)-1])
	}
	if !IsVisualKind(b.Kind) {
		return lines
	}

	c, ok := build(b)
	if !ok {
		return lines
	}

	// Generated attributes go in front of the author's attribute text,
	// which is kept as written. They only fill keys the author left unset.
	added := Attrs{}
	number := b.Attrs["number"]
	if numberedKinds[b.Kind] {
		switch {
		case number != "":
			ctx.Counter.Observe(number)
		case ctx.opts.NumberFigures:
			number = ctx.Counter.Next()
			added["number"] = number
		}
	}

	id := b.Attrs["id"]
	if id == "" {
		base := b.Kind
		if number != "" {
			base += "-" + number
		}
		id = ctx.ids.Make(base)
		added["id"] = id
	}

	if number != "" {
		ctx.Counter.Figures = append(ctx.Counter.Figures, Entry{
			Kind:    b.Kind,
			Number:  number,
			Caption: captionOf(c),
			ID:      id,
		})
	}

	out := make([]string, len(lines))
	copy(out, lines)
	if len(added) > 0 {
		rest := openerRe.FindStringSubmatch(lines[0])[2]
		out[0] = strings.TrimRight(":::"+b.Kind+" "+added.Format()+" "+rest, " ")
	}
	return out
}

// inlineCaptions renders captioned images and tables outside blocks.
func inlineCaptions(lines []string, code []bool, ctx *Context) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if code[i] {
			out = append(out, lines[i])
			continue
		}
		trimmed := strings.TrimSpace(lines[i])

		if m := imageLineRe.FindStringSubmatch(trimmed); m != nil {
			j := nextContent(lines, i+1)
			if j < len(lines) && !code[j] {
				if c := figureCaptionRe.FindStringSubmatch(strings.TrimSpace(lines[j])); c != nil {
					out = append(out, captionedFigure(m, c, ctx)...)
					i = j
					continue
				}
			}
		}

		if m := tableCaptionRe.FindStringSubmatch(trimmed); m != nil {
			j := nextContent(lines, i+1)
			k := j
			for k < len(lines) && !code[k] && strings.HasPrefix(strings.TrimSpace(lines[k]), "|") {
				k++
			}
			if k > j {
				out = append(out, captionedTable(trimmed, m, lines[j:k], ctx)...)
				i = k - 1
				continue
			}
		}

		out = append(out, lines[i])
	}
	return out
}

// nextContent returns the index of the first non-blank line at or after i.
func nextContent(lines []string, i int) int {
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return i
}

func captionedFigure(image, caption []string, ctx *Context) []string {
	number := caption[2]
	ctx.Counter.Observe(number)
	f := components.CaptionedFigure{
		ID:      ctx.ids.Make(components.KindFigure + "-" + number),
		Image:   components.Image{Path: image[2], AltText: image[1]},
		Word:    caption[1],
		Number:  number,
		Caption: caption[3],
	}
	ctx.Counter.Figures = append(ctx.Counter.Figures, Entry{
		Kind:    components.KindFigure,
		Number:  number,
		Caption: f.Caption,
		ID:      f.ID,
	})
	return placeholder(ctx.Registry.Add(Fragment{Kind: f.Kind(), HTML: f.HTML(), Summary: f.Summary()}))
}

func captionedTable(line string, caption, table []string, ctx *Context) []string {
	t := components.TableCaption{
		ID:      ctx.ids.Make(components.KindTable + "-" + caption[2]),
		Caption: strings.ReplaceAll(line, "**", ""),
	}
	ctx.Counter.Tables = append(ctx.Counter.Tables, Entry{
		Kind:    components.KindTable,
		Number:  caption[2],
		Caption: caption[3],
		ID:      t.ID,
	})

	open := ctx.Registry.Add(Fragment{Kind: components.KindTable, HTML: t.Open(), Summary: t.Summary(), Heading: true})
	closing := ctx.Registry.Add(Fragment{Kind: components.KindTable, HTML: t.Close(), Closer: true})

	out := make([]string, 0, len(table)+6)
	out = append(out, placeholder(open)...)
	out = append(out, table...)
	return append(out, placeholder(closing)...)
}
