package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
)

func TestGoldmarkConverter_ToFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
		missing  []string
	}{
		{
			name:     "heading without auto id",
			input:    "# Results",
			contains: []string{"<h1>Results</h1>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "strikethrough",
			input:    "~~old~~",
			contains: []string{"<del>old</del>"},
		},
		{
			name:     "footnote",
			input:    "Claim[^1].\n\n[^1]: Source.",
			contains: []string{`class="footnotes"`},
		},
		{
			name:     "hard wraps",
			input:    "line one\nline two",
			contains: []string{"<br />"},
		},
		{
			name:     "highlighted code uses classes",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{`class="chroma"`},
			missing:  []string{"style=\"color"},
		},
		{
			name:     "raw html omitted",
			input:    "<script>alert(1)</script>",
			contains: []string{"<!-- raw HTML omitted -->"},
			missing:  []string{"<script>"},
		},
		{
			name:     "placeholders pass through",
			input:    "x " + MarkStartPlaceholder + "y" + MarkEndPlaceholder,
			contains: []string{MarkStartPlaceholder + "y" + MarkEndPlaceholder},
		},
	}

	conv := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToFragment(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToFragment() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToFragment() = %q, want to contain %q", got, want)
				}
			}
			for _, bad := range tt.missing {
				if strings.Contains(got, bad) {
					t.Errorf("ToFragment() = %q, should not contain %q", got, bad)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToFragment(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToFragment() error = %v, want context.Canceled", err)
	}
}

func TestGoldmarkConverter_Parse(t *testing.T) {
	t.Parallel()

	doc := NewGoldmarkConverter().Parse([]byte("# Title\n\nBody **bold**.\n\n- item"))

	var kinds []ast.NodeKind
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		kinds = append(kinds, n.Kind())
	}
	want := []ast.NodeKind{ast.KindHeading, ast.KindParagraph, ast.KindList}
	if len(kinds) != len(want) {
		t.Fatalf("top-level nodes = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("node %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}
