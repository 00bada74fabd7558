package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no escape needed", input: "body { color: red; }", expected: "body { color: red; }"},
		{name: "escapes style close", input: "</style>", expected: `<\/style>`},
		{name: "multiple occurrences", input: "</a></b>", expected: `<\/a><\/b>`},
		{name: "nested sequences", input: "</</style>", expected: `<\/<\/style>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCSSInjection - Style Placement
// ---------------------------------------------------------------------------

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	css := ".gallery{gap:10px}"
	block := "<style>" + css + "</style>"

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "before head close",
			html: "<html><head><title>T</title></head><body></body></html>",
			want: "<html><head><title>T</title>" + block + "</head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			want: "<HTML><HEAD>" + block + "</HEAD><BODY></BODY></HTML>",
		},
		{
			name: "after body open without head",
			html: `<body class="manuscript"><p>x</p></body>`,
			want: `<body class="manuscript">` + block + "<p>x</p></body>",
		},
		{
			name: "prepended to fragment",
			html: "<p>x</p>",
			want: block + "<p>x</p>",
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(context.Background(), tt.html, css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSSInjection_EmptyCSS(t *testing.T) {
	t.Parallel()

	in := "<html><head></head></html>"
	if got := (&CSSInjection{}).InjectCSS(context.Background(), in, ""); got != in {
		t.Errorf("InjectCSS() = %q, want unchanged", got)
	}
}

func TestCSSInjection_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "<html><head></head></html>"
	if got := (&CSSInjection{}).InjectCSS(ctx, in, "p{}"); got != in {
		t.Errorf("InjectCSS() = %q, want unchanged on canceled context", got)
	}
}

func TestCSSInjection_SanitizesStyleClose(t *testing.T) {
	t.Parallel()

	got := (&CSSInjection{}).InjectCSS(context.Background(), "<head></head>", "p{}</style><script>x</script>")
	if strings.Count(got, "</style>") != 1 {
		t.Errorf("InjectCSS() = %q, want exactly one style close", got)
	}
}

// ---------------------------------------------------------------------------
// TestScriptInjection - Interaction Script
// ---------------------------------------------------------------------------

func TestScriptInjection_InjectScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		html   string
		script string
		want   string
	}{
		{
			name:   "before last body close",
			html:   "<body><p>a</p></body></html>",
			script: "init();",
			want:   "<body><p>a</p><script>init();</script>\n</body></html>",
		},
		{
			name:   "appended without body",
			html:   "<p>a</p>",
			script: "init();",
			want:   "<p>a</p><script>init();</script>",
		},
		{
			name:   "blank script ignored",
			html:   "<body></body>",
			script: "  \n",
			want:   "<body></body>",
		},
	}

	injector := &ScriptInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectScript(context.Background(), tt.html, tt.script); got != tt.want {
				t.Errorf("InjectScript() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScriptInjection_EscapesScriptClose(t *testing.T) {
	t.Parallel()

	got := (&ScriptInjection{}).InjectScript(context.Background(), "<body></body>", `s = "</SCRIPT>";`)
	if !strings.Contains(got, `<\/script>`) {
		t.Errorf("InjectScript() = %q, want inner close escaped", got)
	}
	if n := strings.Count(strings.ToLower(got), "</script>"); n != 1 {
		t.Errorf("InjectScript() has %d script closes, want 1", n)
	}
}

// ---------------------------------------------------------------------------
// TestStripHTMLTags
// ---------------------------------------------------------------------------

func TestStripHTMLTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "<strong>Bold</strong> text", want: "Bold text"},
		{input: "  <em>padded</em>  ", want: "padded"},
		{input: "Fish &amp; Chips", want: "Fish & Chips"},
		{input: "&lt;not a tag&gt;", want: "<not a tag>"},
		{input: "plain", want: "plain"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := StripHTMLTags(tt.input); got != tt.want {
				t.Errorf("StripHTMLTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
