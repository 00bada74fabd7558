package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom-first fallback
// ---------------------------------------------------------------------------

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("HasCustomLoader() = true without a custom path")
	}

	r, err = NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver(dir) error = %v", err)
	}
	if !r.HasCustomLoader() {
		t.Error("HasCustomLoader() = false with a custom path")
	}

	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	embedded, err := NewEmbeddedLoader().LoadStyle(ComponentsStyle)
	if err != nil {
		t.Fatalf("embedded LoadStyle() error = %v", err)
	}

	dir := assetDir(t, map[string]string{
		"styles/manuscript.css": "/* journal override */",
		"scripts/extra.js":      "extra()",
	})
	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name string
		load func() (string, error)
		want string
	}{
		{
			name: "custom overrides embedded",
			load: func() (string, error) { return r.LoadStyle(ManuscriptStyle) },
			want: "/* journal override */",
		},
		{
			name: "missing custom style falls back",
			load: func() (string, error) { return r.LoadStyle(ComponentsStyle) },
			want: embedded,
		},
		{
			name: "custom-only script",
			load: func() (string, error) { return r.LoadScript("extra") },
			want: "extra()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load()
			if err != nil {
				t.Fatalf("load error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %.40q, want %.40q", got, tt.want)
			}
		})
	}
}

func TestAssetResolver_TemplateFallback(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	tmpl, err := r.LoadTemplate(ManuscriptTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if !strings.Contains(tmpl, "<html") {
		t.Error("fallback template is not the embedded page")
	}
}

func TestAssetResolver_StopsOnInvalidName(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if _, err := r.LoadStyle("../manuscript"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
	}
	if _, err := r.LoadScript("nope"); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("LoadScript() error = %v, want ErrScriptNotFound from the last loader", err)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrStyleNotFound, ErrTemplateNotFound, ErrScriptNotFound} {
		if !isNotFound(err) {
			t.Errorf("isNotFound(%v) = false", err)
		}
	}
	for _, err := range []error{ErrInvalidAssetName, ErrAssetRead, ErrPathTraversal, nil} {
		if isNotFound(err) {
			t.Errorf("isNotFound(%v) = true", err)
		}
	}
}
