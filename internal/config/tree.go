package config

import (
	"fmt"
	"math"
	"strings"
)

// Tree is a nested key/value configuration. Nested sections are
// map[string]any (or Tree); leaves are scalars or lists.
type Tree map[string]any

// Defaults returns a fresh copy of the built-in configuration tree.
func Defaults() Tree {
	return Tree{
		"document": map[string]any{
			"title":      "Scientific Manuscript",
			"author":     "",
			"date":       "",
			"language":   "en",
			"paper_size": "A4",
		},
		"formatting": map[string]any{
			"font_family":  "Times New Roman",
			"font_size":    12,
			"line_spacing": 1.5,
			"margins": map[string]any{
				"top":    2.54,
				"bottom": 2.54,
				"left":   2.54,
				"right":  2.54,
			},
		},
		"styles": map[string]any{
			"heading1": map[string]any{"font_size": 16, "bold": true, "color": "000000"},
			"heading2": map[string]any{"font_size": 14, "bold": true, "color": "000000"},
			"heading3": map[string]any{"font_size": 12, "bold": true, "color": "000000"},
			"body":     map[string]any{"font_size": 12, "alignment": "justify"},
		},
		"numbering": map[string]any{
			"sections": true,
			"figures":  true,
			"tables":   true,
			"format":   "decimal",
		},
		"toc": map[string]any{
			"enabled":          true,
			"depth":            3,
			"page_break_after": true,
			"title":            "Table of Contents",
		},
		"bibliography": map[string]any{
			"enabled": true,
			"style":   "numbered",
			"title":   "References",
		},
		"index": map[string]any{
			"enabled": true,
			"title":   "Index",
		},
		"output": map[string]any{
			"formats":    []any{"html", "docx", "pdf"},
			"output_dir": "./output",
		},
	}
}

// Merge returns a new tree with override applied on top of base.
// A scalar (or list) in override replaces the value in base; a mapping in
// override merges key by key into a mapping in base. Neither input is
// modified. Recursion depth is bounded by the depth of override.
func Merge(base, override Tree) Tree {
	return mergeMaps(base, override)
}

func mergeMaps(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = deepCopy(v)
	}
	for k, v := range override {
		if om, ok := asMap(v); ok {
			if bm, ok := asMap(out[k]); ok {
				out[k] = mergeMaps(bm, om)
				continue
			}
		}
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	if m, ok := asMap(v); ok {
		return mergeMaps(m, nil)
	}
	if l, ok := v.([]any); ok {
		cp := make([]any, len(l))
		for i, e := range l {
			cp[i] = deepCopy(e)
		}
		return cp
	}
	if l, ok := v.([]string); ok {
		return append([]string(nil), l...)
	}
	return v
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Tree:
		return map[string]any(m), true
	}
	return nil, false
}

// Get returns the value at a dot-separated path ("formatting.margins.top").
func (t Tree) Get(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = map[string]any(t)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set stores v at a dot-separated path, creating intermediate sections.
// A scalar found on the way is replaced by a section.
func (t Tree) Set(path string, v any) error {
	if path == "" {
		return fmt.Errorf("%w: empty key path", ErrInvalidConfig)
	}
	keys := strings.Split(path, ".")
	cur := map[string]any(t)
	for _, key := range keys[:len(keys)-1] {
		if key == "" {
			return fmt.Errorf("%w: empty segment in key path %q", ErrInvalidConfig, path)
		}
		next, ok := asMap(cur[key])
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	last := keys[len(keys)-1]
	if last == "" {
		return fmt.Errorf("%w: empty segment in key path %q", ErrInvalidConfig, path)
	}
	cur[last] = v
	return nil
}

// GetString returns the string at path, or def when absent or not a string.
func (t Tree) GetString(path, def string) string {
	v, ok := t.Get(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// GetBool returns the bool at path, or def when absent or not a bool.
func (t Tree) GetBool(path string, def bool) bool {
	v, ok := t.Get(path)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// GetInt returns the integer at path, or def when absent or not integral.
func (t Tree) GetInt(path string, def int) int {
	v, ok := t.Get(path)
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return def
	}
	return int(f)
}

// GetFloat returns the number at path, or def when absent or not numeric.
func (t Tree) GetFloat(path string, def float64) float64 {
	v, ok := t.Get(path)
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		return def
	}
	return f
}

// GetStrings returns the list of strings at path, or def when absent.
// Non-string list elements are skipped.
func (t Tree) GetStrings(path string, def []string) []string {
	v, ok := t.Get(path)
	if !ok {
		return def
	}
	switch l := v.(type) {
	case []string:
		return append([]string(nil), l...)
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return def
}

// toFloat normalises the numeric types produced by YAML decoding and Go literals.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
