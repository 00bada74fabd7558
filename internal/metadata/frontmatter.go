package metadata

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-manuscript/internal/yamlutil"
)

// yamlFrontMatter accepts "---" delimited YAML, decoded by the same
// library as config files.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yamlutil.UnmarshalLenient)

// SplitFrontMatter separates optional YAML front matter from the body.
// A document without front matter returns an empty Metadata and the
// text unchanged.
func SplitFrontMatter(text string) (Metadata, string, error) {
	var raw map[string]any
	body, err := frontmatter.Parse(strings.NewReader(text), &raw, yamlFrontMatter)
	if err != nil {
		return Metadata{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	var m Metadata
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	// Sorted so that two labels mapping to one field resolve the same way.
	sort.Strings(keys)
	for _, label := range keys {
		key, ok := CanonicalKey(label)
		if !ok {
			continue
		}
		if value := stringify(raw[label]); value != "" {
			m.setFirst(key, "", value)
		}
	}
	return m, string(body), nil
}

// stringify flattens a YAML value; lists are joined with ", ".
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case time.Time:
		return val.Format("2006-01-02")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Merge overlays front matter on inline fields; front matter wins.
func Merge(inline, front Metadata) Metadata {
	var out Metadata
	for _, f := range inline.Fields() {
		out.Set(f.Key, f.Label, f.Value)
	}
	for _, f := range front.Fields() {
		out.Set(f.Key, f.Label, f.Value)
	}
	return out
}
