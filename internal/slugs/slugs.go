// Package slugs builds HTML anchor identifiers from titles and numbers.
package slugs

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"
)

// Normalize returns the slug of value, or "" when nothing usable remains.
func Normalize(value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ""
	}
	normalized, err := slug.Normalize(candidate)
	if err != nil {
		return ""
	}
	return normalized
}

// Set hands out unique identifiers within one document.
// The zero value is not usable; create with NewSet.
type Set struct {
	prefix string
	seen   map[string]int
	count  int
}

// NewSet creates a Set whose identifiers start with prefix ("sec-").
func NewSet(prefix string) *Set {
	return &Set{prefix: prefix, seen: make(map[string]int)}
}

// Make returns a unique identifier for value. Titles that normalize to
// nothing get a positional fallback; repeats get "-2", "-3"... suffixes.
func (s *Set) Make(value string) string {
	s.count++
	base := Normalize(value)
	if base == "" {
		base = strconv.Itoa(s.count)
	}
	id := s.prefix + base
	n := s.seen[id]
	s.seen[id] = n + 1
	if n == 0 {
		return id
	}
	for {
		n++
		candidate := id + "-" + strconv.Itoa(n)
		if s.seen[candidate] == 0 {
			s.seen[candidate] = 1
			s.seen[id] = n
			return candidate
		}
	}
}
