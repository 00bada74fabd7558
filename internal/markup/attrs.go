package markup

import (
	"sort"
	"strconv"
	"strings"
)

// Attrs holds the key=value pairs of a block's attribute line.
type Attrs map[string]string

// ParseAttrs splits an attribute line into key=value pairs and bare
// positional tokens. Values may be double- or single-quoted to contain
// spaces. Malformed tokens (bad key, unterminated quote) are skipped.
// A repeated key keeps its first value.
func ParseAttrs(line string) (Attrs, []string) {
	attrs := Attrs{}
	var positional []string

	i, n := 0, len(line)
	for i < n {
		for i < n && isSpace(line[i]) {
			i++
		}
		if i >= n {
			break
		}

		start := i
		for i < n && !isSpace(line[i]) && line[i] != '=' {
			i++
		}
		key := line[start:i]

		if i >= n || line[i] != '=' {
			positional = append(positional, key)
			continue
		}
		i++ // '='

		var value string
		ok := true
		if i < n && (line[i] == '"' || line[i] == '\'') {
			quote := line[i]
			i++
			end := strings.IndexByte(line[i:], quote)
			if end < 0 {
				// Unterminated quote swallows the rest of the line.
				ok = false
				i = n
			} else {
				value = line[i : i+end]
				i += end + 1
			}
		} else {
			vs := i
			for i < n && !isSpace(line[i]) {
				i++
			}
			value = line[vs:i]
		}

		if !ok || !validKey(key) {
			continue
		}
		key = strings.ToLower(key)
		if _, dup := attrs[key]; !dup {
			attrs[key] = value
		}
	}
	return attrs, positional
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// validKey accepts identifiers like "columns" or "data-x".
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

// String returns the value for key, or def when absent.
func (a Attrs) String(key, def string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// Int returns the integer value for key, or def when absent or not an integer.
func (a Attrs) Int(key string, def int) int {
	v, ok := a[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Bool returns the boolean value for key, or def when absent or unrecognised.
func (a Attrs) Bool(key string, def bool) bool {
	v, ok := a[key]
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return def
}

// Format renders the attributes back to a line, keys sorted, values quoted.
// A value holding both quote characters does not read back.
func (a Attrs) Format() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := a[k]
		quote := `"`
		if strings.Contains(v, `"`) {
			quote = "'"
		}
		parts = append(parts, k+"="+quote+v+quote)
	}
	return strings.Join(parts, " ")
}
