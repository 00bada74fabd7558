// Package dateutil resolves "auto" dates for title pages and formats them
// with English or Russian month names.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits the length of a format string.
const MaxFormatLength = 50

// DefaultFormat is used when "auto" is given without a format.
const DefaultFormat = "YYYY-MM-DD"

// Presets are named formats accepted after "auto:", case-insensitive.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"russian":  "DD.MM.YYYY",
}

type field int

const (
	literal field = iota
	year4
	year2
	monthName
	monthShort
	month2
	month1
	day2
	day1
)

// tokens are tried in order, so longer tokens sharing a prefix come first.
var tokens = []struct {
	text  string
	field field
}{
	{"YYYY", year4},
	{"YY", year2},
	{"MMMM", monthName},
	{"MMM", monthShort},
	{"MM", month2},
	{"M", month1},
	{"DD", day2},
	{"D", day1},
}

var (
	englishMonths = [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	englishShort = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	// Genitive forms, as used after a day number.
	russianMonths = [12]string{"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря"}
	russianShort = [12]string{"янв", "фев", "мар", "апр", "мая", "июн",
		"июл", "авг", "сен", "окт", "ноя", "дек"}
)

type part struct {
	field field
	text  string // literal text
}

// Layout is a compiled date format.
type Layout []part

// Compile parses a format built from the tokens YYYY, YY, MMMM, MMM, MM, M,
// DD and D. Text in brackets is copied literally ("[Date:] D MMMM"), as is
// any other character.
func Compile(format string) (Layout, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return nil, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var layout Layout
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			layout = append(layout, part{field: literal, text: lit.String()})
			lit.Reset()
		}
	}

	rest := format
outer:
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			lit.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		for _, tok := range tokens {
			if strings.HasPrefix(rest, tok.text) {
				flush()
				layout = append(layout, part{field: tok.field})
				rest = rest[len(tok.text):]
				continue outer
			}
		}
		lit.WriteByte(rest[0])
		rest = rest[1:]
	}
	flush()
	return layout, nil
}

// Format renders t. Month names follow lang: "ru" and its regional
// variants use Russian, anything else English.
func (l Layout) Format(t time.Time, lang string) string {
	names, short := englishMonths, englishShort
	if isRussian(lang) {
		names, short = russianMonths, russianShort
	}
	m := int(t.Month()) - 1

	var b strings.Builder
	for _, p := range l {
		switch p.field {
		case literal:
			b.WriteString(p.text)
		case year4:
			fmt.Fprintf(&b, "%04d", t.Year())
		case year2:
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case monthName:
			b.WriteString(names[m])
		case monthShort:
			b.WriteString(short[m])
		case month2:
			fmt.Fprintf(&b, "%02d", m+1)
		case month1:
			b.WriteString(strconv.Itoa(m + 1))
		case day2:
			fmt.Fprintf(&b, "%02d", t.Day())
		case day1:
			b.WriteString(strconv.Itoa(t.Day()))
		}
	}
	return b.String()
}

// Resolve expands "auto" and "auto:FORMAT" date values:
//   - "auto" formats t as YYYY-MM-DD
//   - "auto:FORMAT" formats t with a token format or a preset name
//   - any other value is returned unchanged, never translated
//
// Values starting with "auto" that match neither form are rejected.
func Resolve(value string, t time.Time, lang string) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	format := DefaultFormat
	switch {
	case lower == "auto":
	case strings.HasPrefix(lower, "auto:"):
		format = value[len("auto:"):]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	layout, err := Compile(format)
	if err != nil {
		return "", err
	}
	return layout.Format(t, lang), nil
}

func isRussian(lang string) bool {
	lang = strings.ToLower(lang)
	return lang == "ru" || strings.HasPrefix(lang, "ru-") || strings.HasPrefix(lang, "ru_")
}
