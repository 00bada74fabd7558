package manuscript

import (
	"time"

	"github.com/alnah/go-manuscript/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
//   - "auto" -> current date in YYYY-MM-DD format
//   - "auto:FORMAT" -> current date in a custom format (e.g. "auto:DD/MM/YYYY")
//   - "auto:preset" -> current date using a named preset (iso, european, us, long, russian)
//   - any other value -> returned unchanged
//
// For Russian documents (lang "ru..."), month names are translated.
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time, lang string) (string, error) {
	return dateutil.Resolve(value, t, lang)
}
