package manuscript

import (
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-manuscript/internal/dateutil"
)

func TestResolveDate(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		lang    string
		want    string
		wantErr error
	}{
		{name: "literal passthrough", value: "Spring 2024", lang: "en", want: "Spring 2024"},
		{name: "empty passthrough", value: "", lang: "en", want: ""},
		{name: "auto", value: "auto", lang: "en", want: "2024-03-05"},
		{name: "auto uppercase", value: "AUTO", lang: "en", want: "2024-03-05"},
		{name: "custom format", value: "auto:DD/MM/YYYY", lang: "en", want: "05/03/2024"},
		{name: "long preset", value: "auto:long", lang: "en", want: "March 5, 2024"},
		{name: "russian preset", value: "auto:russian", lang: "ru", want: "05.03.2024"},
		{name: "russian month names", value: "auto:D MMMM YYYY", lang: "ru", want: "5 марта 2024"},
		{name: "russian literal untouched", value: "March 2024", lang: "ru", want: "March 2024"},
		{name: "invalid auto syntax", value: "automatic", lang: "en", wantErr: dateutil.ErrInvalidDateFormat},
		{name: "empty format", value: "auto:", lang: "en", wantErr: dateutil.ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, fixed, tt.lang)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
