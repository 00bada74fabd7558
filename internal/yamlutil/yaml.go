// Package yamlutil is the one place that talks to the YAML library. Config
// files and manuscript front matter both decode through it.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds every decode, in bytes.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Unmarshal decodes data into v. Keys without a matching field are skipped.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict is Unmarshal that fails on keys without a matching field.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// Marshal encodes v.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// ErrNotMapping is returned by UnmarshalMap for a document that is neither
// a mapping nor null.
var ErrNotMapping = errors.New("yamlutil: document is not a mapping")

// UnmarshalMap decodes a mapping into nested map[string]any values. Blank
// and null documents give an empty, non-nil map.
func UnmarshalMap(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	var raw any
	if err := decode(data, &raw); err != nil {
		return nil, err
	}
	switch m := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, raw)
	}
}

// UnmarshalLenient is Unmarshal for embedded blocks such as front matter,
// where an empty block is valid and leaves v untouched.
func UnmarshalLenient(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return decode(data, v)
}

// Remarshal moves a generic value into the typed dst through an encode and
// a strict decode, so keys dst does not declare are errors.
func Remarshal(src, dst any) error {
	if dst == nil {
		return ErrNilDestination
	}
	data, err := Marshal(src)
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, dst)
}
