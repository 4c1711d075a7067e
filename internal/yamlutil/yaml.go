// Package yamlutil wraps YAML parsing to isolate the external dependency.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yaml: nil or empty data")
	ErrNilDestination = errors.New("yaml: nil destination pointer")
	ErrInputTooLarge  = errors.New("yaml: input exceeds maximum size")
	ErrDecode         = errors.New("yaml: decode failed")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// decode runs the goccy decoder and flattens its error to a single line
// that still carries the line and column.
func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, yaml.FormatError(err, false, false))
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return result, nil
}

// ReadFileStrict reads path and decodes it with UnmarshalStrict.
// Files larger than MaxInputSize are rejected without reading them fully.
func ReadFileStrict(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- caller resolves the path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}
