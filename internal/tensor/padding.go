package tensor

import (
	"fmt"
	"strings"
)

// PaddingMode selects how the border around a tensor is filled.
type PaddingMode int

// Supported padding modes.
const (
	// PadValid never pads; the stored size is ignored.
	PadValid PaddingMode = iota
	// PadReflect mirrors the tensor without repeating the edge sample.
	PadReflect
	// PadReplicate repeats the nearest edge value outward.
	PadReplicate
	// PadCircular wraps around to the opposite edge.
	PadCircular
)

// String returns the lowercase mode name.
func (m PaddingMode) String() string {
	switch m {
	case PadValid:
		return "valid"
	case PadReflect:
		return "reflect"
	case PadReplicate:
		return "replicate"
	case PadCircular:
		return "circular"
	default:
		return "unknown"
	}
}

// ParsePaddingMode parses a mode name (case-insensitive).
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valid", "":
		return PadValid, nil
	case "reflect":
		return PadReflect, nil
	case "replicate":
		return PadReplicate, nil
	case "circular":
		return PadCircular, nil
	default:
		return PadValid, fmt.Errorf("%w: %q", ErrUnknownPadding, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m PaddingMode) MarshalText() ([]byte, error) {
	if m < PadValid || m > PadCircular {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPadding, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so modes can be read
// from flags and YAML.
func (m *PaddingMode) UnmarshalText(text []byte) error {
	mode, err := ParsePaddingMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Padding is a mode plus a border size in cells.
type Padding struct {
	Mode PaddingMode
	Size int
}

// Effective returns the border size actually applied: 0 for valid.
func (p Padding) Effective() int {
	if p.Mode == PadValid || p.Size < 0 {
		return 0
	}
	return p.Size
}

// Normalize returns p with valid mode forced to size 0.
func (p Padding) Normalize() Padding {
	return Padding{Mode: p.Mode, Size: p.Effective()}
}

// String formats the padding as "mode(size)".
func (p Padding) String() string {
	return fmt.Sprintf("%s(%d)", p.Mode, p.Effective())
}
