package modal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownArrayType     = errors.New("modal: unknown array type")
	ErrUnsupportedArrayType = errors.New("modal: array type not supported for this geometry")
	ErrNegativeOrder        = errors.New("modal: order must be >= 0")
)

// ArrayType describes the mounting of the sensors.
type ArrayType int

const (
	// Open is an acoustically transparent array of omnidirectional sensors.
	Open ArrayType = iota
	// Rigid places omnidirectional sensors on a rigid baffle.
	Rigid
	// Directional is an open array of first-order directional sensors
	// pointing radially outwards. Spherical arrays only.
	Directional
)

func (t ArrayType) String() string {
	switch t {
	case Open:
		return "open"
	case Rigid:
		return "rigid"
	case Directional:
		return "directional"
	default:
		return fmt.Sprintf("ArrayType(%d)", int(t))
	}
}

// Valid reports whether t is one of the known array types.
func (t ArrayType) Valid() bool {
	return t == Open || t == Rigid || t == Directional
}

// ParseArrayType parses "open", "rigid" or "directional" (case-insensitive).
func ParseArrayType(s string) (ArrayType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return Open, nil
	case "rigid":
		return Rigid, nil
	case "directional":
		return Directional, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownArrayType, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ArrayType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArrayType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ArrayType) UnmarshalText(b []byte) error {
	v, err := ParseArrayType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
