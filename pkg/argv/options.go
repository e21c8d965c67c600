package argv

import (
	"fmt"
	"strings"
)

// Endianness selects how number payloads are laid out.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little"
	default:
		return "big"
	}
}

// UnmarshalText accepts "big" or "little" (case-insensitive).
func (e *Endianness) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "big", "be":
		*e = BigEndian
	case "little", "le":
		*e = LittleEndian
	default:
		return fmt.Errorf("argv: unknown endianness %q", string(text))
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Endianness) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// config holds decoder and encoder configuration.
type config struct {
	order Endianness
}

// Option configures a Decoder or Encoder.
type Option func(*config)

// WithByteOrder sets the byte order of number payloads.
//
// Default: BigEndian
func WithByteOrder(order Endianness) Option {
	return func(c *config) {
		c.order = order
	}
}
