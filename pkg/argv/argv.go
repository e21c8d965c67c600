package argv

import (
	"io"
	"strings"
)

// Tags selecting how the bytes after them are interpreted.
const (
	TagAddress   byte = 0x01
	TagNumber    byte = 0x02
	TagShortFlag byte = 0x03
	TagLongFlag  byte = 0x04
	TagString    byte = 0x05
	Delimiter    byte = 0x0A
)

// Token is one decoded element of an argument stream.
// For the delimiter pseudo-token Text is empty.
type Token struct {
	Tag  byte
	Text string
}

// Vector is one decoded command line.
type Vector []string

// String renders the vector the way it is sent on the wire, without terminator.
func (v Vector) String() string {
	return strings.Join(v, " ")
}

// Program is the ordered list of command lines decoded from a stream.
type Program []Vector

// Decoder reads tokens from an in-memory argument stream.
//
// The buffer is never modified. The decoder keeps a single forward cursor;
// a token that cannot be completed leaves the cursor on its tag byte.
type Decoder struct {
	buf   []byte
	off   int
	order Endianness
}

// NewDecoder creates a decoder over buf.
//
// Example:
//
//	dec := argv.NewDecoder(data, argv.WithByteOrder(argv.LittleEndian))
func NewDecoder(buf []byte, opts ...Option) *Decoder {
	cfg := &config{
		order: BigEndian,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Decoder{
		buf:   buf,
		order: cfg.order,
	}
}

// Offset returns the position of the next unread byte.
func (d *Decoder) Offset() int {
	return d.off
}

// Encoder writes argument streams to an io.Writer.
//
// Writes are unbuffered; every token is a single Write call.
type Encoder struct {
	w     io.Writer
	order Endianness
}

// NewEncoder creates a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	cfg := &config{
		order: BigEndian,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Encoder{w: w, order: cfg.order}
}
