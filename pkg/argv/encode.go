package argv

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxTextLen is the longest payload a one-byte length prefix can describe.
const maxTextLen = 255

// Address writes an IPv4 address token.
func (e *Encoder) Address(addr netip.Addr) error {
	addr = addr.Unmap()
	if !addr.Is4() {
		return fmt.Errorf("argv: %s is not an IPv4 address", addr)
	}
	b := addr.As4()
	return e.write(TagAddress, b[:]...)
}

// Number writes v as a size-byte number token.
func (e *Encoder) Number(v uint64, size int) error {
	if size < 1 || size > maxNumberLen {
		return ErrInvalidLength
	}
	if size < maxNumberLen && v>>(8*size) != 0 {
		return fmt.Errorf("%w: %d does not fit in %d bytes", ErrTooLarge, v, size)
	}

	b := make([]byte, size)
	for i := range size {
		shift := 8 * i
		if e.order == LittleEndian {
			b[i] = byte(v >> shift)
		} else {
			b[size-1-i] = byte(v >> shift)
		}
	}
	return e.write(TagNumber, append([]byte{byte(size)}, b...)...)
}

// ShortFlag writes a "-c" token.
func (e *Encoder) ShortFlag(c byte) error {
	return e.write(TagShortFlag, c)
}

// LongFlag writes a "--name" token. name excludes the leading dashes.
func (e *Encoder) LongFlag(name string) error {
	return e.text(TagLongFlag, name)
}

// Text writes a plain string token.
func (e *Encoder) Text(s string) error {
	return e.text(TagString, s)
}

// Delimiter ends the current command line.
func (e *Encoder) Delimiter() error {
	return e.write(Delimiter)
}

// EncodeVector writes every token of v, choosing the tag with Classify, and
// terminates the line with a delimiter.
//
// Example:
//
//	enc.EncodeVector(argv.Vector{"-v", "10.0.0.1"}) // writes "\x03v\x01\x0a\x00\x00\x01\x0a"
func (e *Encoder) EncodeVector(v Vector) error {
	for _, text := range v {
		if err := e.token(text); err != nil {
			return err
		}
	}
	return e.Delimiter()
}

// EncodeProgram writes every line of p.
func (e *Encoder) EncodeProgram(p Program) error {
	for _, v := range p {
		if err := e.EncodeVector(v); err != nil {
			return err
		}
	}
	return nil
}

// Classify returns the tag EncodeVector uses for text.
//
// Only forms that decode back to exactly the same text are given a typed tag:
// canonical dotted IPv4 addresses, decimal numbers without leading zeros,
// "-c" with c in U+0000..U+00FF, and anything starting with "--".
// Everything else is a string.
func Classify(text string) byte {
	if strings.HasPrefix(text, "--") {
		return TagLongFlag
	}
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		r, size := utf8.DecodeRuneInString(rest)
		if size > 0 && size == len(rest) && r != utf8.RuneError && r <= 0xFF {
			return TagShortFlag
		}
	}
	if addr, err := netip.ParseAddr(text); err == nil && addr.Is4() && addr.String() == text {
		return TagAddress
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil && strconv.FormatUint(n, 10) == text {
		return TagNumber
	}
	return TagString
}

func (e *Encoder) token(text string) error {
	switch Classify(text) {
	case TagLongFlag:
		return e.LongFlag(text[2:])
	case TagShortFlag:
		r, _ := utf8.DecodeRuneInString(text[1:])
		return e.ShortFlag(byte(r))
	case TagAddress:
		return e.Address(netip.MustParseAddr(text))
	case TagNumber:
		n, _ := strconv.ParseUint(text, 10, 64)
		return e.Number(n, minWidth(n))
	default:
		return e.Text(text)
	}
}

// minWidth returns the fewest bytes that hold n, at least one.
func minWidth(n uint64) int {
	w := 1
	for n > 0xFF {
		n >>= 8
		w++
	}
	return w
}

func (e *Encoder) text(tag byte, s string) error {
	if len(s) > maxTextLen {
		return fmt.Errorf("%w: %d byte payload exceeds %d", ErrTooLarge, len(s), maxTextLen)
	}
	return e.write(tag, append([]byte{byte(len(s))}, s...)...)
}

func (e *Encoder) write(tag byte, payload ...byte) error {
	_, err := e.w.Write(append([]byte{tag}, payload...))
	return err
}
