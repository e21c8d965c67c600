package argv

import (
	"io"
	"net/netip"
	"strconv"
)

// maxNumberLen is the widest number payload, in bytes.
const maxNumberLen = 8

// Decode parses the whole buffer into command lines.
//
// The returned Program always holds every line decoded before the end of the
// input or the first malformed token. A non-nil error is a *FormatError that
// only explains why decoding stopped early; callers may log it and carry on.
//
// A delimiter closes the current line even when it is empty. A Program with no
// non-empty line at all is returned empty, so a stream made only of
// delimiters decodes to zero lines.
func Decode(data []byte, opts ...Option) (Program, error) {
	dec := NewDecoder(data, opts...)

	prog := Program{}
	cur := Vector{}
	for {
		tok, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(cur) > 0 {
				prog = append(prog, cur)
			}
			return blank(prog), err
		}

		if tok.Tag == Delimiter {
			prog = append(prog, cur)
			cur = Vector{}
			continue
		}
		cur = append(cur, tok.Text)
	}

	if len(cur) > 0 {
		prog = append(prog, cur)
	}
	return blank(prog), nil
}

// blank returns an empty Program when every line of prog is empty.
func blank(prog Program) Program {
	for _, v := range prog {
		if len(v) > 0 {
			return prog
		}
	}
	return Program{}
}

// Next decodes the next token.
//
// Returns io.EOF once the whole buffer has been consumed. Any other error is a
// *FormatError; the cursor is left on the rejected tag byte and every later
// call returns the same error.
func (d *Decoder) Next() (Token, error) {
	if d.off >= len(d.buf) {
		return Token{}, io.EOF
	}

	start := d.off
	tag := d.buf[start]
	d.off++

	tok, err := d.payload(tag)
	if err != nil {
		d.off = start
		return Token{}, &FormatError{Offset: start, Tag: tag, Err: err}
	}
	return tok, nil
}

// payload reads the bytes belonging to tag, which has already been consumed.
func (d *Decoder) payload(tag byte) (Token, error) {
	switch tag {
	case Delimiter:
		return Token{Tag: Delimiter}, nil

	case TagAddress:
		b, err := d.take(4)
		if err != nil {
			return Token{}, err
		}
		addr := netip.AddrFrom4([4]byte{b[0], b[1], b[2], b[3]})
		return Token{Tag: tag, Text: addr.String()}, nil

	case TagNumber:
		n, err := d.length()
		if err != nil {
			return Token{}, err
		}
		if n == 0 || n > maxNumberLen {
			return Token{}, ErrInvalidLength
		}
		b, err := d.take(n)
		if err != nil {
			return Token{}, err
		}
		return Token{Tag: tag, Text: strconv.FormatUint(d.order.value(b), 10)}, nil

	case TagShortFlag:
		b, err := d.take(1)
		if err != nil {
			return Token{}, err
		}
		// The flag byte is taken as a code point, so 0x80-0xFF map to Latin-1.
		return Token{Tag: tag, Text: "-" + string(rune(b[0]))}, nil

	case TagLongFlag, TagString:
		n, err := d.length()
		if err != nil {
			return Token{}, err
		}
		b, err := d.take(n)
		if err != nil {
			return Token{}, err
		}
		text := DecodeText(b)
		if tag == TagLongFlag {
			text = "--" + text
		}
		return Token{Tag: tag, Text: text}, nil

	default:
		return Token{}, ErrUnknownTag
	}
}

// length reads a one-byte length prefix.
func (d *Decoder) length() (int, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return int(b[0]), nil
}

// take returns the next n bytes without copying them.
func (d *Decoder) take(n int) ([]byte, error) {
	if n > len(d.buf)-d.off {
		return nil, ErrTruncated
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// value assembles an unsigned integer of up to eight bytes.
func (e Endianness) value(b []byte) uint64 {
	var v uint64
	if e == LittleEndian {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		return v
	}
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
