package argv

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

const replacement = "�"

// ReplaceInvalid returns a Transformer that replaces each maximal invalid
// subpart of a UTF-8 stream with a single U+FFFD. A truncated multibyte
// sequence such as E2 82 becomes one replacement; a byte that can never
// start a sequence becomes one replacement on its own.
func ReplaceInvalid() transform.Transformer {
	return subpartReplacer{}
}

// DecodeText converts b to a string with ReplaceInvalid.
func DecodeText(b []byte) string {
	out, _, err := transform.Bytes(ReplaceInvalid(), b)
	if err != nil {
		// Unreachable with atEOF set; keep the input rather than lose it.
		return string(b)
	}
	return string(out)
}

type subpartReplacer struct{ transform.NopResetter }

func (subpartReplacer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r != utf8.RuneError || size != 1 {
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
			nSrc += size
			continue
		}

		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst+len(replacement) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], replacement)
		nSrc += invalidPrefix(src[nSrc:])
	}
	return nDst, nSrc, nil
}

// invalidPrefix returns the length of the ill-formed sequence at the start of
// b: the lead byte plus every following byte that still fits a well-formed
// sequence begun by that lead.
func invalidPrefix(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var n int
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		n = 2
	case c == 0xE0:
		n, lo = 3, 0xA0
	case c == 0xED:
		n, hi = 3, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		n = 3
	case c == 0xF0:
		n, lo = 4, 0x90
	case c >= 0xF1 && c <= 0xF3:
		n = 4
	case c == 0xF4:
		n, hi = 4, 0x8F
	default:
		return 1
	}

	i := 1
	for i < n && i < len(b) && b[i] >= lo && b[i] <= hi {
		i++
		lo, hi = 0x80, 0xBF
	}
	return i
}
