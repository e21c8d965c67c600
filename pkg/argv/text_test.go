package argv

import (
	"bytes"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"ascii", []byte("abc"), "abc"},
		{"valid multibyte", []byte("a€😀"), "a€😀"},
		{"literal replacement char", []byte("�"), "�"},
		{"truncated three byte", []byte{'a', 0xE2, 0x82}, "a�"},
		{"truncated four byte", []byte{0xF0, 0x9F, 0x98, 'b'}, "�b"},
		{"two bad leads", []byte{0xFF, 0xFE}, "��"},
		{"lone continuation", []byte{0x80, 'x'}, "�x"},
		{"overlong lead", []byte{0xC0, 0xAF}, "��"},
		{"E0 needs A0 or above", []byte{0xE0, 0x80, 0x80}, "���"},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, "���"},
		{"above U+10FFFF", []byte{0xF4, 0x90, 0x80, 0x80}, "����"},
		{"truncated then valid", []byte{0xE2, 0x82, 0xE2, 0x82, 0xAC}, "�€"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(tt.input); got != tt.want {
				t.Errorf("DecodeText(% x) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecode_TruncatedSequenceInString(t *testing.T) {
	prog, err := Decode([]byte{TagString, 3, 'a', 0xE2, 0x82})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog) != 1 || len(prog[0]) != 1 || prog[0][0] != "a�" {
		t.Errorf("got %q, want [[\"a\\uFFFD\"]]", prog)
	}

	prog, err = Decode([]byte{TagLongFlag, 4, 0xF0, 0x9F, 0x98, 'b'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog) != 1 || len(prog[0]) != 1 || prog[0][0] != "--�b" {
		t.Errorf("got %q, want [[\"--\\uFFFDb\"]]", prog)
	}
}

// Property: a tiny destination buffer and split source give the same result
// as a single pass.
func TestProperty_ReplaceInvalidChunked(t *testing.T) {
	property := func(data []byte) bool {
		want := DecodeText(data)
		var out bytes.Buffer
		w := transform.NewWriter(&out, ReplaceInvalid())
		for _, b := range data {
			if _, err := w.Write([]byte{b}); err != nil {
				return false
			}
		}
		if err := w.Close(); err != nil {
			return false
		}
		return out.String() == want && utf8.ValidString(want)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
