package argv

import (
	"bytes"
	"math/rand"
	"net/netip"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

// Property: Decode never panics or reads past the buffer, for any input.
func TestProperty_DecodeIsTotal(t *testing.T) {
	property := func(data []byte, little bool) bool {
		order := BigEndian
		if little {
			order = LittleEndian
		}
		dec := NewDecoder(data, WithByteOrder(order))
		for {
			_, err := dec.Next()
			if dec.Offset() > len(data) {
				return false
			}
			if err != nil {
				break
			}
		}
		_, _ = Decode(data, WithByteOrder(order))
		return true
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// Property: decoding a tagged prefix of random bytes never produces more
// lines than there are delimiters plus one.
func TestProperty_LineCountBounded(t *testing.T) {
	property := func(data []byte) bool {
		prog, _ := Decode(data)
		return len(prog) <= bytes.Count(data, []byte{Delimiter})+1
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// Property: a number encoded in L bytes with byte order E decodes to its
// decimal text with the same E.
func TestProperty_NumberRoundTrip(t *testing.T) {
	property := func(v uint64, width uint8, little bool) bool {
		size := int(width%maxNumberLen) + 1
		if size < maxNumberLen {
			v &= 1<<(8*size) - 1
		}
		order := BigEndian
		if little {
			order = LittleEndian
		}

		var buf bytes.Buffer
		if err := NewEncoder(&buf, WithByteOrder(order)).Number(v, size); err != nil {
			t.Logf("encode failed: %v", err)
			return false
		}

		prog, err := Decode(buf.Bytes(), WithByteOrder(order))
		if err != nil {
			t.Logf("decode failed: %v", err)
			return false
		}
		return reflect.DeepEqual(prog, Program{{strconv.FormatUint(v, 10)}})
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// Property: invalid UTF-8 inside a string payload never stops decoding.
func TestProperty_InvalidTextDoesNotHalt(t *testing.T) {
	property := func(payload []byte) bool {
		if len(payload) > maxTextLen {
			payload = payload[:maxTextLen]
		}
		input := append([]byte{TagString, byte(len(payload))}, payload...)
		input = append(input, TagShortFlag, 'z')

		prog, err := Decode(input)
		if err != nil || len(prog) != 1 || len(prog[0]) != 2 {
			return false
		}
		return utf8.ValidString(prog[0][0]) && prog[0][1] == "-z"
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// randomToken returns text that Classify maps to each of the tag kinds.
func randomToken(r *rand.Rand) string {
	switch r.Intn(5) {
	case 0:
		return netip.AddrFrom4([4]byte{byte(r.Intn(256)), byte(r.Intn(256)), byte(r.Intn(256)), byte(r.Intn(256))}).String()
	case 1:
		return strconv.FormatUint(r.Uint64()>>uint(r.Intn(64)), 10)
	case 2:
		return "-" + string(rune('a'+r.Intn(26)))
	case 3:
		return "--" + randomWord(r)
	default:
		return randomWord(r)
	}
}

func randomWord(r *rand.Rand) string {
	var sb strings.Builder
	n := r.Intn(12)
	for range n {
		sb.WriteRune(rune('a' + r.Intn(26)))
	}
	return sb.String()
}

// Property: EncodeProgram -> Decode reproduces the program.
func TestProperty_ProgramRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1445))
	for i := 0; i < 200; i++ {
		prog := Program{}
		for range 1 + r.Intn(5) {
			v := Vector{}
			for range 1 + r.Intn(6) {
				v = append(v, randomToken(r))
			}
			prog = append(prog, v)
		}

		var buf bytes.Buffer
		if err := NewEncoder(&buf).EncodeProgram(prog); err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		got, err := Decode(buf.Bytes())
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if !reflect.DeepEqual(got, prog) {
			t.Fatalf("roundtrip failed:\n got %q\nwant %q", got, prog)
		}
	}
}
