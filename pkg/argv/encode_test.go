package argv

import (
	"bytes"
	"errors"
	"net/netip"
	"strings"
	"testing"
)

func TestEncoder_Tokens(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Address(netip.MustParseAddr("10.20.30.40")); err != nil {
		t.Fatalf("address: %v", err)
	}
	if err := enc.Number(255, 2); err != nil {
		t.Fatalf("number: %v", err)
	}
	if err := enc.ShortFlag('v'); err != nil {
		t.Fatalf("short flag: %v", err)
	}
	if err := enc.LongFlag("port"); err != nil {
		t.Fatalf("long flag: %v", err)
	}
	if err := enc.Text("hi"); err != nil {
		t.Fatalf("string: %v", err)
	}
	if err := enc.Delimiter(); err != nil {
		t.Fatalf("delimiter: %v", err)
	}

	want := []byte{
		0x01, 0x0A, 0x14, 0x1E, 0x28,
		0x02, 0x02, 0x00, 0xFF,
		0x03, 'v',
		0x04, 0x04, 'p', 'o', 'r', 't',
		0x05, 0x02, 'h', 'i',
		0x0A,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestEncoder_NumberLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, WithByteOrder(LittleEndian)).Number(65280, 2); err != nil {
		t.Fatalf("number: %v", err)
	}
	want := []byte{0x02, 0x02, 0x00, 0xFF}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestEncoder_NumberErrors(t *testing.T) {
	enc := NewEncoder(&bytes.Buffer{})

	if err := enc.Number(1, 0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("size 0: expected ErrInvalidLength, got %v", err)
	}
	if err := enc.Number(1, 9); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("size 9: expected ErrInvalidLength, got %v", err)
	}
	if err := enc.Number(256, 1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("256 in one byte: expected ErrTooLarge, got %v", err)
	}
	if err := enc.Number(^uint64(0), 8); err != nil {
		t.Errorf("max uint64 in eight bytes: %v", err)
	}
}

func TestEncoder_TextTooLong(t *testing.T) {
	enc := NewEncoder(&bytes.Buffer{})
	if err := enc.Text(strings.Repeat("a", 256)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if err := enc.Text(strings.Repeat("a", 255)); err != nil {
		t.Errorf("255 bytes should fit: %v", err)
	}
}

func TestEncoder_AddressRejectsIPv6(t *testing.T) {
	enc := NewEncoder(&bytes.Buffer{})
	if err := enc.Address(netip.MustParseAddr("::1")); err == nil {
		t.Error("expected error for IPv6 address")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want byte
	}{
		{"10.0.0.1", TagAddress},
		{"010.0.0.1", TagString},
		{"1445", TagNumber},
		{"0", TagNumber},
		{"007", TagString},
		{"18446744073709551616", TagString},
		{"-v", TagShortFlag},
		{"-é", TagShortFlag},
		{"-vv", TagString},
		{"-", TagString},
		{"--port", TagLongFlag},
		{"--", TagLongFlag},
		{"hello", TagString},
		{"", TagString},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = 0x%02x, want 0x%02x", tt.text, got, tt.want)
		}
	}
}

func TestEncoder_EncodeVector(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).EncodeVector(Vector{"-v", "10.0.0.1", "70000", "--name", "x y"}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{
		0x03, 'v',
		0x01, 10, 0, 0, 1,
		0x02, 0x03, 0x01, 0x11, 0x70,
		0x04, 0x04, 'n', 'a', 'm', 'e',
		0x05, 0x03, 'x', ' ', 'y',
		0x0A,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
}
