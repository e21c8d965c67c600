// Package argv implements encoding and decoding of tagged argument streams.
//
// An argument stream is a compact binary encoding of command lines. Each
// token starts with a one-byte tag that decides how the following bytes are
// read:
//
//	0x01 <o1 o2 o3 o4>        address      "o1.o2.o3.o4"
//	0x02 <L> <L bytes>        number       unsigned integer, 1 <= L <= 8
//	0x03 <c>                  short flag   "-c"
//	0x04 <L> <L bytes>        long flag    "--" + UTF-8 text
//	0x05 <L> <L bytes>        string       UTF-8 text
//	0x0A                      delimiter    ends the current command line
//
// The delimiter is only recognised where a tag is expected. The same byte
// inside a payload is ordinary data.
//
// # Examples
//
//	"\x01\x0a\x14\x1e\x28"              // ["10.20.30.40"]
//	"\x03v\x04\x04port\x02\x02\x05\xa5" // ["-v", "--port", "1445"]
//
// # Basic Usage
//
// Decoding a whole buffer:
//
//	prog, err := argv.Decode(data, argv.WithByteOrder(argv.LittleEndian))
//	// prog holds every complete line; err only says why decoding stopped
//
// Decoding token by token:
//
//	dec := argv.NewDecoder(data)
//	for {
//		tok, err := dec.Next()
//		...
//	}
//
// Encoding:
//
//	enc := argv.NewEncoder(&buf)
//	enc.EncodeVector(argv.Vector{"-v", "--port", "1445"})
//
// # Malformed Input
//
// Decoding is best effort. An unknown tag, a zero-length number or a payload
// running past the end of the buffer stops decoding, and Decode returns
// everything decoded up to that point together with a *FormatError.
// Invalid UTF-8 in text payloads never stops decoding; each maximal invalid
// subpart is replaced with a single U+FFFD.
package argv
