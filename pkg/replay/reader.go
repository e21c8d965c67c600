package replay

import (
	"bufio"
	"strings"
	"unicode/utf8"

	"github.com/epithet-ssh/argstream/pkg/argv"
)

// DefaultMarker is the text that marks a peer as line oriented.
const DefaultMarker = "Subprocess Output"

// Read performs one read with s and returns the response character, or ""
// when the peer supplied nothing. It never fails.
func (s Strategy) Read(r *bufio.Reader) string {
	ch, _ := s.read(r)
	return ch
}

func (s Strategy) read(r *bufio.Reader) (string, error) {
	if s == StrategyByte {
		return readByte(r)
	}
	line, err := readLine(r)
	return Extract(line), err
}

// readByte reads exactly one byte. Bytes outside ASCII become U+FFFD.
func readByte(r *bufio.Reader) (string, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	return argv.DecodeText([]byte{b}), nil
}

// readLine reads up to and including the next '\n'. Data received before the
// end of the stream or a deadline is returned as a line; the error is only
// meaningful when the line is empty.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	return argv.DecodeText([]byte(line)), err
}

// Extract returns the response character carried by a text line.
//
// The line is trimmed. If it contains a colon, the answer is the last
// character of the trimmed text after the first colon; otherwise it is the
// last character of the line. An empty string means no answer.
func Extract(line string) string {
	text := strings.TrimSpace(line)
	if _, tail, ok := strings.Cut(text, ":"); ok {
		text = strings.TrimSpace(tail)
	}
	return lastChar(text)
}

// Classify decides from the trimmed probe text whether the peer answers with
// text lines. Anything containing marker or a colon, or longer than one
// character, is a line; a single character (or nothing) is a raw byte.
func Classify(probe, marker string) Strategy {
	text := strings.TrimSpace(probe)
	if (marker != "" && strings.Contains(text, marker)) ||
		strings.Contains(text, ":") ||
		utf8.RuneCountInString(text) > 1 {
		return StrategyLine
	}
	return StrategyByte
}

func lastChar(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[len(s)-size:]
}
