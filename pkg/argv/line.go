package argv

// Terminator ends every serialized line.
type Terminator string

const (
	LF   Terminator = "\n"
	CRLF Terminator = "\r\n"
)

// Serialize renders v as the bytes sent for one command line: the tokens
// joined by single spaces, followed by term.
func (v Vector) Serialize(term Terminator) []byte {
	n := len(term)
	for i, s := range v {
		if i > 0 {
			n++
		}
		n += len(s)
	}

	out := make([]byte, 0, n)
	for i, s := range v {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, s...)
	}
	return append(out, term...)
}
