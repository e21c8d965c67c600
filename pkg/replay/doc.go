// Package replay sends decoded command lines to an interactive service and
// collects one response character per line.
//
// The peer either answers each line with a text line, optionally carrying the
// answer after a colon ("Subprocess Output: X"), or with a single raw byte.
// In ModeAuto the client sends the first line, reads one line back and picks
// the read strategy from what it saw; the choice then holds for the rest of
// the connection.
//
//	res, err := replay.Run(ctx, "127.0.0.1:1445", prog,
//		replay.WithObserver(func(ch string) { fmt.Print(ch) }),
//	)
//
// Only failing to connect is an error. Timeouts, a peer that hangs up and
// empty replies all end the exchange early and return what was collected.
package replay
