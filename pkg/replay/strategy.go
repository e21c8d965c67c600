package replay

import (
	"fmt"
	"strings"
)

// Mode selects how the client reads responses.
type Mode int

const (
	// ModeAuto probes the first response to choose a Strategy.
	ModeAuto Mode = iota
	// ModeLine reads one text line per command line.
	ModeLine
	// ModeByte reads one raw byte per command line.
	ModeByte
)

func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeByte:
		return "byte"
	default:
		return "auto"
	}
}

// UnmarshalText accepts "auto", "line" or "byte".
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "auto", "":
		*m = ModeAuto
	case "line":
		*m = ModeLine
	case "byte":
		*m = ModeByte
	default:
		return fmt.Errorf("replay: unknown response mode %q", string(text))
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Strategy is the fixed way responses are read once detection is over.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyLine
	StrategyByte
)

func (s Strategy) String() string {
	switch s {
	case StrategyLine:
		return "line"
	case StrategyByte:
		return "byte"
	default:
		return "none"
	}
}

// strategy returns the Strategy an explicit mode pins.
func (m Mode) strategy() Strategy {
	switch m {
	case ModeLine:
		return StrategyLine
	case ModeByte:
		return StrategyByte
	default:
		return StrategyNone
	}
}

// State is the position of a Client in its exchange.
type State int

const (
	StateIdle State = iota
	StateDetecting
	StateSteadyLine
	StateSteadyByte
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetecting:
		return "detecting"
	case StateSteadyLine:
		return "steady-line"
	case StateSteadyByte:
		return "steady-byte"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// state is the steady state s leads to. No strategy means nothing to replay.
func (s Strategy) state() State {
	switch s {
	case StrategyLine:
		return StateSteadyLine
	case StrategyByte:
		return StateSteadyByte
	default:
		return StateDone
	}
}

// Stop records why an exchange ended.
type Stop int

const (
	// StopExhausted means every line was sent and answered.
	StopExhausted Stop = iota
	// StopEmptyProbe means the first read in ModeAuto returned nothing.
	StopEmptyProbe
	// StopEmptyResponse means a reply carried no character.
	StopEmptyResponse
	// StopPeerClosed means the peer closed the connection.
	StopPeerClosed
	// StopTimeout means a read or write hit its deadline.
	StopTimeout
	// StopWriteFailed means a line could not be sent.
	StopWriteFailed
	// StopCanceled means the context ended the exchange.
	StopCanceled
	// StopClosed means the client had already finished.
	StopClosed
)

func (s Stop) String() string {
	switch s {
	case StopExhausted:
		return "exhausted"
	case StopEmptyProbe:
		return "empty probe"
	case StopEmptyResponse:
		return "empty response"
	case StopPeerClosed:
		return "peer closed"
	case StopTimeout:
		return "timeout"
	case StopWriteFailed:
		return "write failed"
	case StopCanceled:
		return "canceled"
	case StopClosed:
		return "closed"
	default:
		return fmt.Sprintf("stop(%d)", int(s))
	}
}
