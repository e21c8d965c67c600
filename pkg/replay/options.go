package replay

import (
	"log/slog"
	"time"

	"github.com/epithet-ssh/argstream/pkg/argv"
)

// DefaultTimeout bounds connecting and every single read or write.
const DefaultTimeout = 5 * time.Second

// DefaultProbeGrace is how long detection waits for the rest of the first
// reply once its first byte has arrived.
const DefaultProbeGrace = 200 * time.Millisecond

// Option configures a Client.
type Option func(*Client)

// WithMode selects automatic detection or a fixed read strategy.
//
// Default: ModeAuto
func WithMode(m Mode) Option {
	return func(c *Client) {
		c.mode = m
	}
}

// WithTerminator sets the bytes appended to every sent line.
//
// Default: argv.LF
func WithTerminator(t argv.Terminator) Option {
	return func(c *Client) {
		c.term = t
	}
}

// WithTimeout sets the connect timeout and the deadline applied to each read
// and write.
//
// Default: DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithProbeGrace sets how long detection waits for the rest of the first
// reply after its first byte. A byte-oriented peer never ends the reply with
// a newline, so this is the cost of detecting one. It never exceeds the
// timeout, and a non-positive d keeps the default.
//
// Default: DefaultProbeGrace
func WithProbeGrace(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.grace = d
		}
	}
}

// WithMarker sets the probe text that identifies a line-oriented peer.
//
// Default: DefaultMarker
func WithMarker(marker string) Option {
	return func(c *Client) {
		c.marker = marker
	}
}

// WithObserver registers fn to be called with every collected character, in
// order, as soon as it is read.
func WithObserver(fn func(ch string)) Option {
	return func(c *Client) {
		c.observer = fn
	}
}

// WithLogger sets the logger used for exchange diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
