package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/epithet-ssh/argstream/pkg/argv"
)

// Result is the outcome of one exchange.
type Result struct {
	// Answer is the collected characters in send order.
	Answer string
	// Strategy is the read strategy used after detection.
	Strategy Strategy
	// Sent is the number of lines written.
	Sent int
	// Received is the number of characters collected.
	Received int
	// Stop is why the exchange ended.
	Stop Stop
}

// Client replays command lines over a single connection.
//
// A Client is not safe for concurrent use and runs one exchange.
type Client struct {
	conn     net.Conn
	r        *bufio.Reader
	mode     Mode
	term     argv.Terminator
	timeout  time.Duration
	grace    time.Duration
	marker   string
	observer func(string)
	logger   *slog.Logger
	state    State
}

func newClient(opts []Option) *Client {
	c := &Client{
		mode:    ModeAuto,
		term:    argv.LF,
		timeout: DefaultTimeout,
		grace:   DefaultProbeGrace,
		marker:  DefaultMarker,
		logger:  slog.Default(),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New wraps an established connection. The Client owns conn from now on.
func New(conn net.Conn, opts ...Option) *Client {
	c := newClient(opts)
	c.conn = conn
	c.r = bufio.NewReader(conn)
	return c
}

// Dial connects to addr over TCP, giving up after the configured timeout.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	c := newClient(opts)

	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	c.conn = conn
	c.r = bufio.NewReader(conn)
	c.logger.Debug("connected", "addr", addr, "local", conn.LocalAddr().String())
	return c, nil
}

// Run connects to addr, replays prog and closes the connection.
//
// An empty program returns immediately without connecting. The only error is
// a failure to connect; every other problem ends the exchange early and is
// reported through Result.Stop.
func Run(ctx context.Context, addr string, prog argv.Program, opts ...Option) (Result, error) {
	if len(prog) == 0 {
		return Result{Stop: StopExhausted}, nil
	}

	c, err := Dial(ctx, addr, opts...)
	if err != nil {
		return Result{}, err
	}
	defer c.Close()

	return c.Stream(ctx, prog), nil
}

// State returns where the client is in its exchange.
func (c *Client) State() State {
	return c.state
}

// Close releases the connection.
func (c *Client) Close() error {
	c.state = StateDone
	return c.conn.Close()
}

// Stream sends every line of prog, one at a time, and reads one response
// character for each. It stops at the first empty response.
//
// Stream runs once; later calls return an empty Result with StopClosed.
func (c *Client) Stream(ctx context.Context, prog argv.Program) (res Result) {
	if c.state != StateIdle {
		return Result{Stop: StopClosed}
	}

	// Cancellation expires the deadline so a blocked read returns.
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Now())
	})
	defer stop()

	var (
		answer strings.Builder
		lines  = []argv.Vector(prog)
	)
	defer func() {
		res.Answer = answer.String()
		c.state = StateDone
		c.logger.Info("exchange finished",
			"stop", res.Stop.String(),
			"sent", res.Sent,
			"received", res.Received,
			"strategy", res.Strategy.String(),
		)
	}()

	collect := func(ch string) {
		answer.WriteString(ch)
		res.Received++
		if c.observer != nil {
			c.observer(ch)
		}
	}

	res.Strategy = c.mode.strategy()
	if c.mode == ModeAuto && len(lines) > 0 {
		c.state = StateDetecting

		if err := c.send(lines[0]); err != nil {
			res.Stop = c.stopFor(ctx, err, StopWriteFailed)
			return res
		}
		res.Sent++

		probe, err := c.probe()
		if probe == "" {
			if ctx.Err() != nil {
				res.Stop = StopCanceled
				return res
			}
			c.logger.Warn("no reply to first line, cannot detect response mode", "error", err)
			res.Stop = StopEmptyProbe
			return res
		}

		text := strings.TrimSpace(probe)
		res.Strategy = Classify(text, c.marker)
		c.logger.Info("detected response mode", "strategy", res.Strategy.String(), "probe", text)
		if ch := Extract(text); ch != "" {
			collect(ch)
		}
		lines = lines[1:]
	}
	c.state = res.Strategy.state()

	for _, v := range lines {
		if ctx.Err() != nil {
			res.Stop = StopCanceled
			return res
		}
		if err := c.send(v); err != nil {
			res.Stop = c.stopFor(ctx, err, StopWriteFailed)
			return res
		}
		res.Sent++

		ch, err := c.read(res.Strategy)
		if ch == "" {
			res.Stop = c.stopFor(ctx, err, StopEmptyResponse)
			return res
		}
		collect(ch)
	}

	res.Stop = StopExhausted
	return res
}

// send writes one serialized line.
func (c *Client) send(v argv.Vector) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	_, err := c.conn.Write(v.Serialize(c.term))
	if err == nil {
		c.logger.Debug("sent line", "line", v.String())
	}
	return err
}

// probe reads the first reply as a line, raw. It waits up to the timeout for
// the first byte and then only the grace period for the rest of the line.
func (c *Client) probe() (string, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return "", err
	}
	if _, err := c.r.Peek(1); err != nil {
		return "", err
	}

	grace := min(c.grace, c.timeout)
	if err := c.conn.SetReadDeadline(time.Now().Add(grace)); err != nil {
		return "", err
	}
	return readLine(c.r)
}

func (c *Client) read(s Strategy) (string, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return "", err
	}
	ch, err := s.read(c.r)
	if ch != "" {
		c.logger.Debug("received", "char", ch)
	}
	return ch, err
}

// stopFor maps the error that ended an exchange to a Stop.
// fallback is used when err says nothing more specific.
func (c *Client) stopFor(ctx context.Context, err error, fallback Stop) Stop {
	if ctx.Err() != nil {
		return StopCanceled
	}
	if err == nil {
		return fallback
	}

	var ne net.Error
	switch {
	case errors.As(err, &ne) && ne.Timeout():
		c.logger.Debug("deadline reached", "error", err)
		return StopTimeout
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), errors.Is(err, io.ErrClosedPipe):
		c.logger.Debug("peer closed connection", "error", err)
		return StopPeerClosed
	default:
		c.logger.Debug("connection error", "error", err)
		return fallback
	}
}
