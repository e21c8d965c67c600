package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/epithet-ssh/argstream/pkg/argv"
	"github.com/epithet-ssh/argstream/pkg/replay"
)

// RunCLI decodes a command stream and replays it.
type RunCLI struct {
	Binfile string `arg:"" help:"Path to the command stream" type:"path"`

	Host       string          `help:"Service host" default:"127.0.0.1"`
	Port       int             `help:"Service port" default:"1445"`
	Endianness argv.Endianness `help:"Byte order of number tokens (big, little)" default:"big"`
	CRLF       bool            `name:"crlf" help:"Terminate lines with CRLF instead of LF"`
	RespMode   replay.Mode     `name:"resp-mode" help:"Response mode (auto, line, byte)" default:"auto"`
	Timeout    time.Duration   `help:"Connect and per-read timeout" default:"5s"`
	ProbeGrace time.Duration   `name:"probe-grace" help:"How long detection waits for the rest of the first reply" default:"200ms"`
	Marker     string          `help:"Probe text that marks a line-oriented service" default:"Subprocess Output"`
	DryRun     bool            `help:"Print decoded lines only"`
	Listing    string          `help:"Mustache template for each dry-run row ({{number}}, {{index}}, {{line}}, {{argc}})" default:"{{number}}: {{{line}}}"`
	SaveFlag   string          `name:"save-flag" help:"Write the final answer to this file" type:"path"`
}

func (r *RunCLI) Run(logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return r.run(ctx, logger, os.Stdout)
}

func (r *RunCLI) run(ctx context.Context, logger *slog.Logger, out io.Writer) error {
	data, err := os.ReadFile(r.Binfile)
	if err != nil {
		return fmt.Errorf("failed to read command stream: %w", err)
	}

	prog, err := argv.Decode(data, argv.WithByteOrder(r.Endianness))
	if err != nil {
		logger.Warn("command stream is malformed, using the lines before the error", "error", err, "lines", len(prog))
	}
	logger.Info("decoded command stream", "path", r.Binfile, "bytes", len(data), "lines", len(prog))

	if r.DryRun {
		return writeListing(out, r.Listing, prog)
	}

	term := argv.LF
	if r.CRLF {
		term = argv.CRLF
	}

	addr := net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
	res, err := replay.Run(ctx, addr, prog,
		replay.WithMode(r.RespMode),
		replay.WithTerminator(term),
		replay.WithTimeout(r.Timeout),
		replay.WithProbeGrace(r.ProbeGrace),
		replay.WithMarker(r.Marker),
		replay.WithLogger(logger),
		replay.WithObserver(func(ch string) {
			fmt.Fprint(out, ch)
		}),
	)
	if err != nil {
		return err
	}
	if res.Sent > 0 {
		fmt.Fprintln(out)
	}
	if res.Answer != "" {
		fmt.Fprintln(out, res.Answer)
	}

	if r.SaveFlag != "" {
		if err := os.WriteFile(r.SaveFlag, []byte(res.Answer), 0644); err != nil {
			return fmt.Errorf("failed to save answer: %w", err)
		}
		logger.Info("saved answer", "path", r.SaveFlag)
	}
	return nil
}

// writeListing prints one templated row per line, then a count.
func writeListing(w io.Writer, tmpl string, prog argv.Program) error {
	t, err := mustache.ParseString(tmpl)
	if err != nil {
		return fmt.Errorf("invalid listing template: %w", err)
	}

	for i, v := range prog {
		row, err := t.Render(map[string]any{
			"number": fmt.Sprintf("%03d", i+1),
			"index":  i + 1,
			"line":   v.String(),
			"argc":   len(v),
		})
		if err != nil {
			return fmt.Errorf("failed to render line %d: %w", i+1, err)
		}
		fmt.Fprintln(w, row)
	}
	fmt.Fprintf(w, "\nDecoded CLI strings: %d\n", len(prog))
	return nil
}
