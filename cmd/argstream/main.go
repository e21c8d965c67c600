package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/epithet-ssh/argstream/pkg/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// CLI is the argstream command tree.
type CLI struct {
	Verbose int             `help:"Log verbosity (-v info, -vv debug)" short:"v" type:"counter"`
	Config  kong.ConfigFlag `help:"Load flag defaults from a YAML, JSON or CUE file" short:"F"`

	Replay RunCLI    `cmd:"" name:"run" default:"withargs" help:"Decode a command stream and replay it against a service"`
	Encode EncodeCLI `cmd:"" help:"Encode text command lines into a command stream"`
}

func main() {
	var cli CLI
	ktx := kong.Parse(&cli,
		kong.Name("argstream"),
		kong.Description("Replay tagged command streams against an interactive service, one answer character per line."),
		kong.UsageOnError(),
		kong.Configuration(config.Loader, "~/.config/argstream/config.yaml", ".argstream.yaml"),
	)

	logger := newLogger(os.Stderr, cli.Verbose)
	ktx.FatalIfErrorf(ktx.Run(logger))
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity == 1:
		level = slog.LevelInfo
	case verbosity >= 2:
		level = slog.LevelDebug
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}
