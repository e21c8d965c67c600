package config

import (
	"io"

	"cuelang.org/go/cue"
	"github.com/alecthomas/kong"
)

// Resolver supplies flag values from val. Flags given on the command line
// still win.
func Resolver(val cue.Value) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		text, ok, err := Lookup(val, flag.Name)
		if err != nil || !ok {
			return nil, err
		}
		return text, nil
	})
}

// Loader is a kong.ConfigurationLoader reading YAML, JSON or CUE data.
//
//	kong.Parse(&cli, kong.Configuration(config.Loader, "~/.config/argstream/config.yaml"))
func Loader(r io.Reader) (kong.Resolver, error) {
	val, err := LoadValueFromReader(r)
	if err != nil {
		return nil, err
	}
	return Resolver(val), nil
}
