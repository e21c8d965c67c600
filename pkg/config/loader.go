// Package config loads argstream defaults from YAML, JSON or CUE files.
// CUE is the underlying parser for all three formats.
package config

import (
	"fmt"
	"io"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// LoadValueFromReader loads configuration from an io.Reader and returns a CUE value.
// The content is parsed as YAML (a superset of JSON) and, failing that, as
// CUE source.
func LoadValueFromReader(r io.Reader) (cue.Value, error) {
	ctx := cuecontext.New()

	data, err := io.ReadAll(r)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}

	var val cue.Value
	if file, yerr := yaml.Extract("", data); yerr == nil {
		val = ctx.BuildFile(file)
	} else {
		val = ctx.CompileBytes(data)
		if val.Err() != nil {
			return cue.Value{}, fmt.Errorf("failed to parse config: %w", yerr)
		}
	}

	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build CUE value: %w", err)
	}
	if val.IncompleteKind() != cue.StructKind {
		return cue.Value{}, fmt.Errorf("config must be a mapping of flag names, got %s", val.IncompleteKind())
	}

	return val, nil
}

// Lookup returns the scalar at key rendered as text.
//
// Keys are flag names; "resp-mode" also matches "resp_mode". Missing keys
// return ok == false. Structs and lists are an error.
func Lookup(val cue.Value, key string) (text string, ok bool, err error) {
	for _, name := range candidates(key) {
		v := val.LookupPath(cue.MakePath(cue.Str(name)))
		if !v.Exists() {
			continue
		}
		switch v.Kind() {
		case cue.StringKind:
			s, err := v.String()
			return s, err == nil, err
		case cue.BoolKind, cue.IntKind, cue.FloatKind, cue.NumberKind:
			b, err := v.MarshalJSON()
			return string(b), err == nil, err
		case cue.NullKind:
			return "", false, nil
		default:
			return "", false, fmt.Errorf("config key %q: expected a scalar, got %s", name, v.Kind())
		}
	}
	return "", false, nil
}

func candidates(key string) []string {
	if alt := strings.ReplaceAll(key, "-", "_"); alt != key {
		return []string{key, alt}
	}
	return []string{key}
}
