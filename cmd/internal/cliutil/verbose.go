// Package cliutil holds the bits cmd/sccenum and cmd/attractors share:
// the -v[=LEVEL]/--verbose[=LEVEL] flag, which needs a value optional in
// a way urfave/cli's built-in flag types don't support directly.
package cliutil

import "github.com/urfave/cli/v2"

// VerboseValue backs the --verbose/-v flag as a cli.Generic. Its
// IsBoolFlag method is the standard library flag package's documented
// extension point: a flag.Value that reports IsBoolFlag() == true may be
// given bare (`-v`), in which case the parser calls Set("true") instead
// of consuming the next argument as the value — exactly what `-v[=LEVEL]`
// needs, since otherwise `-v` would swallow the positional `file` argument.
type VerboseValue struct {
	set   bool
	level string
}

// String implements cli.Generic / flag.Value.
func (v *VerboseValue) String() string {
	if v == nil || !v.set {
		return ""
	}
	return v.level
}

// Set implements cli.Generic / flag.Value.
func (v *VerboseValue) Set(s string) error {
	v.set = true
	if s == "true" {
		// bare `-v` / `--verbose`, no explicit level
		v.level = ""
	} else {
		v.level = s
	}
	return nil
}

// IsBoolFlag marks this Generic as bool-shaped to the standard flag
// parser; see the type doc comment.
func (v *VerboseValue) IsBoolFlag() bool { return true }

// Present reports whether the flag appeared on the command line at all.
func (v *VerboseValue) Present() bool { return v != nil && v.set }

// Level returns the raw level string the user supplied ("" for a bare
// flag, meaning "info" once passed through logutil.ParseLevel).
func (v *VerboseValue) Level() string { return v.level }

// VerboseFlag builds the shared --verbose/-v flag declaration. Callers
// read the resulting value back out of dest once flags are parsed, i.e.
// inside the command's Action.
func VerboseFlag(dest *VerboseValue) *cli.GenericFlag {
	return &cli.GenericFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log verbosity: trace, debug, or info (bare flag means info)",
		Value:   dest,
	}
}
