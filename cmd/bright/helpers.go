package main

import (
	"math"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/charlie0129/bright/pkg/brightness"
)

// withLevelTerminator inserts "--" ahead of a negative level such as "-0.5"
// so that it reaches the root command as its value instead of being parsed
// as a shorthand flag. Subcommand invocations are left alone.
func withLevelTerminator(cmd *cobra.Command, args []string) []string {
	for i, arg := range args {
		if arg == "--" || isSubcommand(cmd, arg) {
			return args
		}
		if len(arg) < 2 || arg[0] != '-' || !brightness.HasLevelPrefix(arg) {
			continue
		}
		if i > 0 && takesValue(cmd, args[i-1]) {
			continue
		}

		ret := make([]string, 0, len(args)+1)
		ret = append(ret, args[:i]...)
		ret = append(ret, "--")
		return append(ret, args[i:]...)
	}

	return args
}

func isSubcommand(cmd *cobra.Command, arg string) bool {
	for _, c := range cmd.Commands() {
		if c.Name() == arg || c.HasAlias(arg) {
			return true
		}
	}
	return false
}

// takesValue reports whether arg is a flag of cmd that consumes the next
// argument.
func takesValue(cmd *cobra.Command, arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
		return false
	}

	var flag *pflag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		flag = lookupFlag(cmd, name)
	} else if len(arg) == 2 {
		flag = cmd.Flags().ShorthandLookup(arg[1:])
		if flag == nil {
			flag = cmd.PersistentFlags().ShorthandLookup(arg[1:])
		}
	}

	return flag != nil && flag.NoOptDefVal == ""
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.PersistentFlags().Lookup(name)
}

func exactlyOneArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return nil
}

// parseLevelArg turns the command-line value into a level. Without strict
// the value is parsed leniently and not range checked.
func parseLevelArg(arg string, percent, strict bool) (float32, error) {
	if !strict {
		v := brightness.ParseLevel(arg)
		if percent {
			v = brightness.FromPercent(v)
		}
		return v, nil
	}

	if !percent {
		return brightness.ParseLevelStrict(arg)
	}

	p, err := strconv.ParseFloat(strings.TrimSpace(arg), 32)
	if err != nil {
		return 0, pkgerrors.Wrapf(brightness.ErrInvalidLevel, "%q", arg)
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, pkgerrors.Wrapf(brightness.ErrLevelOutOfRange, "%v%% is not between 0%% and 100%%", p)
	}

	return float32(p / 100), nil
}
