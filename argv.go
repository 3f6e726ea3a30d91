// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Implements the argv splitter recovering a command's positional arguments
// and unknown options from the original command line.

package cligrove

import (
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"
)

// splitArgv separates the given command line arguments into operands and
// unknown options, consulting the specified flag set for the flags the tool
// itself owns. Known flags are consumed, together with their value argument
// where they take one. The first option not in the flag set flips the
// destination: from there on, every argument lands in unknown, trailing
// operand lookalikes included, so that a wrapped command gets to reprocess
// its complete option soup in original order. A “--” stops flag detection
// altogether; it is dropped while still collecting operands, but kept once
// the split has flipped to unknown.
func splitArgv(argv []string, flags *pflag.FlagSet) (operands []string, unknown []string) {
	operands = []string{}
	unknown = []string{}
	toOperands := true

	args := slices.Clone(argv)
	for len(args) > 0 {
		arg := args[0]
		args = args[1:]

		if arg == "--" {
			if toOperands {
				operands = append(operands, args...)
			} else {
				unknown = append(unknown, arg)
				unknown = append(unknown, args...)
			}
			break
		}

		if maybeFlag(arg) {
			if consumed, rest := chewFlag(arg, args, flags); consumed {
				args = rest
				continue
			}
			// An unknown option: this and everything after it belongs to the
			// dispatched command, not to us.
			toOperands = false
		}

		if toOperands {
			operands = append(operands, arg)
		} else {
			unknown = append(unknown, arg)
		}
	}
	return operands, unknown
}

// chewFlag tries to digest a single option argument as one of the tool's own
// flags, signalling whether it succeeded and returning the remaining
// arguments with a possibly consumed flag value or re-queued shorthand
// cluster remainder.
func chewFlag(arg string, args []string, flags *pflag.FlagSet) (consumed bool, rest []string) {
	if strings.HasPrefix(arg, "--") {
		name, _, hasValue := strings.Cut(arg[2:], "=")
		flag := flags.Lookup(name)
		if flag == nil {
			return false, args
		}
		if !hasValue && takesValue(flag) && len(args) > 0 {
			// The flag's value travels as the next argument.
			args = args[1:]
		}
		return true, args
	}
	flag := flags.ShorthandLookup(arg[1:2])
	if flag == nil {
		return false, args
	}
	if len(arg) > 2 {
		if takesValue(flag) {
			// The rest of the shorthand cluster is this flag's value.
			return true, args
		}
		// Re-queue the remainder of the cluster for another round.
		return true, append([]string{"-" + arg[2:]}, args...)
	}
	if takesValue(flag) && len(args) > 0 {
		args = args[1:]
	}
	return true, args
}

// takesValue returns true if the given flag needs a value argument, instead
// of getting by on its bare presence, as boolean flags do.
func takesValue(flag *pflag.Flag) bool {
	return flag.NoOptDefVal == ""
}

// maybeFlag returns true if the argument looks like an option; a lone “-” is
// an operand, as usual.
func maybeFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}
