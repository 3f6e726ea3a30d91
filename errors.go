// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Defines the error types reported while assembling the command namespace and
// while dispatching command lines.

package cligrove

import (
	"fmt"
	"strings"
)

// ConflictError reports a command registration clashing with the already
// registered command namespace: either another command already owns the same
// path, or one of the leading path segments already names a command, so there
// is no room for nesting anything below it. Registration conflicts abort the
// assembly of the command line tool.
type ConflictError struct {
	// Path of the command that could not be registered.
	Path []string
	// Path of the already registered node standing in the way.
	Existing []string
}

var _ error = (*ConflictError)(nil)

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting command path %q: already registered %q",
		strings.Join(e.Path, " "), strings.Join(e.Existing, " "))
}

// UnsupportedFeatureError reports a plugin value that does not satisfy the
// Feature contract and thus cannot contribute any commands. The zoo of
// resolution mechanisms out there hands us all kinds of values, so we name the
// offending Go type to give the plugin author a fighting chance.
type UnsupportedFeatureError struct {
	// Plugin is the offending value, kept around for its type.
	Plugin any
}

var _ error = (*UnsupportedFeatureError)(nil)

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("unsupported feature of type %T", e.Plugin)
}

// InvalidCommandError reports a command line that could not be routed to any
// registered command: either the arguments name no command at all, or they
// stop short at a command group. The tool's help has already been shown at
// this point; the error then makes the process exit non-zero.
type InvalidCommandError struct {
	// Args are the offending command line arguments, path segments included.
	Args []string
}

var _ error = (*InvalidCommandError)(nil)

func (e *InvalidCommandError) Error() string {
	if len(e.Args) == 0 {
		return "missing command"
	}
	return fmt.Sprintf("unknown or incomplete command %q", strings.Join(e.Args, " "))
}

// PanicError wraps a non-error value recovered from a panicking resolver,
// feature, or command, so it can travel the usual error path up to the user.
// Error values recovered from panics are passed on as they are instead.
type PanicError struct {
	// Value is whatever the panicking code threw at us.
	Value any
}

var _ error = (*PanicError)(nil)

func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered from panic: %v", e.Value)
}
