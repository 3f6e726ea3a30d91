// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Declares the command contract between features and the command line tool
// assembled from them.

package cligrove

// Command describes a single command a feature contributes to the command
// namespace of the tool: where it lives, what it does, and what to run when
// the user finally summons it.
type Command struct {
	// Path is the sequence of space-separated command line words leading to
	// this command, such as {"db", "migrate"}. All but the last path segment
	// name command groups, which come into existence automatically and can be
	// shared with other features. Path segments must not be empty and must
	// not contain whitespace.
	Path []string
	// Description is a short one-line description, shown in help output.
	Description string
	// Deprecated hides the command from help output; it still dispatches as
	// usual for the benefit of muscle memory and shell history.
	Deprecated bool
	// Run executes the command. A nil return means success and a zero process
	// exit code; any error travels up and makes the process exit non-zero.
	Run func(c ExecutionContext) error
}

// ExecutionContext is handed to a command's Run and carries everything the
// command gets to know about its invocation.
type ExecutionContext struct {
	// Args are the command's own arguments: the positional arguments
	// remaining after the routing path segments have been skipped, followed
	// by all unknown options with their trailing arguments, in their original
	// command line order.
	Args []string
	// Info describes the invoked command itself.
	Info Info
}

// Info describes an invoked command.
type Info struct {
	// Usage is the full invocation of the command, that is, the tool name
	// followed by the command's path segments, space-joined.
	Usage string
	// Description is the command's one-line description.
	Description string
}
