// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Implements the command registry: the write side handed to features while
// they register their commands, plus the few read-only bits features need
// later at dispatch time.

package cligrove

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
)

// Registry is handed to features during the registration phase so they can
// register their commands into the tool's command grove. After the
// registration phase the registry gets sealed and refuses any further
// registrations; the read accessors keep working, as built-in features use
// them while dispatching.
type Registry struct {
	program string
	version string
	grove   *Grove
	sealed  bool
}

// newRegistry returns a registry for the given tool name and version,
// starting out with an empty command grove.
func newRegistry(program, version string) *Registry {
	return &Registry{
		program: program,
		version: version,
		grove:   &Grove{},
	}
}

// Init drives a single resolved plugin value through the registration
// protocol: values satisfying the Feature contract get their Init called with
// this registry, everything else is rejected with an UnsupportedFeatureError
// naming the offending type. Wrapped plugin values need to be normalized
// first, see Unwrap. A panicking feature is recovered into an error, so one
// rogue plugin cannot take the whole tool assembly down without a trace.
func (r *Registry) Init(ctx context.Context, plugin any) (err error) {
	feature, ok := plugin.(Feature)
	if !ok {
		return &UnsupportedFeatureError{Plugin: plugin}
	}
	log.Debugf("initializing feature %T", feature)
	defer func() {
		if recovered := recover(); recovered != nil {
			if e, ok := recovered.(error); ok {
				err = e
				return
			}
			err = &PanicError{Value: recovered}
		}
	}()
	return feature.Init(ctx, r)
}

// Register registers the given commands, sprouting intermediate command
// groups as necessary. Registration is all-or-nothing per command: a command
// conflicting with the already registered namespace reports a ConflictError
// and leaves the grove untouched by this command.
func (r *Registry) Register(cmds ...*Command) error {
	if r.sealed {
		return fmt.Errorf("%s: command registration has already completed", r.program)
	}
	for _, cmd := range cmds {
		if err := validate(cmd); err != nil {
			return err
		}
		if err := r.grove.add(cmd); err != nil {
			return err
		}
		log.Debugf("registered command %q", strings.Join(cmd.Path, " "))
	}
	return nil
}

// Seal ends the registration phase: from now on the registry refuses any
// further Register calls and the grove stays as it is.
func (r *Registry) Seal() {
	r.sealed = true
}

// Program returns the name of the tool under assembly.
func (r *Registry) Program() string { return r.program }

// Version returns the version of the tool under assembly.
func (r *Registry) Version() string { return r.version }

// Grove returns the command grove; it must be treated as read-only.
func (r *Registry) Grove() *Grove { return r.grove }

// validate checks a command for the bare minimum of sanity before it is let
// anywhere near the grove.
func validate(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("cannot register a nil command")
	}
	if cmd.Run == nil {
		return fmt.Errorf("cannot register command %q without a Run",
			strings.Join(cmd.Path, " "))
	}
	if len(cmd.Path) == 0 {
		return fmt.Errorf("cannot register a command with an empty path")
	}
	for _, segment := range cmd.Path {
		if segment == "" || strings.IndexFunc(segment, unicode.IsSpace) >= 0 {
			return fmt.Errorf("invalid command path segment %q in path %q",
				segment, strings.Join(cmd.Path, " "))
		}
	}
	return nil
}
