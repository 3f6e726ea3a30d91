// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Implements assembling the command line tool from its features: resolving
// the feature handles, registering their commands, building the cobra command
// tree from the finished grove, and dispatching the command line.

package cligrove

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
	"golang.org/x/sync/errgroup"
)

// Options gives some degree of control over the command line tool under
// assembly. A nil Options is perfectly fine and means: all defaults.
type Options struct {
	// Version reported by the tool; when left zero, it defaults to the
	// version of a registered SemVer plugin (first one wins), falling back to
	// this module's SemVersion.
	Version string
	// Short one-line description of the tool, shown atop its help.
	Short string
	// Long description of the tool, shown in its detailed help.
	Long string
	// Out optionally redirects help and version output; defaults to stdout.
	Out io.Writer
	// Err optionally redirects error output; defaults to stderr.
	Err io.Writer
}

// CLI assembles a command line tool from features and then dispatches a
// command line to the command the user asked for. Features compiled into the
// binary register themselves into the plugger Feature group and are picked up
// automatically; more dynamic features can be handed in via Add. A CLI value
// drives a single Execute run.
type CLI struct {
	program string
	opts    Options
	handles []any
	argv    []string
	debug   bool
	reg     *Registry
	spent   bool
}

// New returns a new CLI for assembling the command line tool with the given
// (program) name, seeded with all features registered in the plugger Feature
// group.
func New(program string, opts *Options) *CLI {
	c := &CLI{program: program}
	if opts != nil {
		c.opts = *opts
	}
	if c.opts.Version == "" {
		c.opts.Version = SemVersion
		for _, semver := range plugger.Group[SemVer]().Symbols() {
			c.opts.Version = semver()
			break
		}
	}
	for _, feature := range plugger.Group[Feature]().Symbols() {
		c.handles = append(c.handles, feature)
	}
	return c
}

// Add hands further feature handles to the CLI, in addition to the features
// from the plugger Feature group. A handle is either a Feature, a Bundle
// wrapping one, a Resolver (or plain function of the same signature) that
// will produce one of the former during the resolution phase, or, if our luck
// runs out, some unsupported value that will be duly rejected. Add must be
// called before Execute.
func (c *CLI) Add(handles ...any) {
	c.handles = append(c.handles, handles...)
}

// Execute assembles the tool and dispatches the given command line arguments
// (without the leading program name) to the selected command. The returned
// error is whatever the command returned, or an error describing why the
// command line could not be served; either way it has already been reported
// to the user, so callers just decide the process exit code on it.
func (c *CLI) Execute(ctx context.Context, argv []string) error {
	if c.spent {
		return fmt.Errorf("%s: Execute must be called only once", c.program)
	}
	c.spent = true
	if argv == nil {
		// Otherwise cobra would fall back to the process arguments.
		argv = []string{}
	}
	c.argv = argv
	// Honor a debug flag before anything else happens, so that even the
	// resolution and registration phases show up in the logs. At this point
	// no parser exists yet, so the scan munches plain tokens and the
	// "--debug=X" form only; command lines routed to a leaf never get
	// flag-parsed later, making this scan their single chance.
	for _, arg := range argv {
		on := arg == "--debug" || arg == "-d"
		if !on {
			if v, ok := strings.CutPrefix(arg, "--debug="); ok {
				on, _ = strconv.ParseBool(v)
			}
		}
		if on {
			log.SetLevel(log.DebugLevel)
			break
		}
	}
	log.Debugf("assembling %q with %d feature handles", c.program, len(c.handles))
	if err := c.resolveAndRegister(ctx); err != nil {
		log.Errorf("cannot assemble %q: %s", c.program, err.Error())
		return err
	}
	root := c.buildParser()
	if c.opts.Out != nil {
		root.SetOut(c.opts.Out)
	}
	if c.opts.Err != nil {
		root.SetErr(c.opts.Err)
	}
	root.SetArgs(argv)
	return root.ExecuteContext(ctx)
}

// resolveAndRegister first resolves all deferred feature handles,
// concurrently, and then registers the features' commands, sequentially and
// in the order the features were originally added. Any resolution or
// registration failure aborts the tool assembly: better no tool than a tool
// missing arbitrary parts of its command namespace.
func (c *CLI) resolveAndRegister(ctx context.Context) error {
	resolved := make([]any, len(c.handles))
	g, gctx := errgroup.WithContext(ctx)
	for idx, handle := range c.handles {
		var resolve Resolver
		switch handle := handle.(type) {
		case Resolver:
			resolve = handle
		case func(context.Context) (any, error):
			resolve = handle
		default:
			resolved[idx] = handle
			continue
		}
		idx := idx
		g.Go(func() (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					if e, ok := recovered.(error); ok {
						err = e
						return
					}
					err = &PanicError{Value: recovered}
				}
			}()
			v, err := resolve(gctx)
			if err != nil {
				return err
			}
			resolved[idx] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Debugf("all %d feature handles resolved", len(resolved))
	reg := newRegistry(c.program, c.opts.Version)
	for _, plugin := range resolved {
		if err := reg.Init(ctx, Unwrap(plugin)); err != nil {
			return err
		}
	}
	reg.Seal()
	c.reg = reg
	log.Debugf("command grove of %q complete", c.program)
	return nil
}

// workItem is a single item of parser construction work: a grove node still
// waiting to become a cobra command below its already built parent.
type workItem struct {
	node   Node
	parent *cobra.Command
}

// buildParser turns the finished command grove into a cobra command tree,
// breadth-first: branches become flag-parsing command groups falling back to
// help plus an invalid-command error, leaves become non-flag-parsing commands
// dispatching to the registered command.
func (c *CLI) buildParser() *cobra.Command {
	root := &cobra.Command{
		Use:     c.program,
		Short:   c.opts.Short,
		Long:    c.opts.Long,
		Version: c.opts.Version,
		// See: https://github.com/spf13/cobra/issues/340
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.ArbitraryArgs,
		RunE:          c.fallback(nil),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// When asked for, enable debug logging; the early argv scan
			// normally has beaten us to it, but pflag can still dig the flag
			// out of forms the scan does not care for, such as a shorthand
			// cluster.
			if c.debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false,
		"Enable debug output")

	queue := []workItem{}
	for _, node := range c.reg.Grove().AtDepth(0) {
		queue = append(queue, workItem{node: node, parent: root})
	}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		switch node := item.node.(type) {
		case *Branch:
			group := &cobra.Command{
				Use:   node.Name(),
				Short: node.Name(),
				Args:  cobra.ArbitraryArgs,
				RunE:  c.fallback(node.Path()),
			}
			item.parent.AddCommand(group)
			for _, child := range node.Children() {
				queue = append(queue, workItem{node: child, parent: group})
			}
		case *Leaf:
			cmd := node.Command()
			leaf := &cobra.Command{
				Use:    node.Name(),
				Short:  cmd.Description,
				Hidden: cmd.Deprecated,
				Args:   cobra.ArbitraryArgs,
				// The dispatched commands own their argument soup: no flag
				// parsing here, and no intercepted "--help" either.
				DisableFlagParsing: true,
				RunE:               c.dispatch(node),
			}
			item.parent.AddCommand(leaf)
		}
	}
	log.Debugf("command tree of %q built", c.program)
	return root
}

// fallback returns the handler taking care of command lines that do not
// reach any registered command: it shows the tool's help and reports an
// InvalidCommandError, except for a bare tool invocation without any
// arguments, which is fine and just shows the help.
func (c *CLI) fallback(path []string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// The user obviously got lost, so show the way first.
		_ = cmd.Root().Help()
		if len(path) == 0 && len(args) == 0 {
			return nil
		}
		offending := make([]string, 0, len(path)+len(args))
		offending = append(offending, path...)
		offending = append(offending, args...)
		return &InvalidCommandError{Args: offending}
	}
}

// dispatch returns the cobra handler running the command registered at the
// given leaf. The handler ignores cobra's own idea of the remaining arguments
// and instead recovers the command's arguments from the original command
// line: it splits the command line into operands and unknown options against
// the tool's own flags, then skips the leading operands matching the leaf's
// path, stopping at the first mismatch. What remains, followed by the unknown
// options, is the command's business.
func (c *CLI) dispatch(leaf *Leaf) func(*cobra.Command, []string) error {
	path := leaf.Path()
	cmd := leaf.Command()
	return func(cobracmd *cobra.Command, _ []string) (err error) {
		operands, unknown := splitArgv(c.argv, cobracmd.Root().PersistentFlags())
		rest := operands
		for _, segment := range path {
			if len(rest) == 0 || rest[0] != segment {
				break
			}
			rest = rest[1:]
		}
		args := make([]string, 0, len(rest)+len(unknown))
		args = append(args, rest...)
		args = append(args, unknown...)
		usage := strings.Join(append([]string{c.program}, path...), " ")
		log.Debugf("dispatching %q, args %v", usage, args)
		defer func() {
			if recovered := recover(); recovered != nil {
				if e, ok := recovered.(error); ok {
					err = e
					return
				}
				err = &PanicError{Value: recovered}
			}
		}()
		return cmd.Run(ExecutionContext{
			Args: args,
			Info: Info{
				Usage:       usage,
				Description: cmd.Description,
			},
		})
	}
}
