// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package commands provides the built-in “commands” command feature, listing
// the commands registered with the tool in kubectl-like output fashion.
package commands

import (
	"context"
	"os"
	"strings"

	"github.com/siemens/cligrove"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/thediveo/go-plugger/v3"
	"github.com/thediveo/klo"
)

// Builtin custom-columns templates
const (
	// CommandListTemplate defines the custom columns when listing commands.
	CommandListTemplate = "COMMAND:{.Usage},DESCRIPTION:{.Description}"
	// CommandWideListTemplate is like CommandListTemplate, but additionally
	// tacks on a column flagging deprecated commands.
	CommandWideListTemplate = "COMMAND:{.Usage},DESCRIPTION:{.Description},DEPRECATED:{.Deprecated}"

	// NameListTemplate for handling "-o name" and only showing a custom
	// "name" column; this template should be used with no headers shown, as
	// kubectl and others do.
	NameListTemplate = "NAME:{.Usage}"
)

// CommandInfo describes a single registered command for listing purposes.
type CommandInfo struct {
	// Usage is the tool name followed by the command's path segments.
	Usage string
	// Description is the command's one-line description.
	Description string
	// Deprecated flags commands hidden from help output.
	Deprecated bool
}

// CommandsFeature contributes the “commands” command.
type CommandsFeature struct{}

var _ cligrove.Feature = (*CommandsFeature)(nil)

func init() {
	plugger.Group[cligrove.Feature]().Register(
		&CommandsFeature{}, plugger.WithPlugin("commands"))
}

// Init registers the “commands” command.
func (f *CommandsFeature) Init(ctx context.Context, reg *cligrove.Registry) error {
	return reg.Register(&cligrove.Command{
		Path:        []string{"commands"},
		Description: "List the tool's commands",
		Run: func(c cligrove.ExecutionContext) error {
			return list(reg, c.Args)
		},
	})
}

// list prints the commands registered in the tool's grove, honoring the
// listing's own CLI flags, which arrive in raw form as the command's
// arguments.
func list(reg *cligrove.Registry, args []string) error {
	fs := pflag.NewFlagSet("commands", pflag.ContinueOnError)
	outfmt := fs.StringP("output", "o", "",
		"Output format. One of: json|yaml|wide|custom-columns=...|custom-columns-file=...|jsonpath=...|jsonpath-file=...")
	noHeaders := fs.Bool("no-headers", false,
		"When using the default or custom-column output format, don't print headers (default print headers).")
	sortBy := fs.String("sort-by", "{.Usage}",
		"If non-empty, sort custom-columns using this field specification. The field specification is expressed as a JSONPath expression (e.g. '{.Usage}').")
	all := fs.Bool("all", false,
		"Also show deprecated commands.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// Walk the grove level by level, keeping the commands and skipping the
	// command groups; deprecated commands only appear on explicit request.
	infos := []*CommandInfo{}
	for depth := 0; ; depth++ {
		nodes := reg.Grove().AtDepth(depth)
		if len(nodes) == 0 {
			break
		}
		for _, node := range nodes {
			leaf, ok := node.(*cligrove.Leaf)
			if !ok {
				continue
			}
			cmd := leaf.Command()
			if cmd.Deprecated && !*all {
				continue
			}
			log.Debugf("found command %q at depth %d",
				strings.Join(leaf.Path(), " "), depth)
			infos = append(infos, &CommandInfo{
				Usage: strings.Join(
					append([]string{reg.Program()}, leaf.Path()...), " "),
				Description: cmd.Description,
				Deprecated:  cmd.Deprecated,
			})
		}
	}
	// Get the output CLI flag and prepare a suitable object printer...
	prn, err := getPrinter(*outfmt, *noHeaders)
	if err != nil {
		return err
	}
	// ...throwing in sorting for the column-oriented printers, if not
	// explicitly forbidden. The structured output formats stay out of it, as
	// the sorting printer feeds its chained printer raw reflection values
	// that only the custom-columns printer digests; they keep the original
	// registration order instead.
	if _, ok := prn.(*klo.CustomColumnsPrinter); ok && *sortBy != "" {
		var err error
		prn, err = klo.NewSortingPrinter(*sortBy, prn)
		if err != nil {
			return err
		}
	}
	return prn.Fprint(os.Stdout, infos)
}

// getPrinter returns a value printer configured according to the output
// format chosen by the user, and some more optional output configuration
// flags.
func getPrinter(outfmt string, noHeaders bool) (prn klo.ValuePrinter, err error) {
	if outfmt == "name" {
		// Support "-o name" output format which uses our builtin
		// custom-columns template to only show command usages, and hide the
		// column header.
		prn, err = klo.PrinterFromFlag("custom-columns="+NameListTemplate, nil)
		if err != nil {
			panic(err)
		}
		prn.(*klo.CustomColumnsPrinter).HideHeaders = true
		return
	}
	// For the other output format options, let the kubectl-like output
	// package handle the details and give us just the printer suitable for
	// dumping the command list onto our users.
	prn, err = klo.PrinterFromFlag(outfmt, &klo.Specs{
		DefaultColumnSpec: CommandListTemplate,
		WideColumnSpec:    CommandWideListTemplate,
	})
	if err != nil {
		return
	}
	if ccprn, ok := prn.(*klo.CustomColumnsPrinter); ok {
		ccprn.Padding = 3
		ccprn.HideHeaders = noHeaders
	}
	return
}
