// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// This is the main entry of a minimal cligrove host tool. There isn't
// actually much here to do except for assembling the tool from its features
// and then dispatching the CLI args to hopefully the correct command.

package main

import (
	"context"
	"os"

	"github.com/siemens/cligrove"

	// Pull in the built-in feature packages: they will register themselves as
	// needed, but we need the packages to get included, as otherwise there
	// are no references in the code which could pull them in anyway.
	_ "github.com/siemens/cligrove/feature/commands"
	_ "github.com/siemens/cligrove/feature/version"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func main() {
	// Establish logger output format in case we're hitting errors, et cetera.
	f := new(prefixed.TextFormatter)
	f.DisableColors = true
	f.ForceFormatting = true
	f.FullTimestamp = true
	f.TimestampFormat = "15:04:05"
	log.SetFormatter(f)

	cli := cligrove.New("cligrove", &cligrove.Options{
		Short: "Assemble pluggable command line tools from features",
		Long: `cligrove assembles the command line interface of a pluggable tool from the
commands its features contribute, and dispatches command lines to them.`,
	})
	// This is cobra boilerplate documentation, except for the missing call to
	// fmt.Println(err) which in the original boilerplate is just plain wrong:
	// it renders the error message twice, see also:
	// https://github.com/spf13/cobra/issues/304
	if err := cli.Execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
