// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/siemens/cligrove"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// dbFeature contributes a typical mix of current and deprecated commands.
type dbFeature struct{}

func (dbFeature) Init(ctx context.Context, reg *cligrove.Registry) error {
	return reg.Register(&cligrove.Command{
		Path:        []string{"db", "migrate"},
		Description: "Migrate the database schema",
		Run:         func(cligrove.ExecutionContext) error { return nil },
	}, &cligrove.Command{
		Path:        []string{"olddump"},
		Description: "Dump the database the old way",
		Deprecated:  true,
		Run:         func(cligrove.ExecutionContext) error { return nil },
	})
}

// captureStdout runs f while capturing everything written to stdout.
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, err := os.Pipe()
	Expect(err).ShouldNot(HaveOccurred())
	os.Stdout = w
	defer func() { os.Stdout = old }()
	f()
	w.Close()
	out, err := io.ReadAll(r)
	Expect(err).ShouldNot(HaveOccurred())
	return string(out)
}

// listing dispatches a "commands" invocation with the given arguments on a
// fresh tool and returns what it printed.
func listing(args ...string) string {
	return captureStdout(func() {
		cli := cligrove.New("prog", nil)
		cli.Add(dbFeature{})
		argv := append([]string{"commands"}, args...)
		Expect(cli.Execute(context.Background(), argv)).Should(Succeed())
	})
}

var _ = Describe("commands command", func() {

	It("Lists commands with their descriptions, sorted by usage", func() {
		out := listing()
		Expect(out).Should(ContainSubstring("COMMAND"))
		Expect(out).Should(ContainSubstring("DESCRIPTION"))
		Expect(out).Should(ContainSubstring("prog commands"))
		Expect(out).Should(ContainSubstring("prog db migrate"))
		Expect(out).Should(ContainSubstring("Migrate the database schema"))
		Expect(strings.Index(out, "prog commands")).Should(
			BeNumerically("<", strings.Index(out, "prog db migrate")))
	})

	It("Hides deprecated commands unless told --all", func() {
		Expect(listing()).ShouldNot(ContainSubstring("olddump"))
		Expect(listing("--all")).Should(ContainSubstring("prog olddump"))
	})

	It("Shows deprecation in wide output", func() {
		out := listing("-o", "wide", "--all")
		Expect(out).Should(ContainSubstring("DEPRECATED"))
		Expect(out).Should(ContainSubstring("true"))
	})

	It("Supports bare name output", func() {
		out := listing("-o", "name")
		Expect(out).ShouldNot(ContainSubstring("COMMAND"))
		Expect(out).ShouldNot(ContainSubstring("Migrate the database schema"))
		Expect(out).Should(ContainSubstring("prog db migrate"))
	})

	It("Omits headers on request", func() {
		out := listing("--no-headers")
		Expect(out).ShouldNot(ContainSubstring("COMMAND"))
		Expect(out).Should(ContainSubstring("prog db migrate"))
	})

	It("Serializes commands as JSON", func() {
		out := listing("-o", "json")
		Expect(out).Should(ContainSubstring(`"Usage"`))
		Expect(out).Should(ContainSubstring("prog db migrate"))
	})

	It("Serializes commands as YAML", func() {
		out := listing("-o", "yaml")
		Expect(out).Should(ContainSubstring("Usage: prog commands"))
		Expect(out).Should(ContainSubstring("Usage: prog db migrate"))
	})

	It("Rejects unknown listing flags", func() {
		cli := cligrove.New("prog", nil)
		cli.Add(dbFeature{})
		err := cli.Execute(context.Background(), []string{"commands", "--bogus"})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("unknown flag"))
	})

})
