// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package version

import (
	"context"
	"io"
	"os"

	"github.com/siemens/cligrove"
	"github.com/thediveo/go-plugger/v3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func init() {
	plugger.Group[cligrove.SemVer]().Register(
		func() string { return "6.6.6" }, plugger.WithPlugin("semvertest"))
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

var _ = Describe("version command", func() {

	It("Reports the tool version and its features", func() {
		out := captureStdout(func() {
			cli := cligrove.New("prog", &cligrove.Options{Version: "1.2.3"})
			Expect(cli.Execute(context.Background(),
				[]string{"version"})).Should(Succeed())
		})
		Expect(out).Should(Equal("prog version 1.2.3 (features: version)\n"))
	})

	It("Lets a SemVer plugin override the reported version", func() {
		out := captureStdout(func() {
			cli := cligrove.New("prog", nil)
			Expect(cli.Execute(context.Background(),
				[]string{"version"})).Should(Succeed())
		})
		Expect(out).Should(Equal("prog version 6.6.6 (features: version)\n"))
	})

})
