// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package version provides the built-in “version” command feature. The
// reported semantic version is the one of the assembled tool, so there is no
// separate version number for the version command itself. In addition, the
// version command lists the included features.
package version

import (
	"context"
	"fmt"
	"strings"

	"github.com/siemens/cligrove"
	"github.com/thediveo/go-plugger/v3"
)

// VersionFeature contributes the “version” command.
type VersionFeature struct{}

var _ cligrove.Feature = (*VersionFeature)(nil)

func init() {
	plugger.Group[cligrove.Feature]().Register(
		&VersionFeature{}, plugger.WithPlugin("version"))
}

// Init registers the “version” command.
func (f *VersionFeature) Init(ctx context.Context, reg *cligrove.Registry) error {
	return reg.Register(&cligrove.Command{
		Path:        []string{"version"},
		Description: "Show version (with included features).",
		Run: func(c cligrove.ExecutionContext) error {
			fmt.Printf("%s version %s (features: %s)\n",
				reg.Program(),
				reg.Version(),
				strings.Join(plugger.Group[cligrove.Feature]().Plugins(), ", "))
			return nil
		},
	})
}
