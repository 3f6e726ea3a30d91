// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Declares the feature (plugin) contract together with the exposed plugin
// symbol types and the handle forms accepted during feature resolution.

package cligrove

import "context"

// Feature is the contract a plugin has to satisfy in order to contribute
// commands to the tool. Compiled-in features register themselves into the
// plugger Feature group from their package init; further features can be
// handed to a CLI via Add, either directly or wrapped in Resolvers and
// Bundles.
type Feature interface {
	// Init registers the feature's commands with the given registry. Init is
	// called sequentially per feature, in the order the features were added,
	// but is free to block on the feature's own asynchronous affairs before
	// returning.
	Init(ctx context.Context, reg *Registry) error
}

// Bundle wraps a feature as the “default export” of a plugin module. Some
// resolution mechanisms can only hand over such module wrappings instead of
// the feature itself; Unwrap gets the feature back out.
type Bundle struct {
	// Default is the feature wrapped by this bundle.
	Default Feature
}

// Resolver defers producing a feature handle until the tool actually
// assembles: it gets called during the resolution phase, concurrently with
// all the other resolvers. The returned value may again be a Feature or a
// Bundle. Plain functions of this signature are accepted as resolvers, too.
type Resolver func(ctx context.Context) (any, error)

// SemVer defines an exposed plugin symbol type for returning (overriding) the
// assembled tool's semantic version. The first plugin will win.
type SemVer func() string

// Unwrap normalizes a resolved plugin value by removing a possible Bundle
// wrapping: bundles yield their default feature, everything else is returned
// unchanged. Unwrap is idempotent, as bundles cannot nest.
func Unwrap(v any) any {
	switch b := v.(type) {
	case Bundle:
		return b.Default
	case *Bundle:
		if b == nil {
			return nil
		}
		return b.Default
	}
	return v
}
