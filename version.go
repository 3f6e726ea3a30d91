// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cligrove

// SemVersion is the semantic version string of the cligrove module. Features
// can override the version reported by an assembled tool by registering a
// SemVer plugin symbol, see the SemVer type.
const SemVersion = "0.9.1"
