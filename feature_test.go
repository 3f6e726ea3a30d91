// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cligrove

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("feature handles", func() {

	It("Unwraps bundled features", func() {
		feature := &testFeature{}
		Expect(Unwrap(feature)).Should(BeIdenticalTo(feature))
		Expect(Unwrap(Bundle{Default: feature})).Should(BeIdenticalTo(feature))
		Expect(Unwrap(&Bundle{Default: feature})).Should(BeIdenticalTo(feature))
	})

	It("Unwraps idempotently", func() {
		feature := &testFeature{}
		wrapped := Unwrap(Bundle{Default: feature})
		Expect(Unwrap(wrapped)).Should(BeIdenticalTo(wrapped))
	})

	It("Leaves non-bundles alone", func() {
		Expect(Unwrap(42)).Should(Equal(42))
		Expect(Unwrap(nil)).Should(BeNil())
		Expect(Unwrap((*Bundle)(nil))).Should(BeNil())
	})

})
