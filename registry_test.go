// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cligrove

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// testFeature registers a fixed set of commands, or fails right away when
// told so.
type testFeature struct {
	cmds []*Command
	err  error
}

var _ Feature = (*testFeature)(nil)

func (f *testFeature) Init(ctx context.Context, reg *Registry) error {
	if f.err != nil {
		return f.err
	}
	return reg.Register(f.cmds...)
}

// panicFeature panics during its initialization, as rogue plugins do.
type panicFeature struct {
	with any
}

func (f *panicFeature) Init(ctx context.Context, reg *Registry) error {
	panic(f.with)
}

var _ = Describe("command registry", func() {

	It("Rejects plugins lacking the feature contract", func() {
		reg := newRegistry("prog", "1.0.0")
		err := reg.Init(context.Background(), 42)
		var unsupported *UnsupportedFeatureError
		Expect(errors.As(err, &unsupported)).Should(BeTrue())
		Expect(unsupported.Error()).Should(ContainSubstring("int"))
	})

	It("Initializes features and registers their commands", func() {
		reg := newRegistry("prog", "1.0.0")
		feature := &testFeature{cmds: []*Command{groveCmd("db", "migrate")}}
		Expect(reg.Init(context.Background(), feature)).Should(Succeed())
		Expect(names(reg.Grove().AtDepth(1))).Should(Equal([]string{"migrate"}))
	})

	It("Passes a failing feature initialization on", func() {
		reg := newRegistry("prog", "1.0.0")
		detonated := errors.New("feature detonated")
		err := reg.Init(context.Background(), &testFeature{err: detonated})
		Expect(err).Should(MatchError(detonated))
	})

	It("Recovers panicking features", func() {
		reg := newRegistry("prog", "1.0.0")
		err := reg.Init(context.Background(), &panicFeature{with: "kaboom"})
		var panicked *PanicError
		Expect(errors.As(err, &panicked)).Should(BeTrue())
		Expect(panicked.Value).Should(Equal("kaboom"))

		detonated := errors.New("feature detonated")
		err = reg.Init(context.Background(), &panicFeature{with: detonated})
		Expect(err).Should(MatchError(detonated))
	})

	It("Validates command contracts", func() {
		reg := newRegistry("prog", "1.0.0")
		Expect(reg.Register(nil)).Should(HaveOccurred())
		Expect(reg.Register(&Command{Path: []string{"db"}})).Should(HaveOccurred())
		Expect(reg.Register(&Command{
			Run: func(ExecutionContext) error { return nil },
		})).Should(HaveOccurred())
		Expect(reg.Register(groveCmd("db", "mig rate"))).Should(HaveOccurred())
		Expect(reg.Register(groveCmd("db", ""))).Should(HaveOccurred())
	})

	It("Reports conflicting registrations", func() {
		reg := newRegistry("prog", "1.0.0")
		Expect(reg.Register(groveCmd("db", "migrate"))).Should(Succeed())
		err := reg.Register(groveCmd("db", "migrate"))
		var conflict *ConflictError
		Expect(errors.As(err, &conflict)).Should(BeTrue())
		Expect(conflict.Error()).Should(
			ContainSubstring(`conflicting command path "db migrate"`))
	})

	It("Refuses registrations after sealing", func() {
		reg := newRegistry("prog", "1.0.0")
		Expect(reg.Register(groveCmd("db"))).Should(Succeed())
		reg.Seal()
		Expect(reg.Register(groveCmd("fs"))).Should(HaveOccurred())
		// ...but keeps answering read access, as built-in features need it
		// while dispatching.
		Expect(names(reg.Grove().AtDepth(0))).Should(Equal([]string{"db"}))
		Expect(reg.Program()).Should(Equal("prog"))
		Expect(reg.Version()).Should(Equal("1.0.0"))
	})

})
