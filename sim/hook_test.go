package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HookableBase", func() {
	var (
		h   *HookableBase
		pos = &HookPos{Name: "Test"}
	)

	BeforeEach(func() {
		h = NewHookableBase()
	})

	It("should invoke hooks in registration order", func() {
		var order []int
		h.AcceptHook(HookFunc(func(HookCtx) { order = append(order, 1) }))
		h.AcceptHook(HookFunc(func(HookCtx) { order = append(order, 2) }))

		h.InvokeHook(HookCtx{Domain: h, Pos: pos})

		Expect(order).To(Equal([]int{1, 2}))
		Expect(h.NumHooks()).To(Equal(2))
	})

	It("should pass the context through", func() {
		var got HookCtx
		h.AcceptHook(HookFunc(func(ctx HookCtx) { got = ctx }))

		h.InvokeHook(HookCtx{Domain: h, Pos: pos, Item: 3, Detail: "x"})

		Expect(got.Pos).To(BeIdenticalTo(pos))
		Expect(got.Item).To(Equal(3))
		Expect(got.Detail).To(Equal("x"))
	})
})

var _ = Describe("sequentialIDGenerator", func() {
	It("should count up from one", func() {
		g := &sequentialIDGenerator{}

		Expect(g.Generate()).To(Equal("1"))
		Expect(g.Generate()).To(Equal("2"))
	})

	It("should produce distinct run ids", func() {
		Expect(NewRunID()).NotTo(Equal(NewRunID()))
	})
})

var _ = Describe("HookableBase listing", func() {
	It("should list hooks in registration order", func() {
		h := NewHookableBase()
		a := HookFunc(func(HookCtx) {})
		h.AcceptHook(a)

		Expect(h.Hooks()).To(HaveLen(1))
	})
})
