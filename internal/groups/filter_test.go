package groups_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/netsettings/internal/groups"
	"github.com/smykla-skalski/netsettings/internal/yamltree"
)

var _ = Describe("Filter", func() {
	filter := func(src string, active ...string) any {
		return groups.Filter(yamltree.MustParse(src), active, groups.DefaultFilterDepth).Interface()
	}

	It("keeps an active group fragment whole", func() {
		Expect(filter(`{group: {name: X}, a: 1}`, "X")).
			To(Equal(map[string]any{"group": map[string]any{"name": "X"}, "a": 1}))
	})

	It("empties an inactive group fragment", func() {
		Expect(filter(`{group: {name: X}, a: 1}`, "Y")).To(Equal(map[string]any{}))
	})

	It("accepts a scalar group name", func() {
		Expect(filter(`{group: X, a: 1}`, "X")).To(Equal(map[string]any{"group": "X", "a": 1}))
		Expect(filter(`{group: X, a: 1}`)).To(Equal(map[string]any{}))
	})

	It("drops filtered sequence elements and keeps order", func() {
		src := `
- {group: X, a: 1}
- {group: Y, b: 2}
- {group: X, c: 3}
- plain
`
		Expect(filter(src, "X")).To(Equal([]any{
			map[string]any{"group": "X", "a": 1},
			map[string]any{"group": "X", "c": 3},
			"plain",
		}))
	})

	It("keeps every key of a plain mapping", func() {
		src := `
extroute_static:
  vrfs:
    - {name: MGMT, group: BORDER}
    - {name: CUST}
  empty: []
`
		Expect(filter(src)).To(Equal(map[string]any{
			"extroute_static": map[string]any{
				"vrfs":  []any{map[string]any{"name": "CUST"}},
				"empty": []any{},
			},
		}))
	})

	It("drops falsy sequence elements even without groups", func() {
		Expect(filter(`[0, "", null, false, 1]`)).To(Equal([]any{1}))
	})

	It("returns scalars unchanged", func() {
		Expect(filter(`42`)).To(Equal(42))
	})

	It("returns the subtree unfiltered once the depth is exhausted", func() {
		v := yamltree.MustParse(`{a: {b: [{group: X}]}}`)

		Expect(groups.Filter(v, nil, 0).Interface()).To(Equal(v.Interface()))
		Expect(groups.Filter(v, nil, 3).Interface()).
			To(Equal(map[string]any{"a": map[string]any{"b": []any{map[string]any{"group": "X"}}}}))
		Expect(groups.Filter(v, nil, 4).Interface()).
			To(Equal(map[string]any{"a": map[string]any{"b": []any{}}}))
	})

	It("does not modify its input", func() {
		v := yamltree.MustParse(`[{group: X}, {a: 1}]`)
		before := v.Interface()

		groups.Filter(v, nil, groups.DefaultFilterDepth)
		Expect(v.Interface()).To(Equal(before))
	})
})

var _ = Describe("GroupName", func() {
	DescribeTable("reads discriminators",
		func(src, want string, ok bool) {
			name, found := groups.GroupName(yamltree.MustParse(src))
			Expect(found).To(Equal(ok))
			Expect(name).To(Equal(want))
		},
		Entry("scalar", `X`, "X", true),
		Entry("mapping", `{name: X}`, "X", true),
		Entry("mapping without name", `{regex: x}`, "", false),
		Entry("null", `null`, "", false),
		Entry("sequence", `[X]`, "", false),
	)
})
