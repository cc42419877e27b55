package groups_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/netsettings/internal/groups"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

func groupSettings(defs ...settings.Group) *settings.GroupSettings {
	cfg := &settings.GroupSettings{}
	for _, g := range defs {
		cfg.Groups = append(cfg.Groups, settings.GroupEntry{Group: g})
	}

	return cfg
}

var _ = Describe("Match", func() {
	It("returns matching names in order and skips malformed entries", func() {
		cfg := groupSettings(
			settings.Group{Name: "access", Regex: "sw"},
			settings.Group{Regex: ".*"},
			settings.Group{Name: "core", Regex: "core"},
		)

		res := groups.Match(cfg, "sw1")
		Expect(res.Names).To(Equal([]string{"access"}))
		Expect(res.Skipped).To(ConsistOf(groups.Skipped{Index: 1, Reason: groups.ReasonMissingName}))
	})

	It("matches the documented core and access groups", func() {
		cfg := groupSettings(
			settings.Group{Name: "core", Regex: "^core"},
			settings.Group{Name: "access", Regex: "^sw"},
		)

		res := groups.Match(cfg, "sw1")
		Expect(res.Names).To(Equal([]string{"access"}))
		Expect(res.Skipped).To(BeEmpty())
		Expect(groups.Match(cfg, "core1").Names).To(Equal([]string{"core"}))
	})

	It("anchors the regex at the start of the hostname only", func() {
		cfg := groupSettings(
			settings.Group{Name: "prefix", Regex: "sw"},
			settings.Group{Name: "inner", Regex: "1"},
			settings.Group{Name: "alt", Regex: "core|sw"},
		)

		Expect(groups.Match(cfg, "sw1.example.com").Names).To(Equal([]string{"prefix", "alt"}))
	})

	It("returns every well-formed name for an empty hostname", func() {
		cfg := groupSettings(
			settings.Group{Name: "a", Regex: "x"},
			settings.Group{Name: "b"},
			settings.Group{Name: "c", Regex: "y"},
		)

		res := groups.Match(cfg, "")
		Expect(res.Names).To(Equal([]string{"a", "c"}))
		Expect(res.Skipped).To(ConsistOf(groups.Skipped{Index: 1, Name: "b", Reason: groups.ReasonMissingRegex}))
	})

	It("skips invalid regexes with a reason", func() {
		cfg := groupSettings(
			settings.Group{Name: "broken", Regex: "sw("},
			settings.Group{Name: "ok", Regex: "sw"},
		)

		res := groups.Match(cfg, "sw1")
		Expect(res.Names).To(Equal([]string{"ok"}))
		Expect(res.Skipped).To(HaveLen(1))
		Expect(res.Skipped[0].Name).To(Equal("broken"))
		Expect(res.Skipped[0].Reason).To(HavePrefix(groups.ReasonInvalidRegex))
	})

	It("handles empty configuration", func() {
		Expect(groups.Match(nil, "sw1").Names).To(BeEmpty())
		Expect(groups.Match(&settings.GroupSettings{}, "sw1").Names).To(BeEmpty())
	})
})
