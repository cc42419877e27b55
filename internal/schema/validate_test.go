package schema_test

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/netsettings/internal/merge"
	"github.com/smykla-skalski/netsettings/internal/schema"
	"github.com/smykla-skalski/netsettings/internal/yamltree"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

var _ = Describe("Validate", func() {
	It("accepts a valid device document", func() {
		doc := yamltree.MustParse(`
ntp_servers:
  - host: 10.0.0.1
interfaces:
  - name: Ethernet1
    ifclass: downlink
    untagged_vlan: 100
    tagged_vlan_list: [200, 300]
    enabled: false
vxlans:
  student1:
    vni: 100100
    vlan_id: 100
    vlan_name: STUDENT1
extroute_static:
  vrfs:
    - name: MGMT
      ipv4:
        - destination: 0.0.0.0/0
          nexthop: 10.0.0.254
unknown_key: kept
`)

		violations, err := schema.Validate(schema.KindDevice, doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(BeEmpty())
	})

	It("accepts an empty document", func() {
		violations, err := schema.Validate(schema.KindDevice, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(BeEmpty())
	})

	It("locates type errors", func() {
		violations, err := schema.Validate(schema.KindDevice, yamltree.MustParse(`
interfaces:
  - name: 123
    ifclass: downlink
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(1))
		Expect(violations[0].Loc).To(Equal([]string{"interfaces", "0", "name"}))
		Expect(violations[0].Path()).To(Equal("interfaces->0->name"))
		Expect(violations[0].Message).To(ContainSubstring("expected string"))
	})

	DescribeTable("rejects out of range and malformed values",
		func(src, path string) {
			violations, err := schema.Validate(schema.KindDevice, yamltree.MustParse(src))
			Expect(err).NotTo(HaveOccurred())
			Expect(violations).NotTo(BeEmpty())
			Expect(violations[0].Path()).To(Equal(path))
		},
		Entry("vlan too high", "dot1x_fail_vlan: 5000\n", "dot1x_fail_vlan"),
		Entry("bad ifclass", "interfaces: [{name: e1, ifclass: uplink}]\n", "interfaces->0->ifclass"),
		Entry("missing ifclass", "interfaces: [{name: e1}]\n", "interfaces->0->ifclass"),
		Entry("bad nexthop", "extroute_static: {vrfs: [{name: A, ipv4: [{destination: 0.0.0.0/0, nexthop: gw}]}]}\n",
			"extroute_static->vrfs->0->ipv4->0->nexthop"),
		Entry("null optional", "underlay: null\n", "underlay"),
		Entry("fractional vlan", "dot1x_fail_vlan: 1.5\n", "dot1x_fail_vlan"),
		Entry("mtu too small", "interfaces: [{name: e1, ifclass: custom, mtu: 10}]\n", "interfaces->0->mtu"),
	)

	It("validates the groups shape", func() {
		violations, err := schema.Validate(schema.KindGroups, yamltree.MustParse(`
groups:
  - group: {name: access, regex: sw}
  - group: {name: core, group_priority: -1}
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(1))
		Expect(violations[0].Path()).To(Equal("groups->1->group->group_priority"))
	})
})

var _ = Describe("Check", func() {
	It("reports the value and its origin", func() {
		merged, origins := merge.Seed(yamltree.MustParse("mtu: 1500\n"), settings.LayerDefault)
		merged, origins = merge.Merge(merged, origins, yamltree.MustParse(`
interfaces:
  - name: 123
    ifclass: downlink
`), settings.LayerDevice)

		err := schema.Check(merged, origins, schema.KindDevice)
		Expect(err).To(MatchError(schema.ErrSettingsSyntax))

		var syntaxErr *schema.SyntaxError
		Expect(err).To(BeAssignableToTypeOf(syntaxErr))

		syntaxErr = err.(*schema.SyntaxError)
		Expect(syntaxErr.Report).To(Equal(
			"Validation error for setting interfaces->0->name, bad value: 123 (value origin: device)\n" +
				"Message: expected string, but got number\n",
		))
		Expect(err.Error()).To(ContainSubstring("interfaces->0->name"))
	})

	It("names each missing required field", func() {
		merged, origins := merge.Seed(yamltree.MustParse("interfaces: [{description: uplink}]\n"), settings.LayerDevice)

		violations, err := schema.Validate(schema.KindDevice, merged)
		Expect(err).NotTo(HaveOccurred())

		paths := make([]string, 0, len(violations))
		for _, v := range violations {
			paths = append(paths, v.Path())
		}

		Expect(paths).To(ContainElements("interfaces->0->name", "interfaces->0->ifclass"))

		err = schema.Check(merged, origins, schema.KindDevice)
		Expect(err).To(MatchError(schema.ErrSettingsSyntax))
		Expect(err.Error()).To(ContainSubstring(
			"Validation error for setting interfaces->0->ifclass, bad value: value not found (value origin: device)\n" +
				"Message: field required\n",
		))
	})

	It("orders sequence indexes numerically", func() {
		items := make([]string, 11)
		for i := range items {
			class := "custom"
			if i == 2 || i == 10 {
				class = "uplink"
			}

			items[i] = fmt.Sprintf("{name: e%d, ifclass: %s}", i, class)
		}

		doc := yamltree.MustParse("interfaces: [" + strings.Join(items, ", ") + "]\n")

		violations, err := schema.Validate(schema.KindDevice, doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(2))
		Expect(violations[0].Path()).To(Equal("interfaces->2->ifclass"))
		Expect(violations[1].Path()).To(Equal("interfaces->10->ifclass"))
	})

	It("returns nil for valid settings", func() {
		merged, origins := merge.Seed(yamltree.MustParse("dns_servers: [{host: 1.1.1.1}]\n"), settings.LayerGlobal)

		Expect(schema.Check(merged, origins, schema.KindDevice)).To(Succeed())
	})

	It("marks values missing from the merged settings", func() {
		merged, origins := merge.Seed(yamltree.MustParse("a: 1\n"), settings.LayerGlobal)

		report := schema.Report(merged, origins, []schema.Violation{
			{Loc: []string{"a", "b"}, Message: "m1"},
			{Loc: nil, Message: "m2"},
		})

		Expect(report).To(Equal(
			"Validation error for setting a->b, bad value: value not found (value origin: global)\n" +
				"Message: m1\n" +
				"Validation error for setting , bad value: {\"a\":1} (value origin: unknown)\n" +
				"Message: m2\n",
		))
	})
})

var _ = Describe("Decode", func() {
	It("decodes validated settings into the typed model", func() {
		doc := yamltree.MustParse(`
interfaces:
  - name: Ethernet1
    ifclass: downlink
    untagged_vlan: 100
    tagged_vlan_list: [200, 300]
    enabled: false
vxlans:
  v1: {vni: 1, vlan_id: 2}
dot1x_fail_vlan: 13
extra: ignored
`)

		out, err := schema.DecodeDevice(doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Interfaces).To(HaveLen(1))

		iface := out.Interfaces[0]
		Expect(iface.Name).To(Equal("Ethernet1"))
		Expect(*iface.UntaggedVLAN).To(Equal(100))
		Expect(iface.TaggedVLANs).To(Equal([]int{200, 300}))
		Expect(iface.IsEnabled()).To(BeFalse())
		Expect(out.VXLANs).To(HaveKeyWithValue("v1", settings.VXLAN{VNI: 1, VLANID: 2}))
		Expect(*out.Dot1xFailVLAN).To(Equal(13))
	})

	It("decodes groups", func() {
		out, err := schema.DecodeGroups(yamltree.MustParse("groups:\n  - group: {name: a, regex: b}\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Groups).To(Equal([]settings.GroupEntry{{Group: settings.Group{Name: "a", Regex: "b"}}}))
	})

	It("decodes an empty document to the zero value", func() {
		out, err := schema.DecodeDevice(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(*out).To(Equal(settings.DeviceSettings{}))
	})
})
