package resolver_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/netsettings/internal/layout"
	"github.com/smykla-skalski/netsettings/internal/repository"
	"github.com/smykla-skalski/netsettings/internal/resolver"
	"github.com/smykla-skalski/netsettings/internal/schema"
	"github.com/smykla-skalski/netsettings/pkg/logger"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

func ntpHosts(res *resolver.Resolved) []string {
	hosts := make([]string, 0, len(res.Settings.NTPServers))
	for _, s := range res.Settings.NTPServers {
		hosts = append(hosts, s.Host)
	}

	return hosts
}

func originOf(res *resolver.Resolved, key string) settings.Layer {
	layer, ok := res.Origins.Layer(key)
	Expect(ok).To(BeTrue(), "no origin for %s", key)

	return layer
}

var _ = Describe("Resolver", func() {
	var (
		repo *testRepo
		logs *bytes.Buffer
		r    *resolver.Resolver
	)

	BeforeEach(func() {
		repo = newTestRepo()
		logs = &bytes.Buffer{}
		r = resolver.New(repo.root, resolver.WithLogger(logger.New(logs, logger.LevelDebug)))
	})

	Describe("Settings", func() {
		It("resolves the bundled defaults and an empty repository", func() {
			res, err := r.Settings("", settings.DeviceTypeUnknown)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Settings.InternalVLANs).NotTo(BeNil())
			Expect(res.Settings.InternalVLANs.VLANIDLow).To(Equal(3006))
			Expect(originOf(res, "internal_vlans")).To(Equal(settings.LayerDefault))
			Expect(res.Groups).To(BeNil())
		})

		It("layers default and global settings", func() {
			r = resolver.New(repo.root, resolver.WithDefaultSettings(repo.defaults("ntp_servers: [{host: 10.0.0.1}]\n")))
			repo.write("dns_servers: [{host: 1.1.1.1}]\n", "global", "base_system.yml")

			res, err := r.Settings("", settings.DeviceTypeUnknown)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Merged.Keys()).To(Equal([]string{"ntp_servers", "dns_servers"}))
			Expect(originOf(res, "ntp_servers")).To(Equal(settings.LayerDefault))
			Expect(originOf(res, "dns_servers")).To(Equal(settings.LayerGlobal))
		})

		It("applies layers in precedence order", func() {
			repo.write("ntp_servers: [{host: global}]\n", "global", "base_system.yml")
			repo.write("ntp_servers: [{host: fabric}]\n", "fabric", "base_system.yml")
			repo.write("ntp_servers: [{host: dist}]\n", "dist", "base_system.yml")
			repo.write("ntp_servers: [{host: access}]\n", "access", "base_system.yml")

			res, err := r.Settings("", settings.DeviceTypeAccess)
			Expect(err).NotTo(HaveOccurred())
			Expect(ntpHosts(res)).To(Equal([]string{"access"}))
			Expect(originOf(res, "ntp_servers")).To(Equal(settings.LayerDeviceType))

			repo.write("", "dist", "base_system.yml")

			res, err = r.Settings("", settings.DeviceTypeDist)
			Expect(err).NotTo(HaveOccurred())
			Expect(ntpHosts(res)).To(Equal([]string{"fabric"}))
			Expect(originOf(res, "ntp_servers")).To(Equal(settings.LayerFabric))

			res, err = r.Settings("", settings.DeviceTypeUnknown)
			Expect(err).NotTo(HaveOccurred())
			Expect(ntpHosts(res)).To(Equal([]string{"global"}))
		})

		It("lets the device layer win and reads interfaces from it", func() {
			repo.write("ntp_servers: [{host: global}]\n", "global", "base_system.yml")
			repo.write("ntp_servers: [{host: access}]\n", "access", "base_system.yml")
			repo.device("sw1", "ntp_servers: [{host: device}]\n", `
interfaces:
  - name: Ethernet1
    ifclass: downlink
`)

			res, err := r.Settings("sw1", settings.DeviceTypeAccess)
			Expect(err).NotTo(HaveOccurred())
			Expect(ntpHosts(res)).To(Equal([]string{"device"}))
			Expect(res.Settings.Interfaces).To(HaveLen(1))
			Expect(originOf(res, "interfaces")).To(Equal(settings.LayerDevice))
		})

		It("merges routing filtered by the device's groups", func() {
			repo.write(`
groups:
  - group: {name: access, regex: sw}
  - group: {name: border, regex: border}
`, "global", "groups.yml")
			repo.write(`
extroute_static:
  vrfs:
    - name: MGMT
      group: access
      ipv4:
        - {destination: 0.0.0.0/0, nexthop: 10.0.0.1}
    - name: INTERNET
      group: border
`, "global", "routing.yml")

			res, err := r.Settings("sw1", settings.DeviceTypeAccess)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Groups).To(Equal([]string{"access"}))
			Expect(res.Settings.ExtrouteStatic.VRFs).To(HaveLen(1))
			Expect(res.Settings.ExtrouteStatic.VRFs[0].Name).To(Equal("MGMT"))
			Expect(originOf(res, "extroute_static")).To(Equal(settings.LayerGlobal))

			res, err = r.Settings("core1", settings.DeviceTypeCore)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Groups).To(BeEmpty())
			Expect(res.Settings.ExtrouteStatic.VRFs).To(BeEmpty())
		})

		It("drops every group-conditional fragment when no group matches", func() {
			repo.write("groups:\n  - group: {name: access, regex: sw}\n", "global", "groups.yml")
			repo.write(`
extroute_static:
  vrfs:
    - name: MGMT
      group: access
    - name: SHARED
dns_servers:
  - {host: 1.1.1.1, group: access}
  - {host: 9.9.9.9}
`, "global", "routing.yml")

			res, err := r.Settings("edge1", settings.DeviceTypeAccess)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Groups).To(BeEmpty())
			Expect(res.Settings.ExtrouteStatic.VRFs).To(HaveLen(1))
			Expect(res.Settings.ExtrouteStatic.VRFs[0].Name).To(Equal("SHARED"))
			Expect(res.Settings.DNSServers).To(HaveLen(1))
			Expect(res.Settings.DNSServers[0].Host).To(Equal("9.9.9.9"))
		})

		It("skips routing without a hostname", func() {
			repo.write("dns_servers: [{host: 1.1.1.1}]\n", "global", "routing.yml")

			res, err := r.Settings("", settings.DeviceTypeAccess)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Settings.DNSServers).To(BeEmpty())
		})

		It("reports syntax errors with the offending layer", func() {
			repo.device("sw1", "", `
interfaces:
  - name: 123
    ifclass: downlink
`)

			_, err := r.Settings("sw1", settings.DeviceTypeAccess)
			Expect(err).To(MatchError(schema.ErrSettingsSyntax))
			Expect(err.Error()).To(ContainSubstring(
				"Validation error for setting interfaces->0->name, bad value: 123 (value origin: device)",
			))
			Expect(logs.String()).To(ContainSubstring("settings validation failed"))
		})

		It("rejects a repository with a broken layout and logs it", func() {
			Expect(os.Remove(filepath.Join(repo.root, "global", "groups.yml"))).To(Succeed())

			_, err := r.Settings("sw1", settings.DeviceTypeAccess)
			Expect(err).To(MatchError(layout.ErrVerifyPath))
			Expect(err).To(MatchError(layout.ErrFileNotFound))
			Expect(logs.String()).To(ContainSubstring("settings repository layout mismatch"))
		})

		It("rejects an invalid hostname", func() {
			_, err := r.Settings("../etc", settings.DeviceTypeAccess)
			Expect(err).To(MatchError(layout.ErrInvalidRequest))
		})

		It("reports unparsable layers", func() {
			repo.write("ntp_servers: [\n", "global", "base_system.yml")

			_, err := r.Settings("", settings.DeviceTypeUnknown)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("global layer"))
		})

		It("uses the configured repository", func() {
			cfg := &repository.Config{
				SettingsLocal:   repo.root,
				DefaultSettings: repo.defaults("dns_servers: [{host: 9.9.9.9}]\n"),
				FilterDepth:     10,
			}

			res, err := resolver.FromConfig(cfg).Settings("", settings.DeviceTypeUnknown)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Settings.DNSServers[0].Host).To(Equal("9.9.9.9"))
		})
	})

	Describe("Groups", func() {
		BeforeEach(func() {
			repo.write(`
groups:
  - group: {name: access, regex: sw}
  - group: {name: unnamed-regexless}
  - group: {name: core, regex: core}
  - group: {regex: sw}
`, "global", "groups.yml")
		})

		It("returns the hostname's groups", func() {
			Expect(r.Groups("sw1")).To(Equal([]string{"access"}))
		})

		It("returns every well-formed group without a hostname", func() {
			Expect(r.Groups("")).To(Equal([]string{"access", "core"}))
		})

		It("logs skipped definitions", func() {
			res, err := r.MatchGroups("sw1")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Skipped).To(HaveLen(2))
			Expect(logs.String()).To(ContainSubstring("skipping group definition"))
		})

		It("returns nothing for an empty groups document", func() {
			repo.write("", "global", "groups.yml")

			Expect(r.Groups("sw1")).To(BeEmpty())
		})

		It("validates the groups document", func() {
			repo.write("groups:\n  - group: {name: a, regex: b, group_priority: -1}\n", "global", "groups.yml")

			_, err := r.GroupSettings()
			Expect(err).To(MatchError(schema.ErrSettingsSyntax))
		})
	})

	Describe("DeviceHostnames", func() {
		It("lists device directories", func() {
			repo.device("sw2", "", "")
			repo.device("sw1", "", "")
			Expect(os.MkdirAll(filepath.Join(repo.root, "devices", ".git"), 0o755)).To(Succeed())

			Expect(r.DeviceHostnames()).To(Equal([]string{"sw1", "sw2"}))
		})
	})
})
