package resolution_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/netsettings/internal/doctor"
	"github.com/smykla-skalski/netsettings/internal/doctor/checkers/resolution"
	"github.com/smykla-skalski/netsettings/internal/doctor/fixers"
	"github.com/smykla-skalski/netsettings/internal/layout"
	"github.com/smykla-skalski/netsettings/internal/resolver"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

var _ = Describe("resolution checkers", func() {
	var (
		root string
		r    *resolver.Resolver
		ctx  context.Context
	)

	write := func(content string, parts ...string) {
		p := filepath.Join(append([]string{root}, parts...)...)
		Expect(os.MkdirAll(filepath.Dir(p), 0o755)).To(Succeed())
		Expect(os.WriteFile(p, []byte(content), 0o600)).To(Succeed())
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		ctx = context.Background()
		Expect(fixers.NewScaffoldFixer(root, nil).Fix(ctx)).To(Succeed())
		r = resolver.New(root)
	})

	Describe("Failure", func() {
		It("skips layout mismatches", func() {
			err := &layout.PathError{Path: "/repo/global", Err: layout.ErrDirectoryNotFound}

			Expect(resolution.Failure("x", "broken", err).IsSkipped()).To(BeTrue())
		})

		It("keeps the message of other errors as a detail", func() {
			result := resolution.Failure("x", "broken", errors.New("boom"))
			Expect(result.IsError()).To(BeTrue())
			Expect(result.Message).To(Equal("broken"))
			Expect(result.Details).To(ConsistOf("boom"))
		})
	})

	Describe("SettingsChecker", func() {
		It("creates one checker per layer set", func() {
			var names []string

			for _, c := range resolution.NewSettingsCheckers(r) {
				Expect(c.Category()).To(Equal(doctor.CategorySettings))
				names = append(names, c.Name())
			}

			Expect(names).To(Equal([]string{
				"Global settings", "access settings", "dist settings", "core settings",
			}))
		})

		It("passes for an empty repository", func() {
			result := resolution.NewSettingsChecker(r, settings.DeviceTypeCore).Check(ctx)
			Expect(result.IsPassed()).To(BeTrue())
			Expect(result.Message).To(Equal("15 top-level settings resolved"))
		})

		It("reports syntax errors line by line", func() {
			write("internal_vlans: {vlan_id_low: 0, vlan_id_high: 10}\n", "dist", "base_system.yml")

			result := resolution.NewSettingsChecker(r, settings.DeviceTypeDist).Check(ctx)
			Expect(result.IsError()).To(BeTrue())
			Expect(result.Details).To(ContainElement(HavePrefix(
				"Validation error for setting internal_vlans->vlan_id_low, bad value: 0 (value origin: devicetype)",
			)))
			Expect(result.Details).To(ContainElement(HavePrefix("Message: ")))

			Expect(resolution.NewSettingsChecker(r, settings.DeviceTypeAccess).Check(ctx).IsPassed()).
				To(BeTrue())
		})
	})

	Describe("DevicesChecker", func() {
		var checker *resolution.DevicesChecker

		BeforeEach(func() {
			checker = resolution.NewDevicesChecker(r, settings.DeviceTypeAccess)
		})

		It("describes itself", func() {
			Expect(checker.Name()).To(Equal("Device settings"))
			Expect(checker.Category()).To(Equal(doctor.CategoryDevices))
		})

		It("is skipped without devices", func() {
			Expect(checker.Check(ctx).IsSkipped()).To(BeTrue())
		})

		It("passes when every device resolves", func() {
			write("", "devices", "sw1", "base_system.yml")
			write("interfaces: [{name: eth0, ifclass: downlink}]\n", "devices", "sw1", "interfaces.yml")
			write("", "devices", "sw2", "base_system.yml")
			write("", "devices", "sw2", "interfaces.yml")

			result := checker.Check(ctx)
			Expect(result.IsPassed()).To(BeTrue())
			Expect(result.Message).To(Equal("2 devices resolved"))
		})

		It("lists the devices that fail", func() {
			write("", "devices", "sw1", "base_system.yml")
			write("interfaces: [{name: 123, ifclass: downlink}]\n", "devices", "sw1", "interfaces.yml")
			write("", "devices", "sw2", "base_system.yml")
			write("", "devices", "sw2", "interfaces.yml")

			result := checker.Check(ctx)
			Expect(result.IsError()).To(BeTrue())
			Expect(result.Message).To(Equal("1 of 2 devices do not resolve"))
			Expect(result.Details).To(ContainElement(HavePrefix(
				"sw1: Validation error for setting interfaces->0->name, bad value: 123 (value origin: device)",
			)))
		})

		It("stops when the context is cancelled", func() {
			write("", "devices", "sw1", "base_system.yml")
			write("", "devices", "sw1", "interfaces.yml")

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			Expect(checker.Check(cancelled).Message).To(Equal("Cancelled"))
		})
	})
})
