package layout_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/netsettings/internal/layout"
)

func writeFile(root string, parts ...string) {
	p := filepath.Join(append([]string{root}, parts...)...)
	Expect(os.MkdirAll(filepath.Dir(p), 0o755)).To(Succeed())
	Expect(os.WriteFile(p, []byte("{}\n"), 0o600)).To(Succeed())
}

func validRepo() string {
	root := GinkgoT().TempDir()

	for _, f := range []string{"base_system.yml", "groups.yml", "routing.yml"} {
		writeFile(root, "global", f)
	}

	for _, d := range []string{"fabric", "core", "dist", "access"} {
		writeFile(root, d, "base_system.yml")
	}

	Expect(os.MkdirAll(filepath.Join(root, "devices"), 0o755)).To(Succeed())

	return root
}

var _ = Describe("Verify", func() {
	var root string

	BeforeEach(func() {
		root = validRepo()
	})

	It("accepts a complete repository", func() {
		Expect(layout.Verify(root, layout.RepoSpec)).To(Succeed())
	})

	It("accepts complete device directories", func() {
		writeFile(root, "devices", "sw1", "base_system.yml")
		writeFile(root, "devices", "sw1", "interfaces.yml")

		Expect(layout.Verify(root, layout.RepoSpec)).To(Succeed())
	})

	It("reports a missing file", func() {
		Expect(os.Remove(filepath.Join(root, "global", "routing.yml"))).To(Succeed())

		err := layout.Verify(root, layout.RepoSpec)
		Expect(err).To(MatchError(layout.ErrFileNotFound))
		Expect(err).To(MatchError(layout.ErrVerifyPath))
		Expect(err.Error()).To(ContainSubstring(filepath.Join(root, "global", "routing.yml")))
	})

	It("reports a directory where a file is expected", func() {
		p := filepath.Join(root, "dist", "base_system.yml")
		Expect(os.Remove(p)).To(Succeed())
		Expect(os.Mkdir(p, 0o755)).To(Succeed())

		err := layout.Verify(root, layout.RepoSpec)
		Expect(err).To(MatchError(layout.ErrNotRegularFile))
		Expect(err).To(MatchError(layout.ErrVerifyPath))
	})

	It("reports a missing directory", func() {
		Expect(os.RemoveAll(filepath.Join(root, "access"))).To(Succeed())

		err := layout.Verify(root, layout.RepoSpec)
		Expect(err).To(MatchError(layout.ErrDirectoryNotFound))
		Expect(err).To(MatchError(layout.ErrVerifyPath))
	})

	It("reports a file where a directory is expected", func() {
		Expect(os.RemoveAll(filepath.Join(root, "devices"))).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "devices"), nil, 0o600)).To(Succeed())

		err := layout.Verify(root, layout.RepoSpec)
		Expect(err).To(MatchError(layout.ErrNotDirectory))
	})

	It("reports an incomplete device directory", func() {
		writeFile(root, "devices", "sw1", "base_system.yml")

		err := layout.Verify(root, layout.RepoSpec)
		Expect(err).To(MatchError(layout.ErrFileNotFound))
		Expect(err.Error()).To(ContainSubstring(filepath.Join("devices", "sw1", "interfaces.yml")))
	})

	It("ignores hidden entries, invalid hostnames and plain files under devices", func() {
		Expect(os.MkdirAll(filepath.Join(root, "devices", ".git"), 0o755)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(root, "devices", "-bad-"), 0o755)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(root, "devices", "bad_name"), 0o755)).To(Succeed())
		writeFile(root, "devices", "README")

		Expect(layout.Verify(root, layout.RepoSpec)).To(Succeed())
	})

	It("is read-only", func() {
		Expect(os.RemoveAll(filepath.Join(root, "core"))).To(Succeed())

		Expect(layout.Verify(root, layout.RepoSpec)).NotTo(Succeed())
		Expect(filepath.Join(root, "core")).NotTo(BeADirectory())
	})
})

var _ = Describe("DeviceDirs", func() {
	It("lists valid device directories in order", func() {
		root := GinkgoT().TempDir()
		for _, name := range []string{"sw2", "sw1", ".hidden", "x_y"} {
			Expect(os.Mkdir(filepath.Join(root, name), 0o755)).To(Succeed())
		}

		writeFile(root, "file.yml")

		Expect(layout.DeviceDirs(root)).To(Equal([]string{"sw1", "sw2"}))
	})
})

var _ = Describe("SettingPath", func() {
	const root = "/repo"

	DescribeTable("accepts layout entries",
		func(segments []string, want string) {
			Expect(layout.SettingPath(root, segments)).To(Equal(want))
		},
		Entry("global base system", []string{"global", "base_system.yml"}, "/repo/global/base_system.yml"),
		Entry("device type", []string{"access", "base_system.yml"}, "/repo/access/base_system.yml"),
		Entry("directory", []string{"global"}, "/repo/global"),
		Entry("device file", []string{"devices", "sw1", "interfaces.yml"}, "/repo/devices/sw1/interfaces.yml"),
	)

	DescribeTable("rejects everything else",
		func(segments []string) {
			_, err := layout.SettingPath(root, segments)
			Expect(err).To(MatchError(layout.ErrInvalidRequest))
		},
		Entry("empty", []string{}),
		Entry("unknown file", []string{"global", "secrets.yml"}),
		Entry("unknown directory", []string{"etc", "passwd"}),
		Entry("too short device path", []string{"devices", "sw1"}),
		Entry("unknown device file", []string{"devices", "sw1", "routing.yml"}),
		Entry("device traversal", []string{"devices", "..", "base_system.yml"}),
		Entry("below a file", []string{"global", "groups.yml", "x"}),
	)
})

var _ = Describe("KeyPathExists", func() {
	It("walks nested names", func() {
		Expect(layout.KeyPathExists(layout.RepoSpec, []string{"fabric", "base_system.yml"})).To(BeTrue())
		Expect(layout.KeyPathExists(layout.RepoSpec, []string{"fabric", "interfaces.yml"})).To(BeFalse())
		Expect(layout.KeyPathExists(layout.RepoSpec, []string{"devices", "sw1"})).To(BeFalse())
		Expect(layout.KeyPathExists(layout.HostSpec, nil)).To(BeTrue())
	})
})

var _ = Describe("ValidHostname", func() {
	DescribeTable("classifies names",
		func(name string, want bool) {
			Expect(layout.ValidHostname(name)).To(Equal(want))
		},
		Entry("simple", "sw1", true),
		Entry("dotted", "eosaccess.example.com", true),
		Entry("upper case and hyphen", "Core-01", true),
		Entry("empty", "", false),
		Entry("leading hyphen", "-sw1", false),
		Entry("trailing hyphen", "sw1-", false),
		Entry("underscore", "sw_1", false),
		Entry("dot dot", "..", false),
		Entry("empty label", "a..b", false),
		Entry("long label", strings.Repeat("a", 64), false),
		Entry("63 char label", strings.Repeat("a", 63), true),
		Entry("too long", strings.Repeat("a.", 127), false),
	)
})
