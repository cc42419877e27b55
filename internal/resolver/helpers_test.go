package resolver_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// testRepo is a settings repository in a temp dir with every layout file
// present and empty.
type testRepo struct {
	root string
}

func newTestRepo() *testRepo {
	r := &testRepo{root: GinkgoT().TempDir()}

	for _, f := range []string{"base_system.yml", "groups.yml", "routing.yml"} {
		r.write("", "global", f)
	}

	for _, d := range []string{"fabric", "core", "dist", "access"} {
		r.write("", d, "base_system.yml")
	}

	Expect(os.MkdirAll(filepath.Join(r.root, "devices"), 0o755)).To(Succeed())

	return r
}

func (r *testRepo) write(content string, parts ...string) {
	p := filepath.Join(append([]string{r.root}, parts...)...)
	Expect(os.MkdirAll(filepath.Dir(p), 0o755)).To(Succeed())
	Expect(os.WriteFile(p, []byte(content), 0o600)).To(Succeed())
}

func (r *testRepo) device(hostname, baseSystem, interfaces string) {
	r.write(baseSystem, "devices", hostname, "base_system.yml")
	r.write(interfaces, "devices", hostname, "interfaces.yml")
}

func (r *testRepo) defaults(content string) string {
	p := filepath.Join(GinkgoT().TempDir(), "default_settings.yml")
	Expect(os.WriteFile(p, []byte(content), 0o600)).To(Succeed())

	return p
}
