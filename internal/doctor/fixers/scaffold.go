package fixers

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/netsettings/internal/doctor"
	layoutcheck "github.com/smykla-skalski/netsettings/internal/doctor/checkers/layout"
	"github.com/smykla-skalski/netsettings/internal/layout"
	"github.com/smykla-skalski/netsettings/pkg/logger"
)

// ScaffoldFixer creates the directories and files the structure
// specification expects but the repository lacks. Existing entries are never
// touched.
type ScaffoldFixer struct {
	root string
	log  logger.Logger
}

// NewScaffoldFixer creates a ScaffoldFixer for the repository at root.
func NewScaffoldFixer(root string, log logger.Logger) *ScaffoldFixer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &ScaffoldFixer{root: root, log: log}
}

// ID returns the fixer identifier.
func (*ScaffoldFixer) ID() string {
	return layoutcheck.ScaffoldFixID
}

// Description returns a human-readable description.
func (*ScaffoldFixer) Description() string {
	return "Create missing repository directories and empty settings files"
}

// CanFix checks if this fixer can fix the given result.
func (*ScaffoldFixer) CanFix(result doctor.CheckResult) bool {
	return result.FixID == layoutcheck.ScaffoldFixID && result.Status == doctor.StatusFail
}

// Fix creates every missing entry of the layout.
func (f *ScaffoldFixer) Fix(ctx context.Context) error {
	return f.scaffold(ctx, f.root, layout.RepoSpec)
}

func (f *ScaffoldFixer) scaffold(ctx context.Context, dir string, spec layout.Spec) error {
	for _, n := range spec {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch n.Kind {
		case layout.NodeFile:
			if err := f.ensureFile(filepath.Join(dir, n.Name)); err != nil {
				return err
			}
		case layout.NodeDir:
			p := filepath.Join(dir, n.Name)

			if err := os.MkdirAll(p, defaultDirPermissions); err != nil {
				return errors.Wrapf(err, "failed to create %s", p)
			}

			if err := f.scaffold(ctx, p, n.Children); err != nil {
				return err
			}
		case layout.NodeDevices:
			hosts, err := layout.DeviceDirs(dir)
			if err != nil {
				return err
			}

			for _, host := range hosts {
				if err := f.scaffold(ctx, filepath.Join(dir, host), n.Children); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (f *ScaffoldFixer) ensureFile(path string) error {
	if _, err := os.Lstat(path); err == nil || !os.IsNotExist(err) {
		return nil
	}

	if err := AtomicWriteFile(path, nil); err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}

	f.log.Info("created settings file", "path", path)

	return nil
}
