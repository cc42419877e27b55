// Package resolver computes the effective settings of a device by layering
// the documents of a settings repository.
package resolver

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/netsettings/internal/groups"
	"github.com/smykla-skalski/netsettings/internal/layout"
	"github.com/smykla-skalski/netsettings/internal/merge"
	"github.com/smykla-skalski/netsettings/internal/repository"
	"github.com/smykla-skalski/netsettings/internal/schema"
	"github.com/smykla-skalski/netsettings/internal/yamltree"
	"github.com/smykla-skalski/netsettings/pkg/logger"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// Resolver reads one settings repository. It holds no mutable state and is
// safe for concurrent use; every call re-reads the repository.
type Resolver struct {
	root         string
	log          logger.Logger
	defaultsPath string
	filterDepth  int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDefaultSettings replaces the bundled default settings with the file
// at path.
func WithDefaultSettings(path string) Option {
	return func(r *Resolver) {
		r.defaultsPath = path
	}
}

// WithFilterDepth sets the group filter recursion limit.
func WithFilterDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.filterDepth = depth
		}
	}
}

// New returns a Resolver for the repository checked out at root.
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:        root,
		log:         logger.NewNoOpLogger(),
		filterDepth: groups.DefaultFilterDepth,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.log = r.log.With("repository", root)

	return r
}

// FromConfig returns a Resolver for the repository named by cfg.
func FromConfig(cfg *repository.Config, opts ...Option) *Resolver {
	base := []Option{
		WithDefaultSettings(cfg.DefaultSettings),
		WithFilterDepth(cfg.FilterDepth),
	}

	return New(cfg.SettingsLocal, append(base, opts...)...)
}

// Root returns the repository path.
func (r *Resolver) Root() string {
	return r.root
}

// Resolved is the outcome of Settings.
type Resolved struct {
	// Settings is the validated, normalized result.
	Settings *settings.DeviceSettings

	// Merged is the raw merged document the result was decoded from.
	Merged *yamltree.Mapping

	// Origins records the layer behind every key of Merged.
	Origins merge.Origins

	// Groups are the hostname's groups. Empty without a hostname.
	Groups []string
}

// ResolvedGroups is the outcome of GroupSettings.
type ResolvedGroups struct {
	Settings *settings.GroupSettings
	Merged   *yamltree.Mapping
	Origins  merge.Origins
}

// Verify checks the repository layout.
func (r *Resolver) Verify() error {
	if err := layout.Verify(r.root, layout.RepoSpec); err != nil {
		r.log.Error("settings repository layout mismatch", "error", err)

		return err
	}

	return nil
}

// Settings resolves the settings for hostname and deviceType. Either may be
// empty: without a device type only the default and global layers apply,
// without a hostname the device and routing layers are skipped.
func (r *Resolver) Settings(hostname string, deviceType settings.DeviceType) (*Resolved, error) {
	log := r.log.With("hostname", hostname, "device_type", deviceType.String())

	if hostname != "" && !layout.ValidHostname(hostname) {
		err := errors.Wrapf(layout.ErrInvalidRequest, "invalid hostname %q", hostname)
		log.Error("rejected settings request", "error", err)

		return nil, err
	}

	if err := r.Verify(); err != nil {
		return nil, err
	}

	defaults, err := repository.LoadDefaultSettings(r.defaultsPath)
	if err != nil {
		log.Error("loading default settings failed", "error", err)

		return nil, err
	}

	st := newState(defaults)

	steps := []layerStep{{segments: []string{layout.GlobalDir, layout.BaseSystemFile}, layer: settings.LayerGlobal}}

	if deviceType.IsFabric() {
		steps = append(steps, layerStep{
			segments: []string{layout.FabricDir, layout.BaseSystemFile},
			layer:    settings.LayerFabric,
		})
	}

	if deviceType.IsSet() {
		steps = append(steps, layerStep{
			segments: []string{deviceType.Dir(), layout.BaseSystemFile},
			layer:    settings.LayerDeviceType,
		})
	}

	if hostname != "" && r.hasDeviceDir(hostname) {
		steps = append(steps,
			layerStep{
				segments: []string{layout.DevicesDir, hostname, layout.BaseSystemFile},
				layer:    settings.LayerDevice,
			},
			layerStep{
				segments: []string{layout.DevicesDir, hostname, layout.InterfacesFile},
				layer:    settings.LayerDevice,
			},
		)
	}

	for _, step := range steps {
		if err := r.apply(log, st, step); err != nil {
			return nil, err
		}
	}

	var active []string

	if hostname != "" {
		res, err := r.MatchGroups(hostname)
		if err != nil {
			return nil, err
		}

		// A hostname outside every group still gets filtered routing: all
		// group-conditional fragments are dropped, none pass unfiltered.
		active = res.Names
		if active == nil {
			active = []string{}
		}

		routing := layerStep{
			segments: []string{layout.GlobalDir, layout.RoutingFile},
			layer:    settings.LayerGlobal,
			groups:   active,
		}

		if err := r.apply(log, st, routing); err != nil {
			return nil, err
		}
	}

	if err := schema.Check(st.merged, st.origins, schema.KindDevice); err != nil {
		log.Error("settings validation failed", "error", err)

		return nil, err
	}

	typed, err := schema.DecodeDevice(st.merged)
	if err != nil {
		log.Error("decoding settings failed", "error", err)

		return nil, err
	}

	log.Debug("resolved settings", "keys", st.merged.Len(), "groups", active)

	return &Resolved{
		Settings: typed,
		Merged:   st.merged,
		Origins:  st.origins,
		Groups:   active,
	}, nil
}

// GroupSettings resolves and validates the global groups document.
func (r *Resolver) GroupSettings() (*ResolvedGroups, error) {
	if err := r.Verify(); err != nil {
		return nil, err
	}

	st := newState(nil)

	step := layerStep{
		segments: []string{layout.GlobalDir, layout.GroupsFile},
		layer:    settings.LayerGlobal,
	}

	if err := r.apply(r.log, st, step); err != nil {
		return nil, err
	}

	if err := schema.Check(st.merged, st.origins, schema.KindGroups); err != nil {
		r.log.Error("group settings validation failed", "error", err)

		return nil, err
	}

	typed, err := schema.DecodeGroups(st.merged)
	if err != nil {
		r.log.Error("decoding group settings failed", "error", err)

		return nil, err
	}

	return &ResolvedGroups{
		Settings: typed,
		Merged:   st.merged,
		Origins:  st.origins,
	}, nil
}

// MatchGroups matches hostname against the group definitions. Malformed
// entries are logged and reported in the result.
func (r *Resolver) MatchGroups(hostname string) (groups.Result, error) {
	gs, err := r.GroupSettings()
	if err != nil {
		return groups.Result{}, err
	}

	res := groups.Match(gs.Settings, hostname)

	for _, s := range res.Skipped {
		r.log.Info("skipping group definition",
			"index", s.Index,
			"name", s.Name,
			"reason", s.Reason,
		)
	}

	return res, nil
}

// Groups returns the names of the groups hostname belongs to, in the order
// they are defined. An empty hostname returns every well-formed group.
func (r *Resolver) Groups(hostname string) ([]string, error) {
	res, err := r.MatchGroups(hostname)
	if err != nil {
		return nil, err
	}

	return res.Names, nil
}

// DeviceHostnames lists the device directories of the repository.
func (r *Resolver) DeviceHostnames() ([]string, error) {
	names, err := layout.DeviceDirs(filepath.Join(r.root, layout.DevicesDir))
	if err != nil {
		r.log.Error("listing device directories failed", "error", err)

		return nil, err
	}

	return names, nil
}

func (r *Resolver) hasDeviceDir(hostname string) bool {
	info, err := os.Stat(filepath.Join(r.root, layout.DevicesDir, hostname))

	return err == nil && info.IsDir()
}
