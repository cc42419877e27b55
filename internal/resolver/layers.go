package resolver

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/netsettings/internal/groups"
	"github.com/smykla-skalski/netsettings/internal/layout"
	"github.com/smykla-skalski/netsettings/internal/merge"
	"github.com/smykla-skalski/netsettings/internal/yamltree"
	"github.com/smykla-skalski/netsettings/pkg/logger"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// layerStep is one document merged during resolution.
type layerStep struct {
	segments []string
	layer    settings.Layer

	// groups, when non-nil, filters the document to these groups first.
	groups []string
}

type state struct {
	merged  *yamltree.Mapping
	origins merge.Origins
}

func newState(defaults yamltree.Value) *state {
	merged, origins := merge.Seed(defaults, settings.LayerDefault)

	return &state{merged: merged, origins: origins}
}

func (r *Resolver) apply(log logger.Logger, st *state, step layerStep) error {
	path, err := layout.SettingPath(r.root, step.segments)
	if err != nil {
		log.Error("invalid settings path", "error", err)

		return err
	}

	doc, err := yamltree.ParseFile(path)
	if err != nil {
		log.Error("reading settings layer failed", "layer", step.layer, "error", err)

		return errors.Wrapf(err, "%s layer", step.layer)
	}

	if step.groups != nil {
		doc = groups.Filter(doc, step.groups, r.filterDepth)
	}

	st.merged, st.origins = merge.Merge(st.merged, st.origins, doc, step.layer)

	log.Debug("merged settings layer", "layer", step.layer, "path", path)

	return nil
}
