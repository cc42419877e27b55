// Package merge layers settings documents on top of each other and records
// where every resulting key came from.
package merge

import (
	"github.com/smykla-skalski/netsettings/internal/yamltree"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// Seed starts a merge from doc, attributing every top-level key to layer.
// A doc that is not a mapping yields an empty result.
func Seed(doc yamltree.Value, layer settings.Layer) (*yamltree.Mapping, Origins) {
	return Merge(yamltree.NewMapping(), Origins{}, doc, layer)
}

// Merge applies doc on top of acc and returns the new mapping and origins.
// Neither acc nor origins is modified.
//
// Where both sides hold a mapping the merge recurses. Any other value from
// doc, sequences included, replaces the old value wholesale. Keys only in
// acc keep their value and origin. A doc that is nil, empty or not a
// mapping contributes nothing.
func Merge(
	acc *yamltree.Mapping,
	origins Origins,
	doc yamltree.Value,
	layer settings.Layer,
) (*yamltree.Mapping, Origins) {
	out := acc.CloneMapping()
	outOrigins := origins.Clone()

	src, ok := doc.(*yamltree.Mapping)
	if !ok || src.Len() == 0 {
		return out, outOrigins
	}

	src.Each(func(k string, v yamltree.Value) bool {
		prev, _ := out.Get(k)

		prevMap, prevIsMap := prev.(*yamltree.Mapping)
		nextMap, nextIsMap := v.(*yamltree.Mapping)

		if prevIsMap && nextIsMap {
			var children Origins
			if o := outOrigins[k]; o != nil {
				children = o.Children
			}

			merged, mergedOrigins := Merge(prevMap, children, nextMap, layer)
			out.Set(k, merged)
			outOrigins[k] = &Origin{Layer: layer, Children: mergedOrigins}

			return true
		}

		out.Set(k, cloneValue(v))
		outOrigins[k] = &Origin{Layer: layer}

		// a mapping written whole gets the same child origins a recursive
		// merge would record
		if nextIsMap {
			_, outOrigins[k].Children = Seed(nextMap, layer)
		}

		return true
	})

	return out, outOrigins
}

//nolint:ireturn // variant interface
func cloneValue(v yamltree.Value) yamltree.Value {
	if v == nil {
		return yamltree.Null()
	}

	return v.Clone()
}
