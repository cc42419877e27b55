// Package groups resolves hostname-based group membership and filters
// group-conditional fragments out of settings documents.
package groups

import (
	"slices"

	"github.com/smykla-skalski/netsettings/internal/yamltree"
)

const (
	// DefaultFilterDepth bounds recursion in Filter. Subtrees deeper than
	// this are returned unfiltered.
	DefaultFilterDepth = 100

	// DiscriminatorKey marks a mapping as group-conditional.
	DiscriminatorKey = "group"

	nameKey = "name"
)

// Filter removes group-conditional mappings whose group is not in active.
//
// A mapping holding DiscriminatorKey is returned whole when its group is
// active and replaced by an empty mapping otherwise. Other mappings keep
// every key with filtered values. Sequence elements that filter down to an
// empty value are dropped. Scalars are returned as is. When depth drops
// below 1 the value is returned unfiltered.
//
//nolint:ireturn // variant interface
func Filter(v yamltree.Value, active []string, depth int) yamltree.Value {
	if depth < 1 {
		return v
	}

	switch t := v.(type) {
	case yamltree.Sequence:
		out := make(yamltree.Sequence, 0, len(t))

		for _, item := range t {
			filtered := Filter(item, active, depth-1)
			if yamltree.Truthy(filtered) {
				out = append(out, filtered)
			}
		}

		return out
	case *yamltree.Mapping:
		if disc, ok := t.Get(DiscriminatorKey); ok {
			if name, ok := GroupName(disc); ok && slices.Contains(active, name) {
				return t
			}

			return yamltree.NewMapping()
		}

		out := yamltree.NewMapping()

		t.Each(func(k string, item yamltree.Value) bool {
			out.Set(k, Filter(item, active, depth-1))

			return true
		})

		return out
	default:
		return v
	}
}

// GroupName extracts the group name from a discriminator value: either a
// scalar or a mapping with a name field.
func GroupName(disc yamltree.Value) (string, bool) {
	switch t := disc.(type) {
	case *yamltree.Scalar:
		if t.IsNull() {
			return "", false
		}

		return t.String(), true
	case *yamltree.Mapping:
		name, ok := t.Get(nameKey)
		if !ok {
			return "", false
		}

		s, ok := name.(*yamltree.Scalar)
		if !ok || s.IsNull() {
			return "", false
		}

		return s.String(), true
	default:
		return "", false
	}
}
