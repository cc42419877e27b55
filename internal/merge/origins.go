package merge

import (
	"sort"
	"strings"

	"github.com/knadh/koanf/maps"

	"github.com/smykla-skalski/netsettings/internal/yamltree"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// Origins records which layer supplied each key of a merged mapping. It has
// the same shape as the mapping: keys merged recursively carry Children.
type Origins map[string]*Origin

// Origin is the record for one key.
type Origin struct {
	// Layer is the most recent layer that wrote at or below the key.
	Layer settings.Layer

	// Children is set when the key holds a mapping.
	Children Origins
}

// Clone returns a deep copy.
func (o Origins) Clone() Origins {
	if o == nil {
		return Origins{}
	}

	out := make(Origins, len(o))

	for k, v := range o {
		if v == nil {
			continue
		}

		out[k] = &Origin{Layer: v.Layer, Children: cloneChildren(v.Children)}
	}

	return out
}

func cloneChildren(o Origins) Origins {
	if o == nil {
		return nil
	}

	return o.Clone()
}

// Layer returns the layer recorded for a top-level key.
func (o Origins) Layer(key string) (settings.Layer, bool) {
	v, ok := o[key]
	if !ok || v == nil {
		return "", false
	}

	return v.Layer, true
}

// Lookup returns the most specific layer recorded along loc. The first
// segment must be a known top-level key.
func (o Origins) Lookup(loc []string) (settings.Layer, bool) {
	var (
		layer settings.Layer
		found bool
	)

	cur := o

	for _, seg := range loc {
		v, ok := cur[seg]
		if !ok || v == nil {
			break
		}

		layer, found = v.Layer, true

		if v.Children == nil {
			break
		}

		cur = v.Children
	}

	return layer, found
}

// Entry is one leaf of a flattened merged mapping.
type Entry struct {
	Key   string
	Path  []string
	Value any
	Layer settings.Layer
}

// Flatten lists every leaf of merged (nested mappings are descended,
// sequences are leaves) with the layer that supplied it, sorted by key.
func (o Origins) Flatten(merged *yamltree.Mapping, delim string) []Entry {
	if merged == nil {
		return nil
	}

	m, ok := merged.Interface().(map[string]any)
	if !ok {
		return nil
	}

	flat, paths := maps.Flatten(m, nil, delim)

	entries := make([]Entry, 0, len(flat))

	for key, val := range flat {
		layer, _ := o.Lookup(paths[key])
		entries = append(entries, Entry{
			Key:   key,
			Path:  paths[key],
			Value: val,
			Layer: layer,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.Compare(entries[i].Key, entries[j].Key) < 0
	})

	return entries
}
