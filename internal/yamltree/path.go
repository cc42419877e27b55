package yamltree

import (
	"strconv"
	"strings"
)

// Lookup walks v along loc. Mapping steps use the segment as a key, sequence
// steps parse it as an index.
//
//nolint:ireturn // variant interface
func Lookup(v Value, loc []string) (Value, bool) {
	cur := v

	for _, seg := range loc {
		switch t := cur.(type) {
		case *Mapping:
			next, ok := t.Get(seg)
			if !ok {
				return nil, false
			}

			cur = next
		case Sequence:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(t) {
				return nil, false
			}

			cur = t[idx]
		default:
			return nil, false
		}
	}

	return cur, true
}

// SplitPointer splits a JSON pointer ("/a/0/b") into unescaped segments.
func SplitPointer(ptr string) []string {
	if ptr == "" || ptr == "/" {
		return nil
	}

	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}

	return parts
}
