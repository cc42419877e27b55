// Package yamltree represents parsed YAML documents as an explicit tagged
// variant: every node is a *Scalar, a Sequence or a *Mapping. Merge and
// filter code switches over these three cases instead of asserting on
// interface{} containers.
package yamltree

import (
	"fmt"
	"reflect"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindScalar is a leaf (string, number, bool or null).
	KindScalar Kind = iota

	// KindSequence is an ordered list.
	KindSequence

	// KindMapping is an ordered string-keyed map.
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a parsed YAML document.
type Value interface {
	// Kind returns the variant.
	Kind() Kind

	// Interface converts the node to plain Go values: map[string]any,
	// []any, or the scalar's value.
	Interface() any

	// Clone returns a deep copy.
	Clone() Value

	isValue()
}

// Scalar is a leaf value. V is nil, bool, int, int64, uint64, float64 or string.
type Scalar struct {
	V any
}

// NewScalar wraps v in a Scalar.
func NewScalar(v any) *Scalar {
	return &Scalar{V: v}
}

// Null returns a null scalar.
func Null() *Scalar {
	return &Scalar{}
}

// Kind implements Value.
func (*Scalar) Kind() Kind { return KindScalar }

// Interface implements Value.
func (s *Scalar) Interface() any { return s.V }

// Clone implements Value.
//
//nolint:ireturn // variant interface
func (s *Scalar) Clone() Value { return &Scalar{V: s.V} }

// IsNull reports whether the scalar holds no value.
func (s *Scalar) IsNull() bool { return s.V == nil }

// String returns the scalar formatted with %v, or "null".
func (s *Scalar) String() string {
	if s.V == nil {
		return "null"
	}

	return fmt.Sprint(s.V)
}

func (*Scalar) isValue() {}

// Sequence is an ordered list of values.
type Sequence []Value

// Kind implements Value.
func (Sequence) Kind() Kind { return KindSequence }

// Interface implements Value.
func (s Sequence) Interface() any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = interfaceOf(v)
	}

	return out
}

// Clone implements Value.
//
//nolint:ireturn // variant interface
func (s Sequence) Clone() Value {
	out := make(Sequence, len(s))
	for i, v := range s {
		out[i] = cloneOf(v)
	}

	return out
}

func (Sequence) isValue() {}

// Equal reports whether a and b hold the same data. Mapping key order is
// not significant.
func Equal(a, b Value) bool {
	return reflect.DeepEqual(interfaceOf(a), interfaceOf(b))
}

// Truthy reports whether v counts as present: null, false, zero numbers,
// empty strings, empty sequences and empty mappings do not.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case *Scalar:
		return truthyScalar(t.V)
	case Sequence:
		return len(t) > 0
	case *Mapping:
		return t != nil && t.Len() > 0
	default:
		return true
	}
}

func truthyScalar(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func interfaceOf(v Value) any {
	if v == nil {
		return nil
	}

	return v.Interface()
}

//nolint:ireturn // variant interface
func cloneOf(v Value) Value {
	if v == nil {
		return nil
	}

	return v.Clone()
}
