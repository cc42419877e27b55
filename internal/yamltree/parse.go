package yamltree

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const mergeKey = "<<"

// ErrInvalidYAML is returned when a document cannot be parsed.
var ErrInvalidYAML = errors.New("invalid YAML")

// Parse decodes the first YAML document in data. An empty document parses
// to a nil Value.
//
//nolint:ireturn // variant interface
func Parse(data []byte) (Value, error) {
	var doc yaml.Node

	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, errors.Wrap(ErrInvalidYAML, err.Error())
	}

	return FromNode(&doc)
}

// ParseFile reads and parses the file at path.
//
//nolint:ireturn // variant interface
func ParseFile(path string) (Value, error) {
	//nolint:gosec // callers resolve path through the layout whitelist
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	v, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return v, nil
}

// MustParse is Parse for literals in tests and embedded documents.
//
//nolint:ireturn // variant interface
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}

	return v
}

// maxAliasedNodes caps the values produced by expanding aliases, so a small
// document cannot expand into an exponentially large tree.
const maxAliasedNodes = 1_000_000

// FromNode converts a yaml.v3 node tree. Aliases are expanded and "<<" merge
// keys are applied without overriding explicit keys. An anchor that contains
// an alias to itself, or aliases expanding past maxAliasedNodes, are
// rejected with ErrInvalidYAML.
//
//nolint:ireturn // variant interface
func FromNode(n *yaml.Node) (Value, error) {
	c := &converter{expanding: make(map[*yaml.Node]bool)}

	return c.value(n)
}

// converter tracks alias expansion state for one FromNode call.
type converter struct {
	expanding map[*yaml.Node]bool
	depth     int
	aliased   int
}

//nolint:ireturn // variant interface
func (c *converter) value(n *yaml.Node) (Value, error) {
	if c.depth > 0 {
		c.aliased++
		if c.aliased > maxAliasedNodes {
			return nil, errors.Wrapf(ErrInvalidYAML, "aliases expand to more than %d values", maxAliasedNodes)
		}
	}

	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}

		return c.value(n.Content[0])
	case yaml.AliasNode:
		return c.alias(n)
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))

		for _, item := range n.Content {
			v, err := c.value(item)
			if err != nil {
				return nil, err
			}

			seq = append(seq, v)
		}

		return seq, nil
	case yaml.MappingNode:
		return c.mapping(n)
	case yaml.ScalarNode:
		return scalarFromNode(n)
	default:
		return nil, errors.Wrapf(ErrInvalidYAML, "unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

//nolint:ireturn // variant interface
func (c *converter) alias(n *yaml.Node) (Value, error) {
	target := n.Alias
	if target == nil {
		return nil, errors.Wrapf(ErrInvalidYAML, "unknown anchor %q at line %d", n.Value, n.Line)
	}

	if c.expanding[target] {
		return nil, errors.Wrapf(ErrInvalidYAML, "anchor %q contains itself at line %d", n.Value, n.Line)
	}

	c.expanding[target] = true
	c.depth++

	defer func() {
		delete(c.expanding, target)
		c.depth--
	}()

	return c.value(target)
}

func (c *converter) mapping(n *yaml.Node) (*Mapping, error) {
	m := NewMapping()

	var merged []*Mapping

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == mergeKey && keyNode.ShortTag() == "!!merge" {
			sources, err := c.mergeSources(valNode)
			if err != nil {
				return nil, err
			}

			merged = append(merged, sources...)

			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return nil, errors.Wrapf(ErrInvalidYAML, "non-scalar mapping key at line %d", keyNode.Line)
		}

		v, err := c.value(valNode)
		if err != nil {
			return nil, err
		}

		m.Set(keyNode.Value, v)
	}

	for _, src := range merged {
		src.Each(func(k string, v Value) bool {
			if !m.Has(k) {
				m.Set(k, v)
			}

			return true
		})
	}

	return m, nil
}

func (c *converter) mergeSources(n *yaml.Node) ([]*Mapping, error) {
	v, err := c.value(n)
	if err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case *Mapping:
		return []*Mapping{t}, nil
	case Sequence:
		out := make([]*Mapping, 0, len(t))

		for _, item := range t {
			m, ok := item.(*Mapping)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidYAML, "merge key value must be a mapping at line %d", n.Line)
			}

			out = append(out, m)
		}

		return out, nil
	default:
		return nil, errors.Wrapf(ErrInvalidYAML, "merge key value must be a mapping at line %d", n.Line)
	}
}

func scalarFromNode(n *yaml.Node) (*Scalar, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!str", "!!timestamp", "!!binary":
		return NewScalar(n.Value), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			var u uint64
			if uerr := n.Decode(&u); uerr != nil {
				return nil, errors.Wrapf(ErrInvalidYAML, "line %d: %v", n.Line, err)
			}

			return NewScalar(u), nil
		}

		if i == int64(int(i)) {
			return NewScalar(int(i)), nil
		}

		return NewScalar(i), nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, errors.Wrapf(ErrInvalidYAML, "line %d: %v", n.Line, err)
	}

	return NewScalar(v), nil
}

// FromInterface converts plain Go values (as produced by yaml or json
// unmarshaling into any) to a Value. Map keys are formatted with %v-like
// rules; map iteration order is not preserved.
//
//nolint:ireturn // variant interface
func FromInterface(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t.Clone()
	case map[string]any:
		m := NewMapping()
		for k, item := range t {
			m.Set(k, FromInterface(item))
		}

		return m
	case map[any]any:
		m := NewMapping()
		for k, item := range t {
			m.Set(keyString(k), FromInterface(item))
		}

		return m
	case []any:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = FromInterface(item)
		}

		return seq
	case []string:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = NewScalar(item)
		}

		return seq
	default:
		return NewScalar(t)
	}
}

func keyString(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return NewScalar(t).String()
	}
}
