package yamltree

import (
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToNode converts v to a yaml.v3 node, keeping mapping key order.
func ToNode(v Value) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

		t.Each(func(k string, item Value) bool {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ToNode(item),
			)

			return true
		})

		return n
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			n.Content = append(n.Content, ToNode(item))
		}

		return n
	case *Scalar:
		return scalarNode(t)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func scalarNode(s *Scalar) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}

	switch t := s.V.(type) {
	case nil:
		n.Tag, n.Value = "!!null", "null"
	case string:
		n.Tag, n.Value = "!!str", t
	case bool:
		n.Tag, n.Value = "!!bool", strconv.FormatBool(t)
	case int, int64, uint64:
		n.Tag, n.Value = "!!int", s.String()
	case float64:
		n.Tag, n.Value = "!!float", strconv.FormatFloat(t, 'g', -1, 64)
	default:
		n.Tag, n.Value = "!!str", s.String()
	}

	return n
}

// Marshal renders v as a YAML document.
func Marshal(v Value) ([]byte, error) {
	return yaml.Marshal(ToNode(v))
}

// Format renders v on one line for diagnostics: scalars with %v, other
// values as JSON.
func Format(v Value) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case *Scalar:
		return t.String()
	default:
		data, err := json.Marshal(t.Interface())
		if err != nil {
			return t.Kind().String()
		}

		return string(data)
	}
}

// JSONCompatible converts v to the value space encoding/json produces when
// decoding into any: numbers become json.Number.
func JSONCompatible(v Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Mapping:
		out := make(map[string]any, t.Len())

		t.Each(func(k string, item Value) bool {
			out[k] = JSONCompatible(item)

			return true
		})

		return out
	case Sequence:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = JSONCompatible(item)
		}

		return out
	case *Scalar:
		switch n := t.V.(type) {
		case int, int64, uint64:
			return json.Number(t.String())
		case float64:
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return t.String()
			}

			return json.Number(strconv.FormatFloat(n, 'g', -1, 64))
		default:
			return t.V
		}
	default:
		return nil
	}
}
