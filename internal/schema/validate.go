package schema

import (
	"bytes"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/smykla-skalski/netsettings/internal/yamltree"
)

// Violation is one schema failure.
type Violation struct {
	// Loc is the path to the offending value, one segment per mapping key
	// or sequence index.
	Loc []string

	// Message describes the failure.
	Message string
}

// Path joins Loc with "->".
func (v Violation) Path() string {
	return strings.Join(v.Loc, "->")
}

type compiled struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var compiledSchemas = map[Kind]*compiled{
	KindDevice: {},
	KindGroups: {},
}

// Compile returns the compiled validator for kind.
func Compile(kind Kind) (*jsonschema.Schema, error) {
	c, ok := compiledSchemas[kind]
	if !ok {
		return nil, errors.Newf("unknown schema kind %d", kind)
	}

	c.once.Do(func() {
		c.schema, c.err = compile(kind)
	})

	return c.schema, c.err
}

func compile(kind Kind) (*jsonschema.Schema, error) {
	s := Generate(kind)

	data, err := GenerateJSON(kind, false)
	if err != nil {
		return nil, err
	}

	url := s.ID.String()

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true

	if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, errors.Wrapf(err, "adding %s schema", kind)
	}

	sch, err := c.Compile(url)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling %s schema", kind)
	}

	return sch, nil
}

// Validate checks doc against the schema for kind. It returns the
// violations sorted by location; the error is reserved for schema
// compilation failures.
func Validate(kind Kind, doc yamltree.Value) ([]Violation, error) {
	sch, err := Compile(kind)
	if err != nil {
		return nil, err
	}

	instance := yamltree.JSONCompatible(doc)
	if instance == nil {
		instance = map[string]any{}
	}

	verr := sch.Validate(instance)
	if verr == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(verr, &ve) {
		return nil, errors.Wrap(verr, "validating settings")
	}

	violations := collect(ve, nil)

	slices.SortStableFunc(violations, func(a, b Violation) int {
		return compareLoc(a.Loc, b.Loc)
	})

	return violations, nil
}

const (
	requiredKeyword = "/required"
	missingPrefix   = "missing properties: "
)

func collect(ve *jsonschema.ValidationError, out []Violation) []Violation {
	if len(ve.Causes) == 0 {
		loc := yamltree.SplitPointer(ve.InstanceLocation)

		if strings.HasSuffix(ve.KeywordLocation, requiredKeyword) {
			if missing := missingProperties(ve.Message); len(missing) > 0 {
				for _, name := range missing {
					out = append(out, Violation{
						Loc:     append(slices.Clone(loc), name),
						Message: "field required",
					})
				}

				return out
			}
		}

		return append(out, Violation{Loc: loc, Message: ve.Message})
	}

	for _, c := range ve.Causes {
		out = collect(c, out)
	}

	return out
}

// missingProperties extracts the property names from a "required" keyword
// message such as "missing properties: 'a', 'b'".
func missingProperties(msg string) []string {
	list, ok := strings.CutPrefix(msg, missingPrefix)
	if !ok {
		return nil
	}

	var names []string

	for quoted := range strings.SplitSeq(list, ", ") {
		name := strings.TrimSuffix(strings.TrimPrefix(quoted, "'"), "'")
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

// compareLoc orders locations segment by segment, comparing sequence
// indexes numerically.
func compareLoc(a, b []string) int {
	for i := range min(len(a), len(b)) {
		if c := compareSegment(a[i], b[i]); c != 0 {
			return c
		}
	}

	return len(a) - len(b)
}

func compareSegment(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)

	if aErr == nil && bErr == nil {
		return ai - bi
	}

	return strings.Compare(a, b)
}
