// Package schema generates JSON Schema from the typed settings model,
// validates merged settings against it and decodes them into typed values.
package schema

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/smykla-skalski/netsettings/pkg/settings"
)

const (
	baseSchemaID = "https://github.com/smykla-skalski/netsettings/schema"
	titlePrefix  = "netsettings "
)

// Kind selects the document shape a schema describes.
type Kind int

const (
	// KindDevice is the merged device settings document.
	KindDevice Kind = iota

	// KindGroups is the global groups document.
	KindGroups
)

// String returns the kind name used in titles and file names.
func (k Kind) String() string {
	if k == KindGroups {
		return "groups"
	}

	return "device"
}

func (k Kind) model() any {
	if k == KindGroups {
		return &settings.GroupSettings{}
	}

	return &settings.DeviceSettings{}
}

// Generate produces a JSON Schema for kind. Unknown properties are allowed.
func Generate(kind Kind) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
		BaseSchemaID:              baseSchemaID,
	}

	s := r.Reflect(kind.model())
	s.Title = titlePrefix + kind.String() + " settings"

	return s
}

// GenerateJSON produces the JSON Schema for kind as bytes.
// When indent is true, the output is pretty-printed.
func GenerateJSON(kind Kind, indent bool) ([]byte, error) {
	s := Generate(kind)

	var (
		data []byte
		err  error
	)

	if indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}

	if err != nil {
		return nil, errors.Wrap(err, "marshaling schema to JSON")
	}

	return append(data, '\n'), nil
}

// Filename returns the file name the schema for kind is published under.
func Filename(kind Kind) string {
	return "netsettings-" + kind.String() + ".schema.json"
}
