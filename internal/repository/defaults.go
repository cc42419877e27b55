package repository

import (
	_ "embed"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/netsettings/internal/yamltree"
)

//go:embed data/default_settings.yml
var defaultSettings []byte

// DefaultSettings returns the bundled default settings document.
func DefaultSettings() []byte {
	out := make([]byte, len(defaultSettings))
	copy(out, defaultSettings)

	return out
}

// LoadDefaultSettings parses the default settings layer: the file at path
// when set, the bundled document otherwise.
//
//nolint:ireturn // variant interface
func LoadDefaultSettings(path string) (yamltree.Value, error) {
	if path != "" {
		return yamltree.ParseFile(path)
	}

	v, err := yamltree.Parse(defaultSettings)
	if err != nil {
		return nil, errors.Wrap(err, "parsing bundled default settings")
	}

	return v, nil
}
