package schema

import (
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"

	"github.com/smykla-skalski/netsettings/internal/yamltree"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// DecoderConfig returns the mapstructure config used to turn validated
// settings into typed values. Field names follow the json tags.
func DecoderConfig(result any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
		),
		TagName: "json",
		Result:  result,
	}
}

// Decode decodes doc into out, which must be a pointer.
func Decode(doc yamltree.Value, out any) error {
	dec, err := mapstructure.NewDecoder(DecoderConfig(out))
	if err != nil {
		return errors.Wrap(err, "creating decoder")
	}

	var input any = map[string]any{}
	if doc != nil {
		input = doc.Interface()
	}

	if err := dec.Decode(input); err != nil {
		return errors.Wrap(err, "decoding settings")
	}

	return nil
}

// DecodeDevice decodes validated device settings.
func DecodeDevice(doc yamltree.Value) (*settings.DeviceSettings, error) {
	var out settings.DeviceSettings
	if err := Decode(doc, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DecodeGroups decodes a validated groups document.
func DecodeGroups(doc yamltree.Value) (*settings.GroupSettings, error) {
	var out settings.GroupSettings
	if err := Decode(doc, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
