// Package translate converts schema documents between YAML and TOML.
package translate

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/reqy/internal/errors"
)

// YAMLToTOML converts a YAML (or JSON) document to TOML. The top level must
// be a mapping because TOML has no other document shape.
func YAMLToTOML(yamlData []byte) ([]byte, error) {
	var data any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	if _, ok := data.(map[string]any); !ok {
		return nil, errors.Newf("cannot convert %T to TOML: top level must be a mapping", data)
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

// TOMLToYAML converts a TOML document to YAML. TOML tables carry no key
// order once decoded, so mappings come out sorted by key.
func TOMLToYAML(tomlData []byte) ([]byte, error) {
	var data map[string]any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}
