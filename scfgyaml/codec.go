package scfgyaml

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"scfg"
)

// ToYAML renders s as YAML text. Block names sort lexically within the
// top-level blocks mapping (yaml.v3 sorts map keys), giving a stable,
// byte-identical round trip for a given graph.
func ToYAML(s *scfg.SCFG) ([]byte, error) {
	out, err := yaml.Marshal(encodeSCFG(s))
	if err != nil {
		return nil, fmt.Errorf("scfgyaml: marshal yaml: %w", err)
	}
	return out, nil
}

// FromYAML parses YAML text produced by ToYAML (or an equivalent
// hand-written fixture) into a fresh SCFG with its own name generator.
func FromYAML(data []byte) (*scfg.SCFG, error) {
	var w wireSCFG
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("scfgyaml: unmarshal yaml: %w", err)
	}
	return decodeSCFG(&w, scfg.NewNameGenerator())
}

// ToDict renders s as a map[string]any tree, the same shape ToYAML
// produces once parsed back through a YAML decoder into generic Go
// values. Front ends that want to embed a graph inside a larger
// structure (rather than a standalone YAML document) use this form.
func ToDict(s *scfg.SCFG) (map[string]any, error) {
	raw, err := yaml.Marshal(encodeSCFG(s))
	if err != nil {
		return nil, fmt.Errorf("scfgyaml: marshal dict: %w", err)
	}
	var dict map[string]any
	if err := yaml.Unmarshal(raw, &dict); err != nil {
		return nil, fmt.Errorf("scfgyaml: decode dict: %w", err)
	}
	return dict, nil
}

// FromDict is the inverse of ToDict.
func FromDict(dict map[string]any) (*scfg.SCFG, error) {
	raw, err := yaml.Marshal(dict)
	if err != nil {
		return nil, fmt.Errorf("scfgyaml: encode dict: %w", err)
	}
	return FromYAML(raw)
}

// BinaryMarshal encodes s as msgpack, a compact binary form for snapshotting
// a graph without YAML's text overhead.
func BinaryMarshal(s *scfg.SCFG) ([]byte, error) {
	out, err := msgpack.Marshal(encodeSCFG(s))
	if err != nil {
		return nil, fmt.Errorf("scfgyaml: marshal msgpack: %w", err)
	}
	return out, nil
}

// BinaryUnmarshal is the inverse of BinaryMarshal.
func BinaryUnmarshal(data []byte) (*scfg.SCFG, error) {
	var w wireSCFG
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("scfgyaml: unmarshal msgpack: %w", err)
	}
	return decodeSCFG(&w, scfg.NewNameGenerator())
}
