// SPDX-License-Identifier: MIT

package knowledge

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind selects the engine a document configures.
type Kind string

const (
	KindCertainty Kind = "certainty"
	KindFuzzy     Kind = "fuzzy"
	KindProfiles  Kind = "profiles"
)

// SniffKind reads only the "kind" field of a document.
func SniffKind(data []byte) (Kind, error) {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	switch k := Kind(head.Kind); k {
	case KindCertainty, KindFuzzy, KindProfiles:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, head.Kind)
	}
}

// decodeStrict decodes one document, rejecting unknown fields.
func decodeStrict(data []byte, want Kind, v any) error {
	k, err := SniffKind(data)
	if err != nil {
		return err
	}
	if k != want {
		return fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, want, k)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}
