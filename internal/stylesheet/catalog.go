// Package stylesheet describes the class-token grammar the Button emits and
// checks stylesheets against it.
//
// The grammar is: the base class "in-button", "-<kind>-<value>" for every
// kind except state, and "--<value>" for state. The catalog enumerates every
// token the closed style sets can produce; Generate writes a CSS skeleton
// with one rule per token and Lint reports which tokens a stylesheet defines,
// which it misses, and which grammar-shaped classes can never be emitted.
package stylesheet

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/inkit/pkg/button"
)

// KindBase labels the base class entry of the catalog.
const KindBase = "base"

// Entry is one class token the Button can emit.
type Entry struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Class string `json:"class" yaml:"class"`
}

// Selector returns the compound selector matching a button carrying the
// token.
func (e Entry) Selector() string {
	if e.Kind == KindBase {
		return "." + button.BaseClass
	}
	return "." + button.BaseClass + "." + e.Class
}

// Catalog returns every token, base class first, then kinds in class order.
func Catalog() []Entry {
	entries := []Entry{{Kind: KindBase, Class: button.BaseClass}}
	for _, kind := range button.Kinds() {
		for _, v := range button.Values(kind) {
			entries = append(entries, Entry{Kind: kind, Value: v, Class: button.Token(kind, v)})
		}
	}
	return entries
}

// Prefix returns the class prefix shared by every token of kind.
func Prefix(kind string) string {
	return button.Token(kind, "")
}

// KindTokens groups the tokens of one kind for the manifest.
type KindTokens struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Prefix  string   `json:"prefix" yaml:"prefix"`
	Values  []string `json:"values" yaml:"values"`
	Classes []string `json:"classes" yaml:"classes"`
}

// Manifest is the machine-readable token catalog.
type Manifest struct {
	Base  string       `json:"base" yaml:"base"`
	Kinds []KindTokens `json:"kinds" yaml:"kinds"`
}

// NewManifest builds the manifest from the closed style sets.
func NewManifest() Manifest {
	m := Manifest{Base: button.BaseClass}
	for _, kind := range button.Kinds() {
		kt := KindTokens{Kind: kind, Prefix: Prefix(kind), Values: button.Values(kind)}
		for _, v := range kt.Values {
			kt.Classes = append(kt.Classes, button.Token(kind, v))
		}
		m.Kinds = append(m.Kinds, kt)
	}
	return m
}

// Formats supported by WriteManifest.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteManifest writes the manifest in the given format.
func WriteManifest(w io.Writer, format string) error {
	m := NewManifest()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		if _, err := fmt.Fprintf(w, "%-12s %s\n", KindBase, m.Base); err != nil {
			return err
		}
		for _, kt := range m.Kinds {
			for _, class := range kt.Classes {
				if _, err := fmt.Fprintf(w, "%-12s %s\n", kt.Kind, class); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", format)
	}
}
