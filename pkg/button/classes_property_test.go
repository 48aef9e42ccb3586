//go:build property
// +build property

package button

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// optional generates either "" (unset) or one of the values of kind.
func optional(kind string) gopter.Gen {
	choices := []interface{}{""}
	for _, v := range Values(kind) {
		choices = append(choices, v)
	}
	return gen.OneConstOf(choices...)
}

func styleFrom(t *testing.T, values []string) Style {
	var s Style
	for i, kind := range Kinds() {
		if err := s.Set(kind, values[i]); err != nil {
			t.Fatalf("set %s=%q: %v", kind, values[i], err)
		}
	}
	return s
}

// TestClassProperties checks the class derivation for every combination of
// optional fields.
func TestClassProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	gens := []gopter.Gen{
		optional(KindAppearance),
		optional(KindBrightness),
		optional(KindColor),
		optional(KindShape),
		optional(KindSize),
		optional(KindState),
		optional(KindWidth),
	}

	// Property: the first token is always the base class
	properties.Property("starts with base class", prop.ForAll(
		func(a, b, c, sh, sz, st, w string) bool {
			s := styleFrom(t, []string{a, b, c, sh, sz, st, w})
			return strings.HasPrefix(s.Classes(), BaseClass) && s.Tokens()[0] == BaseClass
		},
		gens...,
	))

	// Property: exactly one token per provided field, in kind order
	properties.Property("one token per field in order", prop.ForAll(
		func(a, b, c, sh, sz, st, w string) bool {
			values := []string{a, b, c, sh, sz, st, w}
			s := styleFrom(t, values)

			expected := []string{BaseClass}
			for i, kind := range Kinds() {
				if values[i] != "" {
					expected = append(expected, Token(kind, values[i]))
				}
			}
			return strings.Join(expected, " ") == s.Classes()
		},
		gens...,
	))

	// Property: the state token never carries a kind infix
	properties.Property("state has no infix", prop.ForAll(
		func(a, b, c, sh, sz, st, w string) bool {
			s := styleFrom(t, []string{a, b, c, sh, sz, st, w})
			return !strings.Contains(s.Classes(), "-state-")
		},
		gens...,
	))

	// Property: class derivation is deterministic
	properties.Property("deterministic", prop.ForAll(
		func(a, b, c, sh, sz, st, w string) bool {
			s := styleFrom(t, []string{a, b, c, sh, sz, st, w})
			return s.Classes() == s.Classes()
		},
		gens...,
	))

	properties.TestingRun(t)
}
