package button

import "strings"

// BaseClass is the first token of every button class attribute.
const BaseClass = "in-button"

// StatePrefix precedes state values. State is the only kind rendered
// without its name.
const StatePrefix = "--"

// Token returns the class token for value of the given kind, following the
// stylesheet grammar: "-<kind>-<value>" for every kind except state, which
// is "--<value>".
func Token(kind, value string) string {
	if kind == KindState {
		return StatePrefix + value
	}
	return "-" + kind + "-" + value
}

// Tokens returns the class tokens of s, starting with BaseClass and followed
// by one token per set field in Kinds order.
func (s Style) Tokens() []string {
	tokens := make([]string, 1, len(Kinds())+1)
	tokens[0] = BaseClass
	for _, kind := range Kinds() {
		if v := s.Get(kind); v != "" {
			tokens = append(tokens, Token(kind, v))
		}
	}
	return tokens
}

// Classes returns the space-joined class attribute for s.
func (s Style) Classes() string {
	return strings.Join(s.Tokens(), " ")
}
