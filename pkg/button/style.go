package button

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is wrapped by every ValueError.
var ErrUnknownValue = errors.New("unknown style value")

// ValueError reports a string that does not belong to the closed set of a
// style kind.
type ValueError struct {
	Kind  string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid %s", ErrUnknownValue, e.Value, e.Kind)
}

func (e *ValueError) Unwrap() error {
	return ErrUnknownValue
}

// Style kinds, in class token order.
const (
	KindAppearance = "appearance"
	KindBrightness = "brightness"
	KindColor      = "color"
	KindShape      = "shape"
	KindSize       = "size"
	KindState      = "state"
	KindWidth      = "width"
)

// Kinds returns every style kind in the order their tokens appear in the
// class attribute.
func Kinds() []string {
	return []string{KindAppearance, KindBrightness, KindColor, KindShape, KindSize, KindState, KindWidth}
}

// value is the shared representation of every closed style type. The field
// is unexported so values can only come from the declared sets or the Parse
// functions.
type value struct {
	name string
}

// String returns the raw value, or "" when the field is not provided.
func (v value) String() string { return v.name }

// IsZero reports whether the field was left unset.
func (v value) IsZero() bool { return v.name == "" }

type (
	Appearance struct{ value }
	Brightness struct{ value }
	Color      struct{ value }
	Shape      struct{ value }
	Size       struct{ value }
	State      struct{ value }
	Width      struct{ value }
)

var (
	AppearanceFlat        = Appearance{value{"flat"}}
	AppearanceOutlined    = Appearance{value{"outlined"}}
	AppearanceSolid       = Appearance{value{"solid"}}
	AppearanceWhite       = Appearance{value{"white"}}
	AppearanceTransparent = Appearance{value{"transparent"}}
	AppearanceHollow      = Appearance{value{"hollow"}}
)

var (
	BrightnessLighter = Brightness{value{"lighter"}}
	BrightnessLight   = Brightness{value{"light"}}
	BrightnessNormal  = Brightness{value{"normal"}}
	BrightnessDark    = Brightness{value{"dark"}}
	BrightnessDarker  = Brightness{value{"darker"}}
)

// Semantic colors (neutral, negative) and implication colors (interactive,
// favorite) share one kind.
var (
	ColorNeutral     = Color{value{"neutral"}}
	ColorNegative    = Color{value{"negative"}}
	ColorInteractive = Color{value{"interactive"}}
	ColorFavorite    = Color{value{"favorite"}}
)

var (
	ShapeSquare  = Shape{value{"square"}}
	ShapeRounded = Shape{value{"rounded"}}
	ShapePill    = Shape{value{"pill"}}
	ShapeCircle  = Shape{value{"circle"}}
)

var (
	SizeXS = Size{value{"xs"}}
	SizeS  = Size{value{"s"}}
	SizeM  = Size{value{"m"}}
	SizeL  = Size{value{"l"}}
	SizeXL = Size{value{"xl"}}
)

var (
	StateEnabled  = State{value{"enabled"}}
	StateHover    = State{value{"hover"}}
	StateFocused  = State{value{"focused"}}
	StateDisabled = State{value{"disabled"}}
)

var (
	WidthAuto = Width{value{"auto"}}
	WidthFit  = Width{value{"fit"}}
	WidthFull = Width{value{"full"}}
)

// Appearances returns the closed set of appearances.
func Appearances() []Appearance {
	return []Appearance{AppearanceFlat, AppearanceOutlined, AppearanceSolid, AppearanceWhite, AppearanceTransparent, AppearanceHollow}
}

// Brightnesses returns the closed set of brightness levels.
func Brightnesses() []Brightness {
	return []Brightness{BrightnessLighter, BrightnessLight, BrightnessNormal, BrightnessDark, BrightnessDarker}
}

// Colors returns the closed set of colors.
func Colors() []Color {
	return []Color{ColorNeutral, ColorNegative, ColorInteractive, ColorFavorite}
}

// Shapes returns the closed set of shapes.
func Shapes() []Shape {
	return []Shape{ShapeSquare, ShapeRounded, ShapePill, ShapeCircle}
}

// Sizes returns the closed set of sizes, smallest first.
func Sizes() []Size {
	return []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL}
}

// States returns the closed set of interaction states.
func States() []State {
	return []State{StateEnabled, StateHover, StateFocused, StateDisabled}
}

// Widths returns the closed set of widths.
func Widths() []Width {
	return []Width{WidthAuto, WidthFit, WidthFull}
}

// Values returns the raw strings accepted for kind, or nil for an unknown
// kind.
func Values(kind string) []string {
	switch kind {
	case KindAppearance:
		return names(Appearances())
	case KindBrightness:
		return names(Brightnesses())
	case KindColor:
		return names(Colors())
	case KindShape:
		return names(Shapes())
	case KindSize:
		return names(Sizes())
	case KindState:
		return names(States())
	case KindWidth:
		return names(Widths())
	}
	return nil
}

func names[T fmt.Stringer](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = v.String()
	}
	return out
}

// lookup matches s against set. The empty string is the unset value.
func lookup[T fmt.Stringer](kind, s string, set []T) (T, error) {
	var zero T
	s = strings.TrimSpace(s)
	if s == "" {
		return zero, nil
	}
	for _, v := range set {
		if v.String() == s {
			return v, nil
		}
	}
	return zero, &ValueError{Kind: kind, Value: s}
}

// ParseAppearance parses s into an Appearance. The empty string yields the
// unset value.
func ParseAppearance(s string) (Appearance, error) {
	return lookup(KindAppearance, s, Appearances())
}

// ParseBrightness parses s into a Brightness.
func ParseBrightness(s string) (Brightness, error) {
	return lookup(KindBrightness, s, Brightnesses())
}

// ParseColor parses s into a Color.
func ParseColor(s string) (Color, error) {
	return lookup(KindColor, s, Colors())
}

// ParseShape parses s into a Shape.
func ParseShape(s string) (Shape, error) {
	return lookup(KindShape, s, Shapes())
}

// ParseSize parses s into a Size.
func ParseSize(s string) (Size, error) {
	return lookup(KindSize, s, Sizes())
}

// ParseState parses s into a State.
func ParseState(s string) (State, error) {
	return lookup(KindState, s, States())
}

// ParseWidth parses s into a Width.
func ParseWidth(s string) (Width, error) {
	return lookup(KindWidth, s, Widths())
}

// Style is the style descriptor of a single render: every field is optional
// and an unset field contributes no class token.
type Style struct {
	Appearance Appearance
	Brightness Brightness
	Color      Color
	Shape      Shape
	Size       Size
	State      State
	Width      Width
}

// Set parses value and assigns it to the field named by kind. An empty value
// clears the field.
func (s *Style) Set(kind, value string) error {
	var err error
	switch kind {
	case KindAppearance:
		s.Appearance, err = ParseAppearance(value)
	case KindBrightness:
		s.Brightness, err = ParseBrightness(value)
	case KindColor:
		s.Color, err = ParseColor(value)
	case KindShape:
		s.Shape, err = ParseShape(value)
	case KindSize:
		s.Size, err = ParseSize(value)
	case KindState:
		s.State, err = ParseState(value)
	case KindWidth:
		s.Width, err = ParseWidth(value)
	default:
		return fmt.Errorf("unknown style kind %q", kind)
	}
	return err
}

// Get returns the raw value of the field named by kind.
func (s Style) Get(kind string) string {
	switch kind {
	case KindAppearance:
		return s.Appearance.String()
	case KindBrightness:
		return s.Brightness.String()
	case KindColor:
		return s.Color.String()
	case KindShape:
		return s.Shape.String()
	case KindSize:
		return s.Size.String()
	case KindState:
		return s.State.String()
	case KindWidth:
		return s.Width.String()
	}
	return ""
}

// ParseStyle builds a Style from kind/value pairs. Keys that are not style
// kinds are ignored so callers can pass a mixed map.
func ParseStyle(values map[string]string) (Style, error) {
	var s Style
	for _, kind := range Kinds() {
		v, ok := values[kind]
		if !ok {
			continue
		}
		if err := s.Set(kind, v); err != nil {
			return Style{}, err
		}
	}
	return s, nil
}

// Merge returns s with every field set in override replacing the
// corresponding field of s.
func (s Style) Merge(override Style) Style {
	for _, kind := range Kinds() {
		if v := override.Get(kind); v != "" {
			// v came from a valid Style, so Set cannot fail.
			_ = s.Set(kind, v)
		}
	}
	return s
}
