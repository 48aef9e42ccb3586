package button

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleClasses(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		expected string
	}{
		{
			name:     "no style fields",
			style:    Style{},
			expected: "in-button",
		},
		{
			name: "appearance size and state",
			style: Style{
				Appearance: AppearanceSolid,
				Size:       SizeM,
				State:      StateDisabled,
			},
			expected: "in-button -appearance-solid -size-m --disabled",
		},
		{
			name: "color and width",
			style: Style{
				Color: ColorInteractive,
				Width: WidthFull,
			},
			expected: "in-button -color-interactive -width-full",
		},
		{
			name: "every field",
			style: Style{
				Width:      WidthFit,
				State:      StateHover,
				Size:       SizeXL,
				Shape:      ShapePill,
				Color:      ColorNeutral,
				Brightness: BrightnessDark,
				Appearance: AppearanceFlat,
			},
			expected: "in-button -appearance-flat -brightness-dark -color-neutral -shape-pill -size-xl --hover -width-fit",
		},
		{
			name:     "state only",
			style:    Style{State: StateFocused},
			expected: "in-button --focused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.style.Classes())
		})
	}
}

func TestStateTokenHasNoKindInfix(t *testing.T) {
	for _, st := range States() {
		tokens := Style{State: st}.Tokens()
		require.Len(t, tokens, 2)
		assert.Equal(t, "--"+st.String(), tokens[1])
		assert.NotContains(t, tokens[1], "-state-")
	}
}

func TestToken(t *testing.T) {
	assert.Equal(t, "-size-m", Token(KindSize, "m"))
	assert.Equal(t, "-appearance-hollow", Token(KindAppearance, "hollow"))
	assert.Equal(t, "--enabled", Token(KindState, "enabled"))
}

func TestParseFunctions(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		a, err := ParseAppearance("outlined")
		require.NoError(t, err)
		assert.Equal(t, AppearanceOutlined, a)

		s, err := ParseSize(" xs ")
		require.NoError(t, err)
		assert.Equal(t, SizeXS, s)

		st, err := ParseState("disabled")
		require.NoError(t, err)
		assert.Equal(t, StateDisabled, st)
	})

	t.Run("empty is unset", func(t *testing.T) {
		c, err := ParseColor("")
		require.NoError(t, err)
		assert.True(t, c.IsZero())
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := ParseSize("medium")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownValue))

		var ve *ValueError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, KindSize, ve.Kind)
		assert.Equal(t, "medium", ve.Value)
		assert.Contains(t, err.Error(), `"medium"`)
	})

	t.Run("values are case sensitive", func(t *testing.T) {
		_, err := ParseColor("Neutral")
		assert.ErrorIs(t, err, ErrUnknownValue)
	})
}

func TestStyleSet(t *testing.T) {
	var s Style
	require.NoError(t, s.Set(KindBrightness, "lighter"))
	require.NoError(t, s.Set(KindShape, "circle"))
	assert.Equal(t, "in-button -brightness-lighter -shape-circle", s.Classes())

	require.NoError(t, s.Set(KindShape, ""))
	assert.Equal(t, "in-button -brightness-lighter", s.Classes())

	assert.Error(t, s.Set("weight", "bold"))
	assert.ErrorIs(t, s.Set(KindWidth, "half"), ErrUnknownValue)
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle(map[string]string{
		"appearance": "solid",
		"size":       "m",
		"state":      "disabled",
		"body":       "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "in-button -appearance-solid -size-m --disabled", s.Classes())

	_, err = ParseStyle(map[string]string{"color": "purple"})
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestStyleMerge(t *testing.T) {
	base := Style{Appearance: AppearanceSolid, Size: SizeM}
	merged := base.Merge(Style{Size: SizeL, State: StateHover})

	assert.Equal(t, "in-button -appearance-solid -size-l --hover", merged.Classes())
	assert.Equal(t, SizeM, base.Size, "merge must not modify the receiver")
}

func TestValuesCoverEveryKind(t *testing.T) {
	for _, kind := range Kinds() {
		values := Values(kind)
		assert.NotEmpty(t, values, kind)
		for _, v := range values {
			var s Style
			require.NoError(t, s.Set(kind, v))
			assert.Equal(t, v, s.Get(kind))
		}
	}
	assert.Nil(t, Values("weight"))
}
