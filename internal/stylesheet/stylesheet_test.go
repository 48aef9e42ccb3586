package stylesheet

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/pkg/button"
)

func TestCatalog(t *testing.T) {
	entries := Catalog()
	require.NotEmpty(t, entries)
	assert.Equal(t, Entry{Kind: KindBase, Class: "in-button"}, entries[0])

	total := 1
	for _, kind := range button.Kinds() {
		total += len(button.Values(kind))
	}
	assert.Len(t, entries, total)

	classes := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, classes[e.Class], "duplicate class %s", e.Class)
		classes[e.Class] = true
	}
	assert.True(t, classes["-appearance-solid"])
	assert.True(t, classes["--disabled"])
	assert.True(t, classes["-width-full"])
	assert.False(t, classes["-state-disabled"])
}

func TestEntrySelector(t *testing.T) {
	assert.Equal(t, ".in-button", Entry{Kind: KindBase, Class: "in-button"}.Selector())
	assert.Equal(t, ".in-button.-size-m", Entry{Kind: "size", Value: "m", Class: "-size-m"}.Selector())
	assert.Equal(t, ".in-button.--hover", Entry{Kind: "state", Value: "hover", Class: "--hover"}.Selector())
}

func TestWriteManifest(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteManifest(&buf, FormatJSON))

		var m Manifest
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, NewManifest(), m)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteManifest(&buf, FormatYAML))

		var m Manifest
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, "in-button", m.Base)
		require.Len(t, m.Kinds, len(button.Kinds()))
		assert.Equal(t, "--", m.Kinds[5].Prefix)
		assert.Equal(t, []string{"--enabled", "--hover", "--focused", "--disabled"}, m.Kinds[5].Classes)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteManifest(&buf, FormatText))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Len(t, lines, len(Catalog()))
		assert.Contains(t, lines[0], "in-button")
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, WriteManifest(&bytes.Buffer{}, "toml"))
	})
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, GenerateOptions{Header: "Button tokens"}))
	css := buf.String()

	assert.True(t, strings.HasPrefix(css, "/* Button tokens */"))
	assert.Contains(t, css, "/* Appearance */")
	assert.Contains(t, css, ".in-button.-appearance-hollow {\n}")
	assert.Contains(t, css, ".in-button.--focused {\n}")

	// a generated skeleton lints clean
	report, err := Lint("skeleton.css", css)
	require.NoError(t, err)
	assert.True(t, report.OK(), "missing=%v unknown=%v", report.Missing, report.Unknown)
	assert.Equal(t, 1.0, report.Coverage())
}

func TestGenerateSelectedKinds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, GenerateOptions{Kinds: []string{"size"}}))
	css := buf.String()

	assert.Contains(t, css, ".in-button {")
	assert.Contains(t, css, ".in-button.-size-xl")
	assert.NotContains(t, css, "-appearance-")
}

func TestClasses(t *testing.T) {
	css := `/* .commented-out { } */
.in-button { display: inline-flex; padding: .5em 1em; }
.in-button.-size-m, .in-button.--disabled:hover { font-size: 1.5rem; }
a.link > .icon { background: url("a.b.png"); }
`
	refs, err := Classes(css)
	require.NoError(t, err)

	var names []string
	for _, r := range refs {
		names = append(names, r.Class)
	}
	assert.Equal(t, []string{"in-button", "in-button", "-size-m", "in-button", "--disabled", "link", "icon"}, names)
	assert.Equal(t, 2, refs[0].Line)
}

func TestUnescapeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-size-m", "-size-m"},
		{`-size-\6d `, "-size-m"},
		{`-size-\6D`, "-size-m"},
		{`\-\-disabled`, "--disabled"},
		{`-brightness-\31 x`, "-brightness-1x"},
		{`-brightness-\000031x`, "-brightness-1x"},
		{`a\\b`, `a\b`},
		{`\0 x`, "\uFFFDx"},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeIdent(tt.in))
		})
	}
}

func TestLintUnescapesClassNames(t *testing.T) {
	css := `.in-button.-size-\6d { }
.\-\-disabled { }
.-brightness-\31 x { }
`
	report, err := Lint("escaped.css", css)
	require.NoError(t, err)
	assert.Equal(t, []string{"in-button", "-size-m", "--disabled"}, report.Defined)
	require.Len(t, report.Unknown, 1)
	assert.Equal(t, "-brightness-1x", report.Unknown[0].Class)
	assert.Equal(t, 3, report.Unknown[0].Line)
}

func TestClassesUnclosedComment(t *testing.T) {
	_, err := Classes(".in-button { } /* never closed")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestLint(t *testing.T) {
	css := `.in-button {}
.in-button.-appearance-solid {}
.in-button.-size-m {}
.in-button.--disabled {}
.in-button.-size-xxl {}
.in-button.--pressed {}
.in-button.--pressed:focus {}
.unrelated {}
`
	report, err := Lint("button.css", css)
	require.NoError(t, err)

	assert.Equal(t, []string{"in-button", "-appearance-solid", "-size-m", "--disabled"}, report.Defined)
	assert.Contains(t, report.Missing, "-size-xl")
	assert.NotContains(t, report.Missing, "-size-m")
	assert.False(t, report.OK())

	require.Len(t, report.Unknown, 2)
	assert.Equal(t, "-size-xxl", report.Unknown[0].Class)
	assert.Equal(t, 5, report.Unknown[0].Line)
	assert.Equal(t, "--pressed", report.Unknown[1].Class)

	issues := report.Issues()
	require.Len(t, issues, len(report.Unknown)+len(report.Missing))
	assert.Equal(t, errors.SeverityError, issues[0].Severity)
	assert.Equal(t, "button.css", issues[0].File)
	assert.Equal(t, errors.SeverityWarning, issues[len(issues)-1].Severity)

	assert.InDelta(t, 4.0/float64(len(Catalog())), report.Coverage(), 1e-9)
}

func TestLintParseErrorCarriesFile(t *testing.T) {
	_, err := Lint("broken.css", `.in-button { content: "unclosed }`)
	require.Error(t, err)

	var ie *errors.InkitError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "broken.css", ie.FilePath)
	assert.Equal(t, errors.ErrCodeStylesheetParse, ie.Code)
}

func TestShippedStylesheet(t *testing.T) {
	path := filepath.Join("..", "..", "styles", "button.css")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	report, err := Lint(path, string(data))
	require.NoError(t, err)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Unknown)
	assert.True(t, report.OK())
}
