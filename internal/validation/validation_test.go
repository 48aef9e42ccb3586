package validation

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		want      string
		expectErr bool
	}{
		{name: "relative", path: "styles/button.css", want: filepath.Join("styles", "button.css")},
		{name: "cleaned", path: "styles/./button.css", want: filepath.Join("styles", "button.css")},
		{name: "absolute", path: "/tmp/button.css", want: "/tmp/button.css"},
		{name: "dots in name", path: "button..css", want: "button..css"},
		{name: "empty", path: "", expectErr: true},
		{name: "blank", path: "   ", expectErr: true},
		{name: "parent", path: "../button.css", expectErr: true},
		{name: "nested parent", path: "styles/../../etc", expectErr: true},
		{name: "semicolon", path: "button.css;ls", expectErr: true},
		{name: "backtick", path: "`id`.css", expectErr: true},
		{name: "redirect", path: "a>b.css", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		expectErr bool
	}{
		{name: "valid http URL", url: "http://localhost:8080"},
		{name: "valid https URL", url: "https://example.com/path?x=1"},
		{name: "loopback", url: "http://127.0.0.1:3000"},
		{name: "javascript scheme", url: "javascript:alert(1)", expectErr: true},
		{name: "file scheme", url: "file:///etc/passwd", expectErr: true},
		{name: "no host", url: "http://", expectErr: true},
		{name: "command injection", url: "http://localhost:8080;rm -rf /", expectErr: true},
		{name: "quote", url: "http://localhost/\"", expectErr: true},
		{name: "space", url: "http://local host", expectErr: true},
		{name: "newline", url: "http://localhost/\nx", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOrigin(t *testing.T) {
	allowed := []string{"https://docs.example.com", "localhost:8080"}

	assert.NoError(t, ValidateOrigin("https://docs.example.com", allowed))
	assert.NoError(t, ValidateOrigin("http://localhost:8080", allowed))
	assert.NoError(t, ValidateOrigin("https://localhost:8080", allowed))

	assert.Error(t, ValidateOrigin("", allowed))
	assert.Error(t, ValidateOrigin("http://localhost:9090", allowed))
	assert.Error(t, ValidateOrigin("http://docs.example.com", allowed), "scheme is part of a full origin")
	assert.Error(t, ValidateOrigin("ws://localhost:8080", allowed))
	assert.Error(t, ValidateOrigin("null", allowed))
	assert.Error(t, ValidateOrigin("http://evil.com", nil))
}

func FuzzValidatePath(f *testing.F) {
	for _, seed := range []string{"styles/button.css", "../etc/passwd", "a/../../b", "x;y", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, path string) {
		clean, err := ValidatePath(path)
		if err != nil {
			return
		}
		for _, part := range strings.Split(filepath.ToSlash(clean), "/") {
			if part == ".." {
				t.Fatalf("accepted traversal %q", path)
			}
		}
		if _, err := ValidatePath(clean); err != nil {
			t.Fatalf("cleaned path %q rejected: %v", clean, err)
		}
	})
}
