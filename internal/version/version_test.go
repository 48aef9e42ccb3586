package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuild(t *testing.T, info *debug.BuildInfo, version, commit, built string) {
	t.Helper()
	oldRead, oldVersion, oldCommit, oldTime := readBuildInfo, Version, GitCommit, BuildTime
	t.Cleanup(func() {
		readBuildInfo, Version, GitCommit, BuildTime = oldRead, oldVersion, oldCommit, oldTime
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	Version, GitCommit, BuildTime = version, commit, built
}

func TestGetVersion(t *testing.T) {
	t.Run("ldflags win", func(t *testing.T) {
		withBuild(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}}, "v1.2.3", "unknown", "unknown")
		assert.Equal(t, "v1.2.3", GetVersion())
		assert.True(t, IsRelease())
	})

	t.Run("module version", func(t *testing.T) {
		withBuild(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}}, "dev", "unknown", "unknown")
		assert.Equal(t, "v0.1.0", GetVersion())
	})

	t.Run("vcs revision", func(t *testing.T) {
		withBuild(t, &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abcdef1234567"}},
		}, "dev", "unknown", "unknown")
		assert.Equal(t, "dev-abcdef1", GetVersion())
		assert.Equal(t, "abcdef1234567", GetGitCommit())
		assert.Equal(t, "dev-abcdef1", GetShortVersion())
		assert.False(t, IsRelease())
	})

	t.Run("nothing known", func(t *testing.T) {
		withBuild(t, nil, "dev", "unknown", "unknown")
		assert.Equal(t, "dev", GetVersion())
		assert.Equal(t, "unknown", GetGitCommit())
		assert.Equal(t, "dev", GetShortVersion())
		assert.Equal(t, "unknown", GetTemplVersion())
	})
}

func TestGetShortVersion(t *testing.T) {
	withBuild(t, nil, "v1.0.0", "0123456789", "unknown")
	assert.Equal(t, "v1.0.0 (0123456)", GetShortVersion())
}

func TestGetTemplVersion(t *testing.T) {
	withBuild(t, &debug.BuildInfo{Deps: []*debug.Module{
		{Path: "github.com/spf13/cobra", Version: "v1.9.1"},
		{Path: "github.com/a-h/templ", Version: "v0.3.960"},
	}}, "dev", "unknown", "unknown")
	assert.Equal(t, "v0.3.960", GetTemplVersion())
}

func TestGetBuildInfo(t *testing.T) {
	withBuild(t, &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef1234567"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, "v2.0.0", "unknown", "2026-01-02T03:04:05Z")

	info := GetBuildInfo()
	assert.Equal(t, "v2.0.0", info.Version)
	assert.True(t, info.Dirty)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), info.BuildTime)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")

	detailed := GetDetailedVersion()
	require.True(t, strings.HasPrefix(detailed, "Version: v2.0.0"))
	assert.Contains(t, detailed, "Commit: abcdef1234567 (dirty)")
	assert.Contains(t, detailed, "Built: 2026-01-02T03:04:05Z")
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("unknown").IsZero())
	assert.True(t, parseTime("yesterday").IsZero())
	assert.False(t, parseTime("2026-01-02 03:04:05").IsZero())
}
