package version

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildTime, info.BuildTime)
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"))
}

func TestGetUsesLinkedVersion(t *testing.T) {
	original := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = original })

	assert.Equal(t, "v1.2.3", Get().Version)
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.0.0", GitCommit: "abc123", BuildTime: "2025-08-25T09:34:29Z", GoVersion: "go1.25.1"}

	assert.Equal(t, "Version: 1.0.0, GitCommit: abc123, BuildTime: 2025-08-25T09:34:29Z, GoVersion: go1.25.1", info.String())
}

func TestInfoJSON(t *testing.T) {
	info := Info{Version: "1.0.0", GitCommit: "abc123", BuildTime: "2025-08-25T09:34:29Z", GoVersion: "go1.25.1"}

	jsonString, err := info.JSON()
	require.NoError(t, err)

	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(jsonString), &parsed))
	assert.Equal(t, info, parsed)

	for _, key := range []string{`"version"`, `"gitCommit"`, `"buildTime"`, `"goVersion"`} {
		assert.Contains(t, jsonString, key)
	}
	assert.Contains(t, jsonString, "\n  ")
}
