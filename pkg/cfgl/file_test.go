package cfgl_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/cfgl"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFileValues_YAML(t *testing.T) {
	path := writeTempFile(t, "config.yaml", `
name: myapp
port: 8080
tags:
  - a
  - b
server:
  addr: ":8080"
`)

	got, err := cfgl.FileValues(path, nil, false)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name": "myapp",
		"port": 8080,
		"tags": []any{"a", "b"},
		"server": map[string]any{
			"addr": ":8080",
		},
	}, got)
}

func TestFileValues_JSON(t *testing.T) {
	path := writeTempFile(t, "config.json", `{"name": "json-app", "debug": true}`)

	got, err := cfgl.FileValues(path, nil, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "json-app", "debug": true}, got)
}

func TestFileValues_EmptyPath(t *testing.T) {
	got, err := cfgl.FileValues("", nil, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileValues_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "")

	got, err := cfgl.FileValues(path, nil, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileValues_MissingFile(t *testing.T) {
	_, err := cfgl.FileValues(filepath.Join(t.TempDir(), "nope.yaml"), nil, false)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileValues_RootNotMapping(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "- 1\n- 2\n")

	_, err := cfgl.FileValues(path, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping")
}

func TestFileValues_Malformed(t *testing.T) {
	path := writeTempFile(t, "config.json", `{"name":`)

	_, err := cfgl.FileValues(path, nil, false)
	require.Error(t, err)
}

func TestFileValues_Expansion(t *testing.T) {
	path := writeTempFile(t, "config.yaml", `name: "${APP_NAME:-fallback}"`)

	environ := map[string]string{"APP_NAME": "from-env"}

	got, err := cfgl.FileValues(path, environ, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "from-env"}, got)

	// 展开被禁用时保留原始 ${...}
	got, err = cfgl.FileValues(path, environ, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "${APP_NAME:-fallback}"}, got)
}

func TestFileValues_ExpansionFallback(t *testing.T) {
	path := writeTempFile(t, "config.yaml", `name: "${APP_NAME:-fallback}"`)

	got, err := cfgl.FileValues(path, map[string]string{}, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "fallback"}, got)
}
