package cfgl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/cfgl"
)

func TestEnvValues(t *testing.T) {
	environ := map[string]string{
		"CFG_NAME":           "myapp",
		"CFG_SERVER__ADDR":   ":8080",
		"CFG_SERVER__DEBUG":  "true",
		"CFG_Server__Mixed":  "lowered",
		"UNRELATED":          "ignored",
		"CFGX_OTHER_PREFIX":  "ignored",
		"CFG_CLIENT__URL":    "http://localhost",
		"CFG_EMPTY_ALLOWED":  "",
	}

	got, err := cfgl.EnvValues("CFG_", environ)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name": "myapp",
		"server": map[string]any{
			"addr":  ":8080",
			"debug": "true",
			"mixed": "lowered",
		},
		"client": map[string]any{
			"url": "http://localhost",
		},
		"empty_allowed": "",
	}, got)
}

func TestEnvValues_NoMatches(t *testing.T) {
	got, err := cfgl.EnvValues("CFG_", map[string]string{"OTHER": "x"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEnvValues_NestConflict(t *testing.T) {
	_, err := cfgl.EnvValues("CFG_", map[string]string{
		"CFG_A":    "1",
		"CFG_A__B": "2",
	})
	require.ErrorIs(t, err, cfgl.ErrKeyConflict)
}

func TestEnviron_Snapshot(t *testing.T) {
	t.Setenv("CFGL_SNAPSHOT_TEST", "value")

	environ := cfgl.Environ()
	assert.Equal(t, "value", environ["CFGL_SNAPSHOT_TEST"])
}
