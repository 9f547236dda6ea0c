package cfgl_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/cfgl"
)

type cliNested struct {
	Addr    string        `json:"addr" desc:"监听地址"`
	Timeout time.Duration `json:"timeout"`
}

type cliSchema struct {
	Name    string            `json:"name" desc:"应用名称"`
	Debug   bool              `json:"debug"`
	Retries int               `json:"retries"`
	Ratio   float64           `json:"ratio"`
	Tags    []string          `json:"tags"`
	Labels  map[string]string `json:"labels"`
	Server  cliNested         `json:"server"`
	Ignored string            `json:"-"`
	NoTag   string
	secret  string `json:"secret"` //nolint:unused
}

func flagNames(schema any) []string {
	var names []string
	for _, flag := range cfgl.FlagsFor(schema) {
		names = append(names, flag.Names()[0])
	}

	return names
}

func TestFlagsFor(t *testing.T) {
	names := flagNames(cliSchema{})

	// 嵌套字段以 "." 连接，忽略无 json tag 与未导出的字段，追加 --config
	assert.ElementsMatch(t, []string{
		"name", "debug", "retries", "ratio", "tags", "labels",
		"server.addr", "server.timeout",
		"config",
	}, names)
}

func TestFlagsFor_SchemaOwnsConfigKey(t *testing.T) {
	type schema struct {
		Config string `json:"config"`
	}

	names := flagNames(schema{})
	assert.Equal(t, []string{"config"}, names)
}

func TestParseArgs(t *testing.T) {
	got, err := cfgl.ParseArgs(cliSchema{}, []string{
		"app",
		"--name", "cli-app",
		"--debug",
		"--server.addr", ":9090",
		"--server.timeout", "30s",
		"--tags", "a",
		"--tags", "b",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":  "cli-app",
		"debug": true,
		"tags":  []any{"a", "b"},
		"server": map[string]any{
			"addr":    ":9090",
			"timeout": 30 * time.Second,
		},
	}, got)
}

func TestParseArgs_MapFlagNormalized(t *testing.T) {
	got, err := cfgl.ParseArgs(cliSchema{}, []string{
		"app",
		"--labels", "env=prod",
		"--labels", "region=cn",
	})
	require.NoError(t, err)

	// map flag 统一为 map[string]any，才能与其他 source 的 mapping 递归合并
	assert.Equal(t, map[string]any{
		"labels": map[string]any{"env": "prod", "region": "cn"},
	}, got)
}

func TestParseArgs_OnlySetFlagsCollected(t *testing.T) {
	got, err := cfgl.ParseArgs(cliSchema{}, []string{"app", "--retries", "5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"retries": 5}, got)
}

func TestParseArgs_NoArgs(t *testing.T) {
	got, err := cfgl.ParseArgs(cliSchema{}, []string{"app"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseArgs_ConfigFlag(t *testing.T) {
	got, err := cfgl.ParseArgs(cliSchema{}, []string{"app", "--config", "custom.yaml"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"config": "custom.yaml"}, got)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "malformed typed value", args: []string{"app", "--retries", "not-an-int"}},
		{name: "unknown flag", args: []string{"app", "--nope", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cfgl.ParseArgs(cliSchema{}, tt.args)
			require.Error(t, err)
		})
	}
}
