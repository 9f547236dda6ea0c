package shexp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/shexp"
)

func TestExpand_ShellParameterExpansion(t *testing.T) {
	vars := map[string]string{
		"SHELL_SET":   "set-value",
		"SHELL_EMPTY": "",
	}

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "basic expansion",
			template: `prefix-${SHELL_SET}-suffix`,
			want:     "prefix-set-value-suffix",
		},
		{
			name:     "missing expands to empty",
			template: `x=${SHELL_MISSING}`,
			want:     "x=",
		},
		{
			name:     "fallback with colon treats empty as unset",
			template: `${SHELL_EMPTY:-fallback}`,
			want:     "fallback",
		},
		{
			name:     "fallback without colon keeps empty",
			template: `x=${SHELL_EMPTY-fallback}`,
			want:     "x=",
		},
		{
			name:     "alternate with colon",
			template: `${SHELL_SET:+alt}`,
			want:     "alt",
		},
		{
			name:     "alternate on empty yields empty",
			template: `x=${SHELL_EMPTY:+alt}`,
			want:     "x=",
		},
		{
			name:     "nested fallback",
			template: `${SHELL_MISSING:-${SHELL_SET}}`,
			want:     "set-value",
		},
		{
			name:     "assignment updates snapshot",
			template: `${SHELL_NEW:=value}-${SHELL_NEW}`,
			want:     "value-value",
		},
		{
			name:     "literal dollar",
			template: `$$${SHELL_SET}`,
			want:     "$set-value",
		},
		{
			name:     "unrecognized expression kept verbatim",
			template: `${1BAD}`,
			want:     "${1BAD}",
		},
		{
			name:     "unmatched brace kept verbatim",
			template: `${SHELL_SET`,
			want:     "${SHELL_SET",
		},
		{
			name:     "required var triggers error",
			template: `${SHELL_MISSING:?missing}`,
			wantErr:  true,
			errMsg:   "missing",
		},
		{
			name:     "required without message",
			template: `${SHELL_MISSING?}`,
			wantErr:  true,
			errMsg:   "parameter null or not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shexp.Expand(tt.template, vars)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_DoesNotMutateCallerVars(t *testing.T) {
	vars := map[string]string{}

	got, err := shexp.Expand(`${NEW:=assigned}`, vars)
	require.NoError(t, err)
	assert.Equal(t, "assigned", got)

	// ":=" 只写入内部快照
	assert.Empty(t, vars)
}

func TestExpand_YAMLConfig(t *testing.T) {
	vars := map[string]string{
		"API_KEY": "sk-test-123",
		"MODEL":   "gpt-4",
	}

	yamlConfig := "name: ${AGENT_NAME:-test-agent}\nmodel: ${MODEL:-gpt-3.5-turbo}\napi_key: ${API_KEY}\n"

	expanded, err := shexp.Expand(yamlConfig, vars)
	require.NoError(t, err, "shexp.Expand() should succeed")
	assert.Contains(t, expanded, "test-agent", "AGENT_NAME should fall back")
	assert.Contains(t, expanded, "gpt-4", "MODEL should be expanded to gpt-4")
	assert.Contains(t, expanded, "sk-test-123", "API_KEY should be expanded")
}

func TestExpandEnviron(t *testing.T) {
	t.Setenv("SHEXP_ENV_TEST", "from-process")

	got, err := shexp.ExpandEnviron(`value=${SHEXP_ENV_TEST}`)
	require.NoError(t, err)
	assert.Equal(t, "value=from-process", got)
}
