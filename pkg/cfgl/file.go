package cfgl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/shexp"
)

// FileValues 读取并解析配置文件为 mapping。
//
// path 为空时返回空 mapping（视为没有配置文件）；
// 文件不存在时返回的错误可用 errors.Is 匹配 fs.ErrNotExist。
// expand 为 true 时先对文件内容做 Shell 参数展开（见 [shexp.Expand]），
// 变量取自 environ 快照。
//
// 解析器按扩展名选择：.json 用 JSON，其余按 YAML 处理；
// 顶层不是 mapping 时返回解析错误。
func FileValues(path string, environ map[string]string, expand bool) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if expand {
		expanded, expandErr := shexp.Expand(string(content), environ)
		if expandErr != nil {
			return nil, fmt.Errorf("expand template in %s: %w", path, expandErr)
		}
		content = []byte(expanded)
	}

	values, err := parseConfigBytes(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return values, nil
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if isJSONPath(path) {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	normalized := normalizeMapKeys(raw)
	if normalized == nil {
		return map[string]any{}, nil
	}
	values, ok := normalized.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config root must be a mapping, got %T", normalized)
	}

	return values, nil
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// normalizeMapKeys 递归将 map key 统一为 string。
// YAML 解析可能产出 map[any]any，归一化后才能参与合并。
func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalizeMapKeys(value)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeMapKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}

// firstExistingPath 返回第一个存在的路径，全部不存在时返回空串。
func firstExistingPath(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
