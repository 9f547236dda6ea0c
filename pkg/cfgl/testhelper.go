package cfgl

import (
	"errors"
	"io/fs"
	"os"
	"testing"
)

// ConfigTestHelper 校验配置文件与结构体 key 的一致性，供应用的配置测试复用。
//
// ExamplePath 指向随仓库分发的示例文件，ConfigPath 指向本地实际配置；
// 任一为空或文件不存在时跳过对应检查。
type ConfigTestHelper[T any] struct {
	ExamplePath string
	ConfigPath  string
}

// WriteExampleFile 根据默认配置重新生成示例文件（见 [ExampleYAML]）。
// 通常作为一个测试运行，保证示例文件与结构体不脱节。
func (h ConfigTestHelper[T]) WriteExampleFile(t *testing.T, defaultConfig T) {
	t.Helper()

	if h.ExamplePath == "" {
		t.Fatal("ConfigTestHelper: ExamplePath is empty")
	}
	if err := os.WriteFile(h.ExamplePath, ExampleYAML(defaultConfig), 0o644); err != nil { //nolint:gosec
		t.Fatalf("write example file %s: %v", h.ExamplePath, err)
	}
}

// ValidateKeys 校验配置文件中的每个 key 均在结构体中有定义，
// 及时暴露改名后遗留的旧 key。
func (h ConfigTestHelper[T]) ValidateKeys(t *testing.T) {
	t.Helper()

	var zero T
	known := make(map[string]bool)
	for _, key := range collectConfigKeys(zero) {
		known[key] = true
	}

	for _, path := range []string{h.ExamplePath, h.ConfigPath} {
		if path == "" {
			continue
		}

		content, err := os.ReadFile(path) //nolint:gosec
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			t.Fatalf("read config file %s: %v", path, err)
		}

		values, err := parseConfigBytes(path, content)
		if err != nil {
			t.Fatalf("parse config file %s: %v", path, err)
		}

		for _, key := range flattenMapKeys(values) {
			if !known[key] {
				t.Errorf("config file %s: key %q is not defined in the config struct", path, key)
			}
		}
	}
}
