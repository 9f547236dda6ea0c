package cfgl

import (
	"os"
	"strings"
)

// Environ 捕获当前进程环境变量的快照。
//
// [Load] 默认在每次调用时取一次快照，整个加载过程只读这份数据；
// 测试可通过 [WithEnviron] 注入自定义快照，避免操作真实进程环境。
func Environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			vars[name] = value
		}
	}

	return vars
}

// EnvValues 提取带指定前缀的环境变量并嵌套为配置 mapping。
//
// 去除前缀后的 key 转为小写，再按 "__" 嵌套：
//
//	CFG_SERVER__ADDR=:8080  →  {"server": {"addr": ":8080"}}
//
// 嵌套冲突原样返回 [Nest] 的错误。
func EnvValues(prefix string, environ map[string]string) (map[string]any, error) {
	flat := make(map[string]any)
	for key, value := range environ {
		if strings.HasPrefix(key, prefix) {
			flat[strings.ToLower(strings.TrimPrefix(key, prefix))] = value
		}
	}

	return Nest(flat, NestDelimiter)
}
