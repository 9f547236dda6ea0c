package cfgl

import (
	"fmt"
	"sort"
	"strings"
)

// NestDelimiter 环境变量 key 的默认嵌套分隔符。
const NestDelimiter = "__"

// splitKey 按分隔符拆分 key。
//
// 以分隔符开头的 key 视为原子 key，不做拆分；
// 结尾的空段（来自末尾分隔符）被丢弃，中间的空段保留，交由
// consolidateParts 处理。key 去掉所有分隔符后为空则返回 [ErrInvalidKey]。
func splitKey(key, delimiter string) ([]string, error) {
	if strings.ReplaceAll(key, delimiter, "") == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	if strings.HasPrefix(key, delimiter) {
		return []string{key}, nil
	}

	parts := strings.Split(key, delimiter)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts, nil
}

// consolidateParts 消化中间的空段。
//
// 空段说明原 key 中出现了连续分隔符，此时把分隔符并回前一个非空段：
// "a____b" 拆出 ["a", "", "b"]，归并为 ["a__", "b"]。
// 该规则可叠加，"a____b____c" 归并为 ["a__", "b__", "c"]。
func consolidateParts(parts []string, delimiter string) []string {
	processed := make([]string, 0, len(parts))
	current := parts[0]

	for _, part := range parts[1 : len(parts)-1] {
		if part != "" {
			if current != "" {
				processed = append(processed, current)
			}
			current = part

			continue
		}
		current += delimiter
	}

	if current != "" {
		processed = append(processed, current)
	}

	return append(processed, parts[len(parts)-1])
}

// insertNested 按路径段将 value 插入嵌套 mapping。
//
// 中间段已有非 mapping 值、或末段已有 mapping 时返回 [ErrKeyConflict]，
// 错误信息带上冲突的 key 前缀或完整 key。
func insertNested(result map[string]any, parts []string, value any, fullKey, delimiter string) error {
	parts = consolidateParts(parts, delimiter)

	current := result
	for i, part := range parts[:len(parts)-1] {
		existing, ok := current[part]
		if !ok {
			child := make(map[string]any)
			current[part] = child
			current = child

			continue
		}

		child, isMapping := existing.(map[string]any)
		if !isMapping {
			prefix := strings.Join(parts[:i+1], delimiter)
			return fmt.Errorf("%w: %q conflicts with a non-nested key", ErrKeyConflict, prefix)
		}
		current = child
	}

	last := parts[len(parts)-1]
	if _, isMapping := current[last].(map[string]any); isMapping {
		return fmt.Errorf("%w: %q conflicts with existing nested mapping", ErrKeyConflict, fullKey)
	}
	current[last] = value

	return nil
}

// Nest 将带分隔符的扁平 mapping 转换为嵌套 mapping。
//
// 例如 {"a__b__c": 1, "a__d": 2} 转换为 {"a": {"b": {"c": 1}, "d": 2}}。
//
// 规则：
//   - 空字符串 key 直接跳过
//   - 仅由分隔符构成的 key 返回 [ErrInvalidKey]
//   - 以分隔符开头的 key 整体作为原子 key 插入，不拆分
//   - 末尾分隔符不触发嵌套，"a__" 原样保留为 key "a__"
//   - 连续分隔符并入前一段，"a____b" 嵌套为 {"a__": {"b": …}}
//   - 嵌套路径与已有非嵌套 key 冲突、或较短 key 试图覆盖已有嵌套
//     mapping 时返回 [ErrKeyConflict]
//
// key 按字典序处理，保证冲突报告可复现（Go map 本身无序）。
func Nest(flat map[string]any, delimiter string) (map[string]any, error) {
	result := make(map[string]any, len(flat))

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "" {
			continue
		}

		parts, err := splitKey(key, delimiter)
		if err != nil {
			return nil, err
		}

		if len(parts) == 1 {
			if _, isMapping := result[key].(map[string]any); isMapping {
				return nil, fmt.Errorf("%w: %q attempts to overwrite nested mapping with scalar value", ErrKeyConflict, key)
			}
			result[key] = flat[key]

			continue
		}

		if err := insertNested(result, parts, flat[key], key, delimiter); err != nil {
			return nil, err
		}
	}

	return result, nil
}
