package cfgl

import (
	"fmt"
	"time"
)

// category 配置值的三个类别：标量、序列、mapping。
// 合并规则按类别分派，类别不一致即 [ErrMergeConflict]。
type category int

const (
	categoryInvalid category = iota
	categoryScalar
	categorySequence
	categoryMapping
)

// categoryOf 判定值的类别。
//
// 标量涵盖字符串、布尔、各宽度整数与浮点、时间类型；
// 序列统一为 []any（YAML 解析与 CLI 收集均产出该形态）；
// 其余类型视为非法，在合并时触发类别冲突。
func categoryOf(value any) category {
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, time.Duration:
		return categoryScalar
	case []any:
		return categorySequence
	case map[string]any:
		return categoryMapping
	default:
		return categoryInvalid
	}
}

// mergeSequences 按集合并集语义合并两个序列。
//
// 结果去重，元素顺序不作保证（实现上保持首次出现顺序，
// 但调用方不应依赖）。序列元素应为标量。
func mergeSequences(target, source []any) []any {
	seen := make(map[any]struct{}, len(target)+len(source))
	merged := make([]any, 0, len(target)+len(source))

	for _, item := range target {
		if _, ok := seen[item]; !ok {
			seen[item] = struct{}{}
			merged = append(merged, item)
		}
	}
	for _, item := range source {
		if _, ok := seen[item]; !ok {
			seen[item] = struct{}{}
			merged = append(merged, item)
		}
	}

	return merged
}

// mergeValues 按类别合并两个配置值，source（right）优先。
//
// 任一侧为 nil 时视同缺失，直接取另一侧。
func mergeValues(left, right any) (any, error) {
	if right == nil {
		return left, nil
	}
	if left == nil {
		return right, nil
	}

	leftCat, rightCat := categoryOf(left), categoryOf(right)

	switch {
	case leftCat == categoryScalar && rightCat == categoryScalar:
		return right, nil
	case leftCat == categorySequence && rightCat == categorySequence:
		return mergeSequences(left.([]any), right.([]any)), nil
	case leftCat == categoryMapping && rightCat == categoryMapping:
		return Merge(left, right)
	default:
		return nil, fmt.Errorf("%w: %T and %T", ErrMergeConflict, left, right)
	}
}

// Merge 递归合并两个配置 mapping，source 的值优先。
//
// 返回全新 mapping，不修改任何入参。对两侧 key 的并集逐个处理：
//   - 一侧缺失或值为 nil 时，取另一侧的值
//   - 两侧均为标量时 source 覆盖 target
//   - 两侧均为序列时取集合并集（去重、无序，见 [mergeSequences]）
//   - 两侧均为 mapping 时递归合并
//   - 类别不一致时返回 [ErrMergeConflict]，错误信息给出两侧运行时类型
//
// 任一参数不是 map[string]any 时，在处理任何 key 之前返回 [ErrSourceInput]。
func Merge(target, source any) (map[string]any, error) {
	targetMap, targetOK := target.(map[string]any)
	sourceMap, sourceOK := source.(map[string]any)
	if !targetOK || !sourceOK {
		return nil, fmt.Errorf("%w: got %T and %T", ErrSourceInput, target, source)
	}

	merged := make(map[string]any, len(targetMap)+len(sourceMap))

	for key, leftValue := range targetMap {
		rightValue, inSource := sourceMap[key]
		if !inSource {
			merged[key] = leftValue

			continue
		}

		value, err := mergeValues(leftValue, rightValue)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		merged[key] = value
	}

	for key, rightValue := range sourceMap {
		if _, inTarget := targetMap[key]; !inTarget {
			merged[key] = rightValue
		}
	}

	return merged, nil
}
