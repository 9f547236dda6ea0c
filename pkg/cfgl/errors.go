package cfgl

import "errors"

// 核心错误类别。[Nest] 与 [Merge] 返回的错误均可通过 errors.Is 匹配到
// 这里的哨兵值；[Load] 据此区分致命的结构性错误与可降级的 source 错误。
var (
	// ErrInvalidKey 表示 key 仅由分隔符构成（如 "__"）。
	ErrInvalidKey = errors.New("key cannot be only the delimiter")
	// ErrKeyConflict 表示扁平 key 嵌套时出现结构冲突，
	// 例如 "a" 与 "a__b" 同时存在。
	ErrKeyConflict = errors.New("conflicting keys")
	// ErrMergeConflict 表示合并双方的值类别不兼容（如标量与序列）。
	ErrMergeConflict = errors.New("incompatible types for merging")
	// ErrSourceInput 表示 [Merge] 的顶层参数不是 mapping。
	ErrSourceInput = errors.New("both target and source must be mappings")
)
