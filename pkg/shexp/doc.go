// Package shexp 提供配置字符串的 Shell 参数展开。
//
// 该包仅处理 ${...} 语法，适合在 YAML/JSON 等配置文件中做轻量替换。
// 不执行命令、不引入模板引擎，强调可读性与可预测性。
//
// 与直接读取进程环境不同，展开作用于调用方传入的变量快照
// （见 [Expand]），便于在测试中注入变量；[ExpandEnviron] 是
// 取进程环境为快照的便捷入口。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 支持嵌套展开与 "$$" 字面量
//  3. ":=" 赋值仅作用于当前展开过程
//  4. 无法识别的表达式保持原样
//
// # 快速开始
//
// 展开配置文件中的环境变量引用：
//
//	content := `api_key: "${OPENAI_API_KEY}"`
//	expanded, err := shexp.ExpandEnviron(content)
//
// 使用默认值处理缺失的变量：
//
//	expanded, err := shexp.Expand(`model: "${LLM_MODEL:-gpt-4}"`, vars)
//
// 详见 [Expand] 文档。
package shexp
