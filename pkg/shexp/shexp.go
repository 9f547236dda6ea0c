package shexp

import (
	"fmt"
	"os"
	"strings"
)

// expander 持有一次展开过程的变量快照。
//
// ":=" / "=" 的赋值只写入该快照，不回写进程环境，
// 因此同一文本内后续的 ${VAR} 能看到赋值结果。
type expander struct {
	vars map[string]string
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

// parseParameter 将 ${...} 内部的表达式解析为 (变量名, 操作符, word)。
//
// 操作符为 "-", "+", "?", "=" 及其带冒号变体；无法识别时 ok 为 false，
// 调用方保留原文。
func parseParameter(expr string) (name, op, word string, ok bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return "", "", "", false
	}

	i := 1
	for i < len(expr) && isNameChar(expr[i]) {
		i++
	}

	name = expr[:i]
	rest := expr[i:]
	if rest == "" {
		return name, "", "", true
	}

	if len(rest) >= 2 && rest[0] == ':' {
		switch rest[1] {
		case '-', '+', '?', '=':
			return name, rest[:2], rest[2:], true
		}
	}

	switch rest[0] {
	case '-', '+', '?', '=':
		return name, rest[:1], rest[1:], true
	}

	return "", "", "", false
}

func requiredError(name, word string) error {
	if word == "" {
		return fmt.Errorf("shexp: %s: parameter null or not set", name)
	}

	return fmt.Errorf("shexp: %s: %s", name, word)
}

// expandWord 对操作符右侧的 word 做嵌套展开。
func (e *expander) expandWord(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return e.expand(word)
}

// resolve 求值单个 ${...} 表达式。
//
// 返回 (结果, 是否识别, 错误)；未识别的表达式由调用方原样保留。
// 带冒号的操作符将空值视同未设置。
func (e *expander) resolve(expr string) (string, bool, error) {
	name, op, word, ok := parseParameter(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := e.vars[name]
	if op == "" {
		// ${VAR}：未设置时展开为空串
		return val, true, nil
	}

	missing := !isSet
	if op[0] == ':' {
		missing = !isSet || val == ""
	}

	switch op[len(op)-1] {
	case '-':
		if missing {
			expanded, err := e.expandWord(word)
			if err != nil {
				return "", false, err
			}
			return expanded, true, nil
		}
		return val, true, nil
	case '+':
		if !missing {
			expanded, err := e.expandWord(word)
			if err != nil {
				return "", false, err
			}
			return expanded, true, nil
		}
		return "", true, nil
	case '?':
		if missing {
			return "", false, requiredError(name, word)
		}
		return val, true, nil
	case '=':
		if missing {
			expanded, err := e.expandWord(word)
			if err != nil {
				return "", false, err
			}
			e.vars[name] = expanded
			return expanded, true, nil
		}
		return val, true, nil
	}

	return "", false, nil
}

// expand 扫描文本并替换其中的 ${...} 表达式。
//
// "$$" 展开为字面量 "$"；不成对的大括号与裸 "$" 原样保留。
func (e *expander) expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		ch := text[i]
		if ch != '$' || i+1 >= len(text) {
			buf.WriteByte(ch)
			i++

			continue
		}

		next := text[i+1]
		if next == '$' {
			buf.WriteByte('$')
			i += 2

			continue
		}
		if next != '{' {
			buf.WriteByte(ch)
			i++

			continue
		}

		end := findMatchingBrace(text, i+2)
		if end == -1 {
			buf.WriteByte(ch)
			i++

			continue
		}

		expr := text[i+2 : end]
		expanded, ok, err := e.resolve(expr)
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(expanded)
		} else {
			buf.WriteString(text[i : end+1])
		}

		i = end + 1
	}

	return buf.String(), nil
}

// findMatchingBrace 定位与 "${" 配对的 "}"，支持嵌套表达式。
func findMatchingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		if text[i] == '$' && i+1 < len(text) && text[i+1] == '{' {
			depth++
			i++

			continue
		}
		if text[i] == '}' {
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// Expand 对 text 执行 Shell 参数展开，变量取自 vars 快照。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于本次展开）
//
// 内部会复制一份 vars，":=" 的赋值不会影响调用方传入的 map。
// 返回展开后的字符串；仅在必填校验失败时返回 error。
func Expand(text string, vars map[string]string) (string, error) {
	snapshot := make(map[string]string, len(vars))
	for name, value := range vars {
		snapshot[name] = value
	}

	e := &expander{vars: snapshot}

	return e.expand(text)
}

// ExpandEnviron 以当前进程环境变量为快照调用 [Expand]。
func ExpandEnviron(text string) (string, error) {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			vars[name] = value
		}
	}

	return Expand(text, vars)
}
