package shexp_test

import (
	"fmt"

	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/shexp"
)

// Example_shellExpansion 演示 Shell 参数展开。
func Example_shellExpansion() {
	vars := map[string]string{"API_KEY": "sk-12345"}

	result, _ := shexp.Expand(`key=${API_KEY}`, vars)
	fmt.Println(result)

	// Output:
	// key=sk-12345
}

// Example_shellFallback 演示默认值回退语义。
func Example_shellFallback() {
	result, _ := shexp.Expand(`host=${HOST:-localhost}`, nil)
	fmt.Println(result)

	// Output:
	// host=localhost
}

// Example_shellAssign 演示 := 赋值仅在当前展开内生效。
func Example_shellAssign() {
	result, _ := shexp.Expand(`${MODEL:=gpt-4}-${MODEL}`, nil)
	fmt.Println(result)

	// Output:
	// gpt-4-gpt-4
}
