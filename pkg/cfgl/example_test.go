package cfgl_test

import (
	"fmt"
	"time"

	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/cfgl"
)

// Example_nest 演示扁平 key 到嵌套 mapping 的转换。
func Example_nest() {
	values, _ := cfgl.Nest(map[string]any{
		"server__addr": ":8080",
		"debug":        "true",
	}, "__")

	server := values["server"].(map[string]any)
	fmt.Println(server["addr"], values["debug"])

	// Output:
	// :8080 true
}

// Example_merge 演示合并时 source 优先的覆盖语义。
func Example_merge() {
	merged, _ := cfgl.Merge(
		map[string]any{"name": "base", "port": 80},
		map[string]any{"name": "override"},
	)

	fmt.Println(merged["name"], merged["port"])

	// Output:
	// override 80
}

// Example_load 演示如何加载配置。
//
// Load 函数按以下优先级合并配置:
//  1. 默认值 (最低优先级)
//  2. 配置文件
//  3. 环境变量
//  4. CLI flags (最高优先级)
func Example_load() {
	type Config struct {
		Name  string `json:"name"`
		Debug bool   `json:"debug"`
	}

	// 注入参数与环境变量快照，保证示例可复现
	cfg, err := cfgl.Load(Config{Name: "default-app"},
		cfgl.WithArgs([]string{"app", "--debug"}),
		cfgl.WithEnviron(map[string]string{"CFG_NAME": "env-app"}),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Name:", cfg.Name)
	fmt.Println("Debug:", cfg.Debug)

	// Output:
	// Name: env-app
	// Debug: true
}

// Example_exampleYAML 演示根据配置结构体生成 YAML 示例。
func Example_exampleYAML() {
	// 定义配置结构体，使用 json 和 desc 标签
	type ServerConfig struct {
		Host string `json:"host" desc:"服务器主机地址"`
		Port int    `json:"port" desc:"服务器端口"`
	}
	type AppConfig struct {
		Name    string        `json:"name"    desc:"应用名称"`
		Debug   bool          `json:"debug"   desc:"是否启用调试模式"`
		Timeout time.Duration `json:"timeout" desc:"超时时间"`
		Server  ServerConfig  `json:"server"  desc:"服务器配置"`
	}

	defaultCfg := AppConfig{
		Name:    "example-app",
		Debug:   false,
		Timeout: 30 * time.Second,
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
	}

	fmt.Println(string(cfgl.ExampleYAML(defaultCfg)))

	// Output:
	// # 配置示例文件, 复制此文件为 config.yaml 并根据需要修改
	// name: 'example-app' # 应用名称
	// debug: false # 是否启用调试模式
	// timeout: 30s # 超时时间
	//
	// # 服务器配置
	// server:
	//   host: 'localhost' # 服务器主机地址
	//   port: 8080 # 服务器端口
}
