// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 路径来自 --config 或 CFG_CONFIG，缺省按搜索路径查找
//  3. 环境变量 - CFG_ 前缀，"__" 表达层级（如 CFG_SERVER__ADDR）
//  4. CLI flags - 由 cfgl.FlagsFor 自动生成（如 --server.addr）
package config

import (
	"time"
)

// Config 应用配置。
type Config struct {
	Server ServerConfig `json:"server" desc:"服务端配置"`
	Client ClientConfig `json:"client" desc:"客户端配置"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址" validate:"required"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
	Tags     []string      `json:"tags" desc:"实例标签"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址" validate:"required"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数" validate:"min=0"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:     ":40117",
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
		},
		Client: ClientConfig{
			URL:     "http://localhost:40117",
			Timeout: 30 * time.Second,
			Retries: 3,
		},
	}
}
