// Package command 提供客户端和服务端的命令行功能。
package command

import "github.com/lwmacct/260824-go-pkg-cfgl/internal/config"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()
