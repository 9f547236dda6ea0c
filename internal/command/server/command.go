// Package server 提供 HTTP 服务器命令。
package server

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260824-go-pkg-cfgl/internal/command"
	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/cfgl"
)

// Command 服务器命令。
// flag 列表由配置结构体自动生成（--server.addr、--server.timeout 等）。
var Command = &cli.Command{
	Name:   "server",
	Usage:  "启动 HTTP 服务器",
	Action: action,
	Flags:  cfgl.FlagsFor(command.Defaults),
}
