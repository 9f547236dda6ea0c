// Package client 提供 HTTP 客户端命令。
package client

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260824-go-pkg-cfgl/internal/command"
	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/cfgl"
)

// Command 客户端命令。
var Command = &cli.Command{
	Name:   "client",
	Usage:  "HTTP 客户端工具",
	Flags:  cfgl.FlagsFor(command.Defaults),
	Action: action,
	Commands: []*cli.Command{
		{
			Name:   "health",
			Usage:  "检查服务器健康状态",
			Action: healthAction,
		},
		{
			Name:      "get",
			Usage:     "发送 GET 请求",
			ArgsUsage: "[path]",
			Action:    getAction,
		},
	},
}
