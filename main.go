package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260824-go-pkg-cfgl/internal/command/client"
	"github.com/lwmacct/260824-go-pkg-cfgl/internal/command/server"
)

func main() {
	app := &cli.Command{
		Name:    "cfgl",
		Usage:   "分层配置加载示例",
		Version: "dev",
		Commands: []*cli.Command{
			client.Command,
			server.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
