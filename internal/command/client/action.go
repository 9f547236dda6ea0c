package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260824-go-pkg-cfgl/internal/config"
	"github.com/lwmacct/260824-go-pkg-cfgl/pkg/cfgl"
)

func action(ctx context.Context, cmd *cli.Command) error {
	cfg := cfgl.MustLoadCmd(cmd, config.DefaultConfig(), "cfgl")

	fmt.Println("当前客户端配置:")
	fmt.Printf("  url:     %s\n", cfg.Client.URL)
	fmt.Printf("  timeout: %s\n", cfg.Client.Timeout)
	fmt.Printf("  retries: %d\n", cfg.Client.Retries)

	return nil
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	return request(ctx, cmd, "/health")
}

func getAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		path = "/"
	}

	return request(ctx, cmd, path)
}

// request 按配置的超时与重试次数发送 GET 请求并输出响应体。
func request(ctx context.Context, cmd *cli.Command, path string) error {
	cfg := cfgl.MustLoadCmd(cmd, config.DefaultConfig(), "cfgl")

	url := strings.TrimSuffix(cfg.Client.URL, "/") + path
	client := &http.Client{Timeout: cfg.Client.Timeout}

	var lastErr error
	for attempt := 0; attempt <= cfg.Client.Retries; attempt++ {
		if attempt > 0 {
			slog.Warn("请求失败，重试中", "attempt", attempt, "error", lastErr)
			time.Sleep(time.Second)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err

			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err

			continue
		}

		fmt.Printf("%s %s\n%s\n", resp.Status, url, string(body))

		return nil
	}

	return fmt.Errorf("request %s failed after %d retries: %w", url, cfg.Client.Retries, lastErr)
}
