package cfgl

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// DefaultEnvPrefix 环境变量的默认前缀。
const DefaultEnvPrefix = "CFG_"

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径。
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		// 当前目录应用配置 (最高优先级)
		paths = append(paths, "."+name+".yaml")
		// 用户主目录
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		// 系统配置目录
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	// 当前目录通用配置 (最低优先级)
	paths = append(paths, "config.yaml", "config/config.yaml")

	return paths
}

// Load 从 CLI flags、环境变量与配置文件加载配置并绑定到 T。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - 路径来自 --config / 前缀环境变量 config key / 搜索路径
//  3. 环境变量(前缀) - [WithEnvPrefix]，默认 [DefaultEnvPrefix]
//  4. CLI flags - [WithCommand] / [WithArgs]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
//
// 单个 source 的失败（文件缺失、CLI 语法错误、环境变量嵌套无法解析）
// 记录 warning 并降级为空 mapping，其余 source 照常生效；
// 结构性错误（[ErrKeyConflict]、[ErrMergeConflict] 等）与最终的
// 绑定校验错误始终返回调用方，不会产出部分配置对象。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	options := newOptions(opts)

	// 1️⃣ CLI flags（最高优先级 source）
	cliValues, err := loadCLIValues(options, defaultConfig)
	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		slog.Warn("unable to load cli values", "error", err)
		cliValues = map[string]any{}
	}

	// 2️⃣ 环境变量
	envValues := map[string]any{}
	if options.envPrefix != "" {
		envValues, err = EnvValues(options.envPrefix, options.environ)
		if err != nil {
			if isFatal(err) {
				return nil, err
			}
			slog.Warn("unable to load env values", "prefix", options.envPrefix, "error", err)
			envValues = map[string]any{}
		}
	}

	// 3️⃣ 配置文件路径：CLI 的 config key 优先，其次环境变量，最后搜索路径
	configPath := stringValue(cliValues[ConfigFlagName])
	if configPath == "" {
		configPath = stringValue(envValues[ConfigFlagName])
	}
	if configPath == "" {
		configPath = firstExistingPath(options.searchPaths())
	}

	// 4️⃣ 配置文件（无路径时为空 mapping）
	fileValues, err := FileValues(configPath, options.environ, !options.noExpand)
	if err != nil {
		slog.Warn("unable to load config file", "path", configPath, "error", err)
		fileValues = map[string]any{}
	} else if configPath != "" {
		slog.Debug("loaded config from file", "path", configPath, "templateExpansion", !options.noExpand)
	}

	// 5️⃣ 合并：默认值 < 文件 < 环境变量 < CLI
	base := structToMap(defaultConfig)
	overlayDefaults(base, fileValues)

	merged, err := Merge(base, envValues)
	if err != nil {
		return nil, err
	}
	merged, err = Merge(merged, cliValues)
	if err != nil {
		return nil, err
	}

	// 6️⃣ 绑定到强类型配置；校验失败直接返回
	var cfg T
	if err := Bind(merged, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本，适用于 CLI 场景。
//
// 它会注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
//
// 示例：
//
//	cfg, err := cfgl.LoadCmd(cmd, DefaultConfig(), "myapp",
//	    cfgl.WithEnvPrefix("MYAPP_"),
//	)
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := Load(defaultConfig, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgl: failed to load config: %v", err))
	}

	return cfg
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic，适合启动阶段。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaultConfig, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgl: failed to load config: %v", err))
	}

	return cfg
}

// loadCLIValues 获取 CLI source 的 mapping。
// 优先使用绑定的命令，否则用 schema 构建临时解析器。
func loadCLIValues[T any](o *options, schema T) (map[string]any, error) {
	if o.cmd != nil {
		return CLIValues(o.cmd, schema)
	}

	args := o.args
	if args == nil {
		args = os.Args
	}

	return ParseArgs(schema, args)
}

// isFatal 判断 source 错误是否为不可降级的结构性错误。
func isFatal(err error) bool {
	return errors.Is(err, ErrInvalidKey) ||
		errors.Is(err, ErrKeyConflict) ||
		errors.Is(err, ErrMergeConflict) ||
		errors.Is(err, ErrSourceInput)
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}
