package cfgl

import "github.com/urfave/cli/v3"

// options 配置加载选项。
type options struct {
	appName     string // 应用名称，用于生成配置文件搜索路径
	cmd         *cli.Command
	args        []string          // 独立解析时的命令行参数（含程序名）
	environ     map[string]string // 环境变量快照，nil 时加载前取进程环境
	envPrefix   string
	configPaths []string
	noExpand    bool // 是否禁用配置文件的 Shell 参数展开（默认启用）
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定已完成解析的 CLI 命令，读取用户显式设置的 flags
// 作为最高优先级 source。命令的 flag 列表应由 [FlagsFor] 生成。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithArgs 设置独立解析时的命令行参数（首个元素为程序名）。
//
// 未使用 [WithCommand] 时，[Load] 根据 schema 构建临时解析器并解析
// 这里的参数；默认为 os.Args。主要用于测试注入。
func WithArgs(args []string) Option {
	return func(o *options) {
		o.args = args
	}
}

// WithEnviron 注入环境变量快照，替代加载时对进程环境的读取。
//
// 快照同时作用于环境变量 source 与配置文件的 Shell 参数展开，
// 便于编写无副作用的确定性测试。
func WithEnviron(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithEnvPrefix 设置环境变量前缀，默认 [DefaultEnvPrefix]。
//
// 带该前缀的环境变量去除前缀、转小写后按 "__" 嵌套：
//   - CFG_DEBUG → debug
//   - CFG_SERVER__ADDR → server.addr
//
// 传入空字符串禁用环境变量 source。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithAppName 设置应用名称，用于生成配置文件搜索路径（见 [DefaultPaths]）。
//
// 搜索路径仅在 CLI 与环境变量均未提供 config key 时生效。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径，覆盖 [WithAppName] 生成的默认值。
//
// 按顺序查找，命中首个存在的文件即停止；
// 同样仅在 CLI 与环境变量均未提供 config key 时生效。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithoutExpansion 禁用配置文件的 Shell 参数展开。
//
// 默认会对文件内容执行 ${VAR:-default} 形式的展开（见 [shexp.Expand]）。
// 该选项保留原始 ${...} 字符串。
func WithoutExpansion() Option {
	return func(o *options) {
		o.noExpand = true
	}
}

// newOptions 应用选项并补齐默认值。
func newOptions(opts []Option) *options {
	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(o)
	}
	if o.environ == nil {
		o.environ = Environ()
	}

	return o
}

// searchPaths 返回 config key 缺失时的文件搜索路径。
func (o *options) searchPaths() []string {
	if len(o.configPaths) > 0 {
		return o.configPaths
	}
	if o.appName != "" {
		return DefaultPaths(o.appName)
	}

	return nil
}
