// Package cfgl 提供分层的配置加载功能。
//
// 配置文件、环境变量与 CLI flags 各自产出一棵通用 mapping，
// 按固定优先级合并为一棵树后，再解码进强类型配置结构体。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 路径来自 --config、前缀环境变量的 config key 或搜索路径
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 设置，默认 "CFG_"
//  4. CLI flags - 通过 [WithCommand] / [WithArgs] 提供，最高优先级
//
// # 快速开始
//
// 定义配置结构体（json + desc + validate 标签）：
//
//	type Config struct {
//	    Name    string        `json:"name"    desc:"应用名称" validate:"required"`
//	    Debug   bool          `json:"debug"   desc:"调试模式"`
//	    Timeout time.Duration `json:"timeout" desc:"超时时间"`
//	}
//
// CLI 场景推荐 LoadCmd（flag 列表由 [FlagsFor] 生成）：
//
//	cfg, err := cfgl.LoadCmd(cmd, DefaultConfig(), "myapp")
//
// 或使用 Load 组合选项：
//
//	cfg, err := cfgl.Load(DefaultConfig(),
//	    cfgl.WithEnvPrefix("MYAPP_"),
//	    cfgl.WithConfigPaths("custom.yaml"),
//	)
//
// # 嵌套 key
//
// 环境变量以 "__" 表达层级，CLI flag 以 "." 表达层级，
// 两者经 [Nest] 转换为同一棵嵌套 mapping：
//
//	CFG_SERVER__ADDR=:8080   →  {"server": {"addr": ":8080"}}
//	--server.addr=:8080      →  {"server": {"addr": ":8080"}}
//
// 连续分隔符不会产生空路径段，而是并入前一段：
// "a____b" 嵌套为 {"a__": {"b": …}}。嵌套路径与已有标量冲突时
// 返回 [ErrKeyConflict]，而不是静默覆盖。
//
// # 合并语义
//
// [Merge] 对两侧 key 的并集逐个处理：标量由高优先级一侧覆盖，
// mapping 递归合并，序列取集合并集（去重且不保证顺序——
// 需要保序列表的配置项应使用标量或在绑定后自行处理），
// 类别不一致（如标量对序列）返回 [ErrMergeConflict]。
//
// # 错误处理
//
// 单个 source 的失败（文件缺失、CLI 语法错误）记录 warning 并降级为
// 空 mapping；[Nest]/[Merge] 的结构性错误与绑定校验错误始终返回调用方。
//
// # 生成配置示例
//
// 使用 [ExampleYAML] 生成带注释的 YAML：
//
//	yaml := cfgl.ExampleYAML(defaultConfig)
//	os.WriteFile("config.example.yaml", yaml, 0644)
//
// # 测试辅助
//
// [ConfigTestHelper] 可用于校验配置项与示例文件的一致性：
//
//	var helper = cfgl.ConfigTestHelper[Config]{
//	    ExamplePath: "config/config.example.yaml",
//	}
//
//	func TestWriteExample(t *testing.T) { helper.WriteExampleFile(t, DefaultConfig()) }
//	func TestConfigKeysValid(t *testing.T) { helper.ValidateKeys(t) }
package cfgl
