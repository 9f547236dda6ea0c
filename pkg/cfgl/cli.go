package cfgl

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/urfave/cli/v3"
)

// CLIDelimiter CLI flag 名中的层级分隔符（--server.addr）。
const CLIDelimiter = "."

// ConfigFlagName 约定的配置文件路径 flag 与 mapping key。
// 该 key 在绑定前被 [Load] 读取，不要求出现在目标结构体中。
const ConfigFlagName = "config"

// FlagsFor 根据配置结构体的 json tag 生成 CLI flag 列表。
//
// 嵌套结构体的字段名以 "." 连接（server.addr → --server.addr），
// 每个 flag 均为可选、无默认值，仅当用户显式设置时才参与合并。
// 始终追加 --config 字符串 flag 用于指定配置文件路径，
// 除非结构体自带同名叶子字段。
//
// 支持的字段类型：
//   - 基本类型: string, bool
//   - 整数类型: int, int8, int16, int32, int64
//   - 无符号整数: uint, uint8, uint16, uint32, uint64
//   - 浮点数: float32, float64
//   - 时间类型: time.Duration, time.Time
//   - 切片类型: []string, []int, []int64, []float64 等
//   - Map 类型: map[string]string
func FlagsFor(schema any) []cli.Flag {
	var flags []cli.Flag
	hasConfig := false
	appendFlags(&flags, reflect.TypeOf(schema), "", &hasConfig)

	if !hasConfig {
		flags = append(flags, &cli.StringFlag{Name: ConfigFlagName, Usage: "配置文件路径"})
	}

	return flags
}

// appendFlags 递归遍历结构体字段并生成 flag。
func appendFlags(flags *[]cli.Flag, typ reflect.Type, prefix string, hasConfig *bool) {
	if typ == nil {
		return
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + CLIDelimiter + key
		}

		if isStructType(field.Type) {
			appendFlags(flags, field.Type, fullKey, hasConfig)

			continue
		}

		if fullKey == ConfigFlagName {
			*hasConfig = true
		}
		if flag := leafFlag(fullKey, field); flag != nil {
			*flags = append(*flags, flag)
		}
	}
}

// leafFlag 按字段类型构造对应的 flag，不支持的类型返回 nil。
func leafFlag(name string, field reflect.StructField) cli.Flag {
	usage := field.Tag.Get("desc")

	fieldType := field.Type
	if fieldType.Kind() == reflect.Pointer {
		fieldType = fieldType.Elem()
	}

	switch fieldType {
	case durationType:
		return &cli.DurationFlag{Name: name, Usage: usage}
	case timeType:
		return &cli.TimestampFlag{
			Name:  name,
			Usage: usage,
			Config: cli.TimestampConfig{
				Layouts: []string{time.RFC3339, time.DateOnly},
			},
		}
	}

	switch fieldType.Kind() {
	case reflect.String:
		return &cli.StringFlag{Name: name, Usage: usage}
	case reflect.Bool:
		return &cli.BoolFlag{Name: name, Usage: usage}

	case reflect.Int:
		return &cli.IntFlag{Name: name, Usage: usage}
	case reflect.Int8:
		return &cli.Int8Flag{Name: name, Usage: usage}
	case reflect.Int16:
		return &cli.Int16Flag{Name: name, Usage: usage}
	case reflect.Int32:
		return &cli.Int32Flag{Name: name, Usage: usage}
	case reflect.Int64:
		return &cli.Int64Flag{Name: name, Usage: usage}

	case reflect.Uint, reflect.Uint8:
		// uint8 无专用 flag 类型，读取时收窄
		return &cli.UintFlag{Name: name, Usage: usage}
	case reflect.Uint16:
		return &cli.Uint16Flag{Name: name, Usage: usage}
	case reflect.Uint32:
		return &cli.Uint32Flag{Name: name, Usage: usage}
	case reflect.Uint64:
		return &cli.Uint64Flag{Name: name, Usage: usage}

	case reflect.Float32:
		return &cli.Float32Flag{Name: name, Usage: usage}
	case reflect.Float64:
		return &cli.Float64Flag{Name: name, Usage: usage}

	case reflect.Slice:
		return sliceFlag(name, usage, fieldType.Elem())

	case reflect.Map:
		if fieldType.Key().Kind() == reflect.String && fieldType.Elem().Kind() == reflect.String {
			return &cli.StringMapFlag{Name: name, Usage: usage}
		}
	}

	return nil
}

// sliceFlag 构造切片类型字段的 flag。
func sliceFlag(name, usage string, elemType reflect.Type) cli.Flag {
	switch elemType.Kind() {
	case reflect.String:
		return &cli.StringSliceFlag{Name: name, Usage: usage}
	case reflect.Int:
		return &cli.IntSliceFlag{Name: name, Usage: usage}
	case reflect.Int8:
		return &cli.Int8SliceFlag{Name: name, Usage: usage}
	case reflect.Int16:
		return &cli.Int16SliceFlag{Name: name, Usage: usage}
	case reflect.Int32:
		return &cli.Int32SliceFlag{Name: name, Usage: usage}
	case reflect.Int64:
		return &cli.Int64SliceFlag{Name: name, Usage: usage}
	case reflect.Uint16:
		return &cli.Uint16SliceFlag{Name: name, Usage: usage}
	case reflect.Uint32:
		return &cli.Uint32SliceFlag{Name: name, Usage: usage}
	case reflect.Float32:
		return &cli.Float32SliceFlag{Name: name, Usage: usage}
	case reflect.Float64:
		return &cli.Float64SliceFlag{Name: name, Usage: usage}
	default:
		return nil
	}
}

// CLIValues 收集用户显式设置的 CLI flags 并嵌套为配置 mapping。
//
// 仅读取 cmd.IsSet 为真的 flag，未设置的字段不出现在结果中；
// flag 名按 "." 拆分嵌套。--config 的值（若设置）以
// [ConfigFlagName] 为 key 放入结果。
func CLIValues(cmd *cli.Command, schema any) (map[string]any, error) {
	flat := make(map[string]any)
	collectValues(cmd, reflect.TypeOf(schema), "", flat)

	if _, ok := flat[ConfigFlagName]; !ok && cmd.IsSet(ConfigFlagName) {
		flat[ConfigFlagName] = cmd.String(ConfigFlagName)
	}

	return Nest(flat, CLIDelimiter)
}

// collectValues 递归遍历结构体字段并收集已设置的 flag 值。
func collectValues(cmd *cli.Command, typ reflect.Type, prefix string, flat map[string]any) {
	if typ == nil {
		return
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + CLIDelimiter + key
		}

		if isStructType(field.Type) {
			collectValues(cmd, field.Type, fullKey, flat)

			continue
		}

		if !cmd.IsSet(fullKey) {
			continue
		}
		if value := flagValue(cmd, fullKey, field.Type); value != nil {
			flat[fullKey] = value
		}
	}
}

// flagValue 按字段类型读取 flag 值。
// 切片统一转为 []any、map 统一转为 map[string]any，以便参与合并。
func flagValue(cmd *cli.Command, name string, fieldType reflect.Type) any {
	if fieldType.Kind() == reflect.Pointer {
		fieldType = fieldType.Elem()
	}

	switch fieldType {
	case durationType:
		return cmd.Duration(name)
	case timeType:
		return cmd.Timestamp(name)
	}

	switch fieldType.Kind() {
	case reflect.String:
		return cmd.String(name)
	case reflect.Bool:
		return cmd.Bool(name)

	case reflect.Int:
		return cmd.Int(name)
	case reflect.Int8:
		return cmd.Int8(name)
	case reflect.Int16:
		return cmd.Int16(name)
	case reflect.Int32:
		return cmd.Int32(name)
	case reflect.Int64:
		return cmd.Int64(name)

	case reflect.Uint:
		return cmd.Uint(name)
	case reflect.Uint8:
		return uint8(cmd.Uint(name)) //nolint:gosec // CLI value expected to be in uint8 range
	case reflect.Uint16:
		return cmd.Uint16(name)
	case reflect.Uint32:
		return cmd.Uint32(name)
	case reflect.Uint64:
		return cmd.Uint64(name)

	case reflect.Float32:
		return cmd.Float32(name)
	case reflect.Float64:
		return cmd.Float64(name)

	case reflect.Slice:
		return sliceValue(cmd, name, fieldType.Elem())

	case reflect.Map:
		if fieldType.Key().Kind() == reflect.String && fieldType.Elem().Kind() == reflect.String {
			return toAnyMap(cmd.StringMap(name))
		}
	}

	return nil
}

// sliceValue 读取切片 flag 并统一为 []any。
func sliceValue(cmd *cli.Command, name string, elemType reflect.Type) any {
	switch elemType.Kind() {
	case reflect.String:
		return toAnySlice(cmd.StringSlice(name))
	case reflect.Int:
		return toAnySlice(cmd.IntSlice(name))
	case reflect.Int8:
		return toAnySlice(cmd.Int8Slice(name))
	case reflect.Int16:
		return toAnySlice(cmd.Int16Slice(name))
	case reflect.Int32:
		return toAnySlice(cmd.Int32Slice(name))
	case reflect.Int64:
		return toAnySlice(cmd.Int64Slice(name))
	case reflect.Uint16:
		return toAnySlice(cmd.Uint16Slice(name))
	case reflect.Uint32:
		return toAnySlice(cmd.Uint32Slice(name))
	case reflect.Float32:
		return toAnySlice(cmd.Float32Slice(name))
	case reflect.Float64:
		return toAnySlice(cmd.Float64Slice(name))
	default:
		return nil
	}
}

func toAnySlice[S ~[]E, E any](values S) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

func toAnyMap(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}

	return out
}

// ParseArgs 为 schema 构建临时命令行解析器并解析 args。
//
// 供不自带 urfave/cli 命令树的调用方使用：args 的首个元素为程序名
// （与 os.Args 一致）。解析失败（未知 flag、类型不匹配的值）返回错误，
// [Load] 将其视为可降级的 source 错误。
func ParseArgs(schema any, args []string) (map[string]any, error) {
	var values map[string]any

	cmd := &cli.Command{
		Name:  "cfgl",
		Flags: FlagsFor(schema),
		Action: func(_ context.Context, cmd *cli.Command) error {
			parsed, err := CLIValues(cmd, schema)
			if err != nil {
				return err
			}
			values = parsed

			return nil
		},
	}

	if err := cmd.Run(context.Background(), args); err != nil {
		return nil, fmt.Errorf("parse cli args: %w", err)
	}
	if values == nil {
		values = map[string]any{}
	}

	return values, nil
}
