package cfgl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

func configTagName(field reflect.StructField) string {
	return parseTagName(field.Tag.Get("json"))
}

func parseTagName(tag string) string {
	if tag == "" {
		return ""
	}
	parts := strings.Split(tag, ",")
	if len(parts) == 0 || parts[0] == "" || parts[0] == "-" {
		return ""
	}

	return parts[0]
}

func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct && typ != durationType && typ != timeType
}

// structToMap 按 json tag 将配置结构体转换为通用 mapping，
// 用作合并管线的默认值底座。
func structToMap(cfg any) map[string]any {
	val := reflect.ValueOf(cfg)
	return structValueToMap(val, val.Type())
}

func structValueToMap(val reflect.Value, typ reflect.Type) map[string]any {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return map[string]any{}
		}
		val = val.Elem()
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return map[string]any{}
	}

	out := make(map[string]any)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := configTagName(field)
		if key == "" {
			continue
		}

		fieldVal := val.Field(i)
		out[key] = valueToAny(fieldVal, field.Type)
	}

	return out
}

func valueToAny(val reflect.Value, typ reflect.Type) any {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
		typ = typ.Elem()
	}

	if isStructType(typ) {
		return structValueToMap(val, typ)
	}

	switch val.Kind() {
	case reflect.Slice:
		if val.IsNil() {
			return nil
		}
		out := make([]any, val.Len())
		for i := range val.Len() {
			elem := val.Index(i)
			out[i] = valueToAny(elem, elem.Type())
		}

		return out
	case reflect.Map:
		if val.IsNil() {
			return nil
		}
		out := make(map[string]any, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			out[key] = valueToAny(iter.Value(), iter.Value().Type())
		}

		return out
	default:
		return val.Interface()
	}
}

// overlayDefaults 将 src 覆盖进 dst（就地修改 dst）。
//
// 仅用于默认值层：默认值与各 source 的结构由同一 schema 派生，
// 无需类别检查，mapping 递归、其余值直接覆盖。
// source 之间的合并走 [Merge]，语义见 §值合并。
func overlayDefaults(dst, src map[string]any) {
	for key, value := range src {
		if valueMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				overlayDefaults(dstMap, valueMap)
				continue
			}
		}

		dst[key] = value
	}
}

// collectConfigKeys 递归收集配置结构体的叶子 key 路径。
//
// 以 json tag 为准，嵌套字段以 "." 连接（如 server.addr）。
func collectConfigKeys(cfg any) []string {
	var keys []string
	collectConfigKeysRecursive(reflect.TypeOf(cfg), "", &keys)

	return keys
}

func collectConfigKeysRecursive(typ reflect.Type, prefix string, keys *[]string) {
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
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			collectConfigKeysRecursive(field.Type, fullKey, keys)

			continue
		}

		*keys = append(*keys, fullKey)
	}
}

// flattenMapKeys 收集 mapping 的叶子 key 路径，嵌套以 "." 连接。
// 空 mapping 自身算作叶子。
func flattenMapKeys(data map[string]any) []string {
	var keys []string
	flattenMapKeysRecursive(data, "", &keys)

	return keys
}

func flattenMapKeysRecursive(data map[string]any, prefix string, keys *[]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if child, ok := value.(map[string]any); ok {
			if len(child) == 0 {
				*keys = append(*keys, fullKey)

				continue
			}
			flattenMapKeysRecursive(child, fullKey, keys)

			continue
		}

		*keys = append(*keys, fullKey)
	}
}

// ExampleYAML 根据配置结构体生成带注释的 YAML 示例。
//
// key 取 json tag，注释取 desc tag；嵌套结构体前输出空行与分组注释。
// 适合写入 config.example.yaml 供使用者复制修改。
func ExampleYAML(cfg any) []byte {
	var buf bytes.Buffer
	buf.WriteString("# 配置示例文件, 复制此文件为 config.yaml 并根据需要修改\n")

	val := reflect.ValueOf(cfg)
	writeExampleYAML(&buf, val, val.Type(), 0)

	return buf.Bytes()
}

func writeExampleYAML(buf *bytes.Buffer, val reflect.Value, typ reflect.Type, indent int) {
	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return
		}
		val = val.Elem()
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	pad := strings.Repeat("  ", indent)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := configTagName(field)
		if key == "" {
			continue
		}
		desc := field.Tag.Get("desc")

		if isStructType(field.Type) {
			buf.WriteString("\n")
			if desc != "" {
				fmt.Fprintf(buf, "%s# %s\n", pad, desc)
			}
			fmt.Fprintf(buf, "%s%s:\n", pad, key)
			writeExampleYAML(buf, val.Field(i), field.Type, indent+1)

			continue
		}

		line := fmt.Sprintf("%s%s: %s", pad, key, exampleScalar(val.Field(i), field.Type))
		if desc != "" {
			line += " # " + desc
		}
		buf.WriteString(line + "\n")
	}
}

func exampleScalar(val reflect.Value, typ reflect.Type) string {
	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return "null"
		}
		val = val.Elem()
		typ = typ.Elem()
	}

	switch typ {
	case durationType:
		return val.Interface().(time.Duration).String()
	case timeType:
		return val.Interface().(time.Time).Format(time.RFC3339)
	}

	switch typ.Kind() {
	case reflect.String:
		return "'" + val.String() + "'"
	case reflect.Slice, reflect.Map:
		if val.IsNil() {
			if typ.Kind() == reflect.Map {
				return "{}"
			}
			return "[]"
		}
		encoded, err := json.Marshal(val.Interface())
		if err != nil {
			return "null"
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", val.Interface())
	}
}

// MarshalJSON 输出缩进两格的配置 JSON；序列化失败时返回 nil。
func MarshalJSON(cfg any) []byte {
	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil
	}

	return encoded
}
