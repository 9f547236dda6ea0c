package cfgl

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bind 将合并后的 mapping 解码进强类型配置并校验 validate tag。
//
// 解码为宽松模式：字符串可转数值、时长（"30s"）等，多余 key 被忽略，
// 缺失字段保留零值，交由 validate tag 判定是否必填。
// 校验失败时报告遇到的第一个失败字段及其规则。
func Bind(data map[string]any, out any) error {
	if err := decodeConfigMap(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]

			return fmt.Errorf("invalid config: field %s failed on the %q rule", first.Namespace(), first.Tag())
		}

		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func decodeConfigMap(data map[string]any, out any) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Metadata:         nil,
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
