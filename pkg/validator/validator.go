package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Init 让校验错误使用json字段名（只需调用一次）
func Init() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	})
}

// Translate 把绑定错误转成 {字段: 提示}
// 返回false表示不是字段校验错误（例如JSON格式错误）
func Translate(err error) (map[string]string, bool) {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil, false
	}

	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		name := fe.Field()
		if name == "" {
			name = fe.StructField()
		}
		fields[name] = message(fe)
	}
	return fields, true
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "email":
		return "邮箱格式不正确"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("长度不能少于%s个字符", fe.Param())
		}
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("长度不能超过%s个字符", fe.Param())
		}
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "oneof":
		return fmt.Sprintf("必须是以下之一: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("必须大于%s", fe.Param())
	case "dive":
		return "元素不合法"
	default:
		return fmt.Sprintf("校验失败(%s)", fe.Tag())
	}
}
