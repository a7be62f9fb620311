// Package validate 注册请求参数的自定义校验规则
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

var registerOnce sync.Once

// Register 向 gin 默认校验器注册 date / clock 规则，重复调用无副作用
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin 校验引擎不是 validator/v10")
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn 在指定校验器上注册自定义规则
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("date", isDate); err != nil {
		return err
	}
	return v.RegisterValidation("clock", isClock)
}

// isDate YYYY-MM-DD
func isDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

// isClock HH:MM 或 HH:MM:SS
func isClock(fl validator.FieldLevel) bool {
	_, err := model.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

// Message 将校验错误转换为可读说明；非校验错误原样返回 err.Error()
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 为必填项", field)
	case "email":
		return fmt.Sprintf("%s 不是合法的邮箱地址", field)
	case "date":
		return fmt.Sprintf("%s 格式应为 YYYY-MM-DD", field)
	case "clock":
		return fmt.Sprintf("%s 格式应为 HH:MM 或 HH:MM:SS", field)
	case "min", "gte":
		return fmt.Sprintf("%s 不能小于 %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s 不能大于 %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s 必须是 [%s] 之一", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s 不是合法的 UUID", field)
	default:
		return fmt.Sprintf("%s 校验失败 (%s)", field, fe.Tag())
	}
}
