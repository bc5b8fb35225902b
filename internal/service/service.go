// Package service 实现业务逻辑层
package service

import (
	"github.com/haierkeys/note-offline-sync/pkg/code"

	"github.com/go-playground/validator/v10"
)

// validate 参数校验器，沿用 DTO 上的 binding 标签
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// validateParams 校验请求参数，失败归为 InvalidParams
func validateParams(params interface{}) error {
	if err := validate.Struct(params); err != nil {
		return code.ErrorInvalidParams.WithDetails(err.Error())
	}
	return nil
}
