// Package code 定义带错误码的错误类型和同步错误分类
package code

import (
	"errors"
	"fmt"
)

// Code 带错误码的错误
type Code struct {
	// 状态码
	code int
	// 错误消息
	msg string
	// 错误详细信息
	details []string
}

var codes = map[int]string{}

// NewError 注册一个新的错误码，重复注册会 panic
func NewError(code int, msg string) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = msg
	return &Code{code: code, msg: msg}
}

// Error 实现 error 接口
func (c *Code) Error() string {
	if len(c.details) > 0 {
		return fmt.Sprintf("%s: %s", c.msg, c.details[0])
	}
	return c.msg
}

// Code 返回错误码
func (c *Code) Code() int {
	return c.code
}

// Msg 返回错误消息
func (c *Code) Msg() string {
	return c.msg
}

// Details 返回错误详情
func (c *Code) Details() []string {
	return c.details
}

// WithDetails 返回携带详情的错误副本，不修改注册的原始错误
func (c *Code) WithDetails(details ...string) *Code {
	newCode := &Code{
		code: c.code,
		msg:  c.msg,
	}
	newCode.details = append(newCode.details, details...)
	return newCode
}

// Is 支持 errors.Is 按错误码比较
func (c *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return c.code == t.code
}

// IsCode 判断 err 链上是否存在指定错误码
func IsCode(err error, c *Code) bool {
	if err == nil || c == nil {
		return false
	}
	return errors.Is(err, c)
}
