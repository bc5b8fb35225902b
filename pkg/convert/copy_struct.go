// Package convert 提供结构体之间的字段复制与深拷贝工具
package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// StructAssign 将 source 的同名字段复制到 target，返回 target
// 仅复制可导出的同名字段，复制失败时返回未填充的 target
func StructAssign(source interface{}, target interface{}) interface{} {
	_ = copier.Copy(target, source)
	return target
}

// DeepClone 通过序列化实现深拷贝
func DeepClone(source interface{}, target interface{}) error {
	data, err := sonic.Marshal(source)
	if err != nil {
		return errors.Wrap(err, "deep clone marshal")
	}
	if err := sonic.Unmarshal(data, target); err != nil {
		return errors.Wrap(err, "deep clone unmarshal")
	}
	return nil
}
