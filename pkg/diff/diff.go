// Package diff 提供文本差异比较工具
package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Distance 计算两段文本之间的编辑距离
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffLevenshtein(diffs)
}

// HasMaterialChange 判断两段内容之间是否存在实质差异
// 同步层不解析内容结构，只做不透明文本比较
func HasMaterialChange(a, b string) bool {
	return Distance(a, b) > 0
}
