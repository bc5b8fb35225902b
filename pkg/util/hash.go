package util

import (
	"strconv"
)

// EncodeHash32 计算内容的 32 位哈希
// 与 Web 客户端的 JS 实现保持一致（按 UTF-16 code unit 计算）
func EncodeHash32(content string) string {
	var hash int32 = 0
	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		char := int32(runes[i])
		hash = (hash << 5) - hash + char
		// Go 的 int32 会自动溢出处理，无需额外操作
	}
	return strconv.Itoa(int(hash))
}
