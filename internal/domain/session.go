package domain

// Session 显式的会话上下文
// 注入仓储和同步引擎的构造函数，不读取任何全局的"当前用户"状态
type Session struct {
	UID   int64
	Email string
	Token string
}
