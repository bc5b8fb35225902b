package code

// 同步核心的错误分类
// 本地存储失败必须上抛；远端失败走离线降级，不对调用方抛出
var (
	ErrorInvalidParams = NewError(10000001, "invalid params")
	ErrorNotFound      = NewError(10000002, "record not found")

	// ErrorStorageUnavailable 本地存储不可用，当前操作致命，需要向用户透出
	ErrorStorageUnavailable = NewError(10100001, "local storage unavailable")

	// ErrorRemoteUnreachable 远端不可达（网络层失败）
	ErrorRemoteUnreachable = NewError(10200001, "remote store unreachable")
	// ErrorRemoteRequestFailed 远端请求失败（远端返回了失败响应）
	ErrorRemoteRequestFailed = NewError(10200002, "remote request failed")

	// ErrorSyncConflict 队列回放中收集的单条冲突，不作为异常抛出
	ErrorSyncConflict = NewError(10300001, "sync conflict")

	// ErrorSessionInvalid 会话令牌无效或已过期
	ErrorSessionInvalid = NewError(10400001, "session token invalid")
)
