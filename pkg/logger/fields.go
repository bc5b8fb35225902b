package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldTable 实体表名字段
	FieldTable = "table"

	// FieldEntityID 实体 ID 字段
	FieldEntityID = "entityId"

	// FieldOp 变更操作类型字段
	FieldOp = "op"

	// FieldEntryID 队列条目 ID 字段
	FieldEntryID = "entryId"

	// FieldStatus 同步状态字段
	FieldStatus = "status"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldEndpoint 远端地址字段
	FieldEndpoint = "endpoint"

	// FieldError 错误信息字段
	FieldError = "error"
)
