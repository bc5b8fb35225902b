package domain

import (
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// 实体表名
const (
	TableNotes     = "notes"
	TableNotebooks = "notebooks"
)

// OutboxOp 定义变更操作类型
type OutboxOp string

const (
	OutboxOpCreate OutboxOp = "create"
	OutboxOpUpdate OutboxOp = "update"
	OutboxOpDelete OutboxOp = "delete"
)

// OutboxEntry 变更队列条目
// 每次未被远端确认的本地变更生成一条，自增 ID 即入队顺序
// 同一实体的多次离线变更不合并，逐条回放，回放在远端幂等（全量载荷覆盖）
type OutboxEntry struct {
	ID        int64
	TableName string
	Op        OutboxOp
	EntityID  string
	// 实体的全量载荷快照（线上格式，不含本地簿记字段）
	Payload    []byte
	EnqueuedAt timex.Time
}
