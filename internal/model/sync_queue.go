package model

import (
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// SyncQueue 变更队列表
// 自增主键即入队顺序
type SyncQueue struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	TableName  string     `gorm:"column:table_name;index;size:32"`
	Op         string     `gorm:"column:op;size:16"`
	EntityID   string     `gorm:"column:entity_id;index;size:36"`
	Payload    []byte     `gorm:"column:payload;type:blob"`
	EnqueuedAt timex.Time `gorm:"column:enqueued_at;autoCreateTime:false"`
}
