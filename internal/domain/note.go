// Package domain 定义领域模型和接口
package domain

import (
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// SyncStatus 定义实体的同步确认状态
type SyncStatus string

const (
	// SyncStatusSynced 本地内容已被远端确认
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusPending 存在尚未被远端确认的本地变更
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusConflict 需要人工决策的冲突，自动策略下不可达，为扩展保留
	SyncStatusConflict SyncStatus = "conflict"
)

// Note 笔记领域模型
// Content 是不透明的富文档序列化串，同步层只存储和传输，不解析其结构
type Note struct {
	ID          string `json:"id"`
	UID         int64  `json:"uid"`
	NotebookID  string `json:"notebookId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHash string `json:"contentHash"`
	Tags        string `json:"tags"`
	IsFavorite  bool   `json:"isFavorite"`
	IsArchived  bool   `json:"isArchived"`
	IsTrashed   bool   `json:"isTrashed"`

	// CreatedAt/UpdatedAt 为权威时间，UpdatedAt 由远端在权威写入时盖章
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`

	// 本地簿记字段，不随载荷上行
	LocalUpdatedAt *timex.Time `json:"-"`
	SyncStatus     SyncStatus  `json:"-"`
}

// IsSynced 判断笔记是否已同步
func (n *Note) IsSynced() bool {
	return n.SyncStatus == SyncStatusSynced
}

// IsPending 判断笔记是否有未确认的本地变更
func (n *Note) IsPending() bool {
	return n.SyncStatus == SyncStatusPending
}

// EffectiveUpdatedAt 返回冲突比较用的本地时间
// 有未确认变更时取 LocalUpdatedAt，否则回退到权威 UpdatedAt
func (n *Note) EffectiveUpdatedAt() timex.Time {
	if n.LocalUpdatedAt != nil {
		return *n.LocalUpdatedAt
	}
	return n.UpdatedAt
}
