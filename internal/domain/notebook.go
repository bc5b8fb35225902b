package domain

import (
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// Notebook 笔记本领域模型
type Notebook struct {
	ID          string `json:"id"`
	UID         int64  `json:"uid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`

	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`

	// 本地簿记字段，不随载荷上行
	LocalUpdatedAt *timex.Time `json:"-"`
	SyncStatus     SyncStatus  `json:"-"`
}

// IsPending 判断笔记本是否有未确认的本地变更
func (n *Notebook) IsPending() bool {
	return n.SyncStatus == SyncStatusPending
}

// EffectiveUpdatedAt 返回冲突比较用的本地时间
func (n *Notebook) EffectiveUpdatedAt() timex.Time {
	if n.LocalUpdatedAt != nil {
		return *n.LocalUpdatedAt
	}
	return n.UpdatedAt
}
