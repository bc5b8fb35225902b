package model

import (
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// Note 笔记表
// UpdatedAt 由远端盖章，禁用 gorm 的自动更新时间
type Note struct {
	ID          string `gorm:"column:id;primaryKey;size:36"`
	UID         int64  `gorm:"column:uid;index"`
	NotebookID  string `gorm:"column:notebook_id;index;size:36"`
	Title       string `gorm:"column:title;size:512"`
	Content     string `gorm:"column:content;type:text"`
	ContentHash string `gorm:"column:content_hash;size:16"`
	Tags        string `gorm:"column:tags;type:text"`
	IsFavorite  bool   `gorm:"column:is_favorite"`
	IsArchived  bool   `gorm:"column:is_archived"`
	IsTrashed   bool   `gorm:"column:is_trashed"`

	SyncStatus     string      `gorm:"column:sync_status;index;size:16"`
	LocalUpdatedAt *timex.Time `gorm:"column:local_updated_at"`

	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}
