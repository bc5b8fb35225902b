package model

import (
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// Notebook 笔记本表
type Notebook struct {
	ID          string `gorm:"column:id;primaryKey;size:36"`
	UID         int64  `gorm:"column:uid;index"`
	Name        string `gorm:"column:name;size:255"`
	Description string `gorm:"column:description;size:1024"`
	Color       string `gorm:"column:color;size:32"`

	SyncStatus     string      `gorm:"column:sync_status;index;size:16"`
	LocalUpdatedAt *timex.Time `gorm:"column:local_updated_at"`

	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}
