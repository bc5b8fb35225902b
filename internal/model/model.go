// Package model 定义 gorm 持久化模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移指定集合，key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Note":
		return db.AutoMigrate(Note{})
	case "Notebook":
		return db.AutoMigrate(Notebook{})
	case "SyncQueue":
		return db.AutoMigrate(SyncQueue{})
	case "":
		return db.AutoMigrate(Note{}, Notebook{}, SyncQueue{})
	}
	return nil
}
