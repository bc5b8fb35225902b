// Package dao 实现本地持久化存储层
package dao

import (
	"os"

	"github.com/haierkeys/note-offline-sync/global"
	"github.com/haierkeys/note-offline-sync/internal/model"
	"github.com/haierkeys/note-offline-sync/pkg/code"
	"github.com/haierkeys/note-offline-sync/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Dao 本地存储容器
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New 创建 Dao 实例
func New(db *gorm.DB, logger *zap.Logger) *Dao {
	return &Dao{db: db, logger: logger}
}

// DB 返回底层数据库连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// NewDBEngine 打开本地 sqlite 数据库并完成迁移
func NewDBEngine(c global.Database) (*gorm.DB, error) {
	if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(c.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := model.AutoMigrate(db, ""); err != nil {
		return nil, err
	}
	return db, nil
}

// storageErr 将底层存储错误统一转换为 StorageUnavailable
// 本地存储失败对当前操作是致命的，调用方必须上抛而非吞掉
func storageErr(err error) error {
	return code.ErrorStorageUnavailable.WithDetails(err.Error())
}
