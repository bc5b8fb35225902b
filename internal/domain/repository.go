// Package domain 定义领域模型和接口
package domain

import (
	"context"

	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// NoteStore 笔记的本地持久化存储接口
// 所有方法只会因底层存储不可用而失败（code.ErrorStorageUnavailable）
type NoteStore interface {
	// Get 根据 ID 获取笔记，不存在时返回 (nil, nil)
	Get(ctx context.Context, id string, uid int64) (*Note, error)

	// ListByUID 获取用户的所有笔记，顺序不保证
	ListByUID(ctx context.Context, uid int64) ([]*Note, error)

	// ListByStatus 按同步状态获取笔记
	ListByStatus(ctx context.Context, uid int64, status SyncStatus) ([]*Note, error)

	// ListByNotebook 获取笔记本下的所有笔记
	ListByNotebook(ctx context.Context, notebookID string, uid int64) ([]*Note, error)

	// Put 单条原子落库（upsert），整条覆盖
	Put(ctx context.Context, note *Note) error

	// Delete 删除笔记，删除不存在的 ID 是空操作而非错误
	Delete(ctx context.Context, id string, uid int64) error

	// MarkSynced 将记录置为 synced 并清除 LocalUpdatedAt
	// updatedAt 非 nil 时同时盖章权威更新时间；记录不存在时静默空操作
	MarkSynced(ctx context.Context, id string, uid int64, updatedAt *timex.Time) error
}

// NotebookStore 笔记本的本地持久化存储接口
type NotebookStore interface {
	Get(ctx context.Context, id string, uid int64) (*Notebook, error)
	ListByUID(ctx context.Context, uid int64) ([]*Notebook, error)
	ListByStatus(ctx context.Context, uid int64, status SyncStatus) ([]*Notebook, error)
	Put(ctx context.Context, notebook *Notebook) error
	Delete(ctx context.Context, id string, uid int64) error
	MarkSynced(ctx context.Context, id string, uid int64, updatedAt *timex.Time) error
}

// OutboxStore 变更队列存储接口
type OutboxStore interface {
	// Enqueue 追加一条变更条目
	Enqueue(ctx context.Context, entry *OutboxEntry) error

	// List 按入队顺序返回全部条目快照
	List(ctx context.Context) ([]*OutboxEntry, error)

	// Dequeue 按条目 ID 移除
	Dequeue(ctx context.Context, entryID int64) error

	// Count 返回条目数量
	Count(ctx context.Context) (int64, error)

	// Clear 清空队列（注销/重置时使用）
	Clear(ctx context.Context) error
}

// RemoteStore 远端记录存储接口（请求/响应式表 API）
// 远端是 UpdatedAt 的权威来源，插入/更新返回远端盖章后的更新时间
type RemoteStore interface {
	// Ping 探测远端可达性
	Ping(ctx context.Context) error

	// SelectNotes 拉取用户的全部远端笔记
	SelectNotes(ctx context.Context, uid int64) ([]*Note, error)

	// SelectNotebooks 拉取用户的全部远端笔记本
	SelectNotebooks(ctx context.Context, uid int64) ([]*Notebook, error)

	// GetUpdatedAt 获取远端记录当前的权威更新时间
	// 记录不存在时 exists 为 false，不作为错误
	GetUpdatedAt(ctx context.Context, table string, id string) (updatedAt timex.Time, exists bool, err error)

	// Insert 插入记录，payload 为线上格式的全量载荷
	Insert(ctx context.Context, table string, payload []byte) (timex.Time, error)

	// Update 按 ID 覆盖记录
	Update(ctx context.Context, table string, id string, payload []byte) (timex.Time, error)

	// Delete 按 ID 删除记录，远端记录已不存在视为成功
	Delete(ctx context.Context, table string, id string) error
}
