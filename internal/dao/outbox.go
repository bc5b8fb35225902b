package dao

import (
	"context"

	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/internal/model"
)

// outboxStore 实现 domain.OutboxStore 接口
type outboxStore struct {
	dao *Dao
}

// NewOutboxStore 创建 OutboxStore 实例
func NewOutboxStore(dao *Dao) domain.OutboxStore {
	return &outboxStore{dao: dao}
}

func (s *outboxStore) toDomain(m *model.SyncQueue) *domain.OutboxEntry {
	return &domain.OutboxEntry{
		ID:         m.ID,
		TableName:  m.TableName,
		Op:         domain.OutboxOp(m.Op),
		EntityID:   m.EntityID,
		Payload:    m.Payload,
		EnqueuedAt: m.EnqueuedAt,
	}
}

// Enqueue 追加一条变更条目，自增 ID 记录入队顺序
func (s *outboxStore) Enqueue(ctx context.Context, entry *domain.OutboxEntry) error {
	m := &model.SyncQueue{
		TableName:  entry.TableName,
		Op:         string(entry.Op),
		EntityID:   entry.EntityID,
		Payload:    entry.Payload,
		EnqueuedAt: entry.EnqueuedAt,
	}
	if err := s.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return storageErr(err)
	}
	entry.ID = m.ID
	return nil
}

// List 按入队顺序返回全部条目快照
func (s *outboxStore) List(ctx context.Context) ([]*domain.OutboxEntry, error) {
	var ms []*model.SyncQueue
	err := s.dao.db.WithContext(ctx).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, storageErr(err)
	}
	entries := make([]*domain.OutboxEntry, 0, len(ms))
	for _, m := range ms {
		entries = append(entries, s.toDomain(m))
	}
	return entries, nil
}

// Dequeue 按条目 ID 移除，移除不存在的条目是空操作
func (s *outboxStore) Dequeue(ctx context.Context, entryID int64) error {
	err := s.dao.db.WithContext(ctx).
		Where("id = ?", entryID).
		Delete(&model.SyncQueue{}).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// Count 返回条目数量
func (s *outboxStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.dao.db.WithContext(ctx).
		Model(&model.SyncQueue{}).
		Count(&count).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return count, nil
}

// Clear 清空队列
func (s *outboxStore) Clear(ctx context.Context) error {
	err := s.dao.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.SyncQueue{}).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// 确保 outboxStore 实现了 domain.OutboxStore 接口
var _ domain.OutboxStore = (*outboxStore)(nil)
