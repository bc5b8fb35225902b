package dao

import (
	"context"
	"errors"

	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/internal/model"
	"github.com/haierkeys/note-offline-sync/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notebookStore 实现 domain.NotebookStore 接口
type notebookStore struct {
	dao *Dao
}

// NewNotebookStore 创建 NotebookStore 实例
func NewNotebookStore(dao *Dao) domain.NotebookStore {
	return &notebookStore{dao: dao}
}

func (s *notebookStore) toDomain(m *model.Notebook) *domain.Notebook {
	if m == nil {
		return nil
	}
	return &domain.Notebook{
		ID:             m.ID,
		UID:            m.UID,
		Name:           m.Name,
		Description:    m.Description,
		Color:          m.Color,
		SyncStatus:     domain.SyncStatus(m.SyncStatus),
		LocalUpdatedAt: m.LocalUpdatedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (s *notebookStore) toModel(n *domain.Notebook) *model.Notebook {
	if n == nil {
		return nil
	}
	return &model.Notebook{
		ID:             n.ID,
		UID:            n.UID,
		Name:           n.Name,
		Description:    n.Description,
		Color:          n.Color,
		SyncStatus:     string(n.SyncStatus),
		LocalUpdatedAt: n.LocalUpdatedAt,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

// Get 根据 ID 获取笔记本，不存在时返回 (nil, nil)
func (s *notebookStore) Get(ctx context.Context, id string, uid int64) (*domain.Notebook, error) {
	var m model.Notebook
	err := s.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}
	return s.toDomain(&m), nil
}

// ListByUID 获取用户的所有笔记本
func (s *notebookStore) ListByUID(ctx context.Context, uid int64) ([]*domain.Notebook, error) {
	var ms []*model.Notebook
	err := s.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Find(&ms).Error
	if err != nil {
		return nil, storageErr(err)
	}
	notebooks := make([]*domain.Notebook, 0, len(ms))
	for _, m := range ms {
		notebooks = append(notebooks, s.toDomain(m))
	}
	return notebooks, nil
}

// ListByStatus 按同步状态获取笔记本
func (s *notebookStore) ListByStatus(ctx context.Context, uid int64, status domain.SyncStatus) ([]*domain.Notebook, error) {
	var ms []*model.Notebook
	err := s.dao.db.WithContext(ctx).
		Where("uid = ? AND sync_status = ?", uid, string(status)).
		Find(&ms).Error
	if err != nil {
		return nil, storageErr(err)
	}
	notebooks := make([]*domain.Notebook, 0, len(ms))
	for _, m := range ms {
		notebooks = append(notebooks, s.toDomain(m))
	}
	return notebooks, nil
}

// Put 单条原子落库，整条覆盖
func (s *notebookStore) Put(ctx context.Context, notebook *domain.Notebook) error {
	err := s.dao.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(s.toModel(notebook)).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// Delete 删除笔记本，删除不存在的 ID 是空操作
func (s *notebookStore) Delete(ctx context.Context, id string, uid int64) error {
	err := s.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Notebook{}).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// MarkSynced 置为 synced 并清除本地变更时间，记录不存在时静默空操作
func (s *notebookStore) MarkSynced(ctx context.Context, id string, uid int64, updatedAt *timex.Time) error {
	values := map[string]interface{}{
		"sync_status":      string(domain.SyncStatusSynced),
		"local_updated_at": nil,
	}
	if updatedAt != nil {
		values["updated_at"] = *updatedAt
	}
	err := s.dao.db.WithContext(ctx).
		Model(&model.Notebook{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(values).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// 确保 notebookStore 实现了 domain.NotebookStore 接口
var _ domain.NotebookStore = (*notebookStore)(nil)
