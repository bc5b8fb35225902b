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

// noteStore 实现 domain.NoteStore 接口
type noteStore struct {
	dao *Dao
}

// NewNoteStore 创建 NoteStore 实例
func NewNoteStore(dao *Dao) domain.NoteStore {
	return &noteStore{dao: dao}
}

// toDomain 将存储模型转换为领域模型
func (s *noteStore) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:             m.ID,
		UID:            m.UID,
		NotebookID:     m.NotebookID,
		Title:          m.Title,
		Content:        m.Content,
		ContentHash:    m.ContentHash,
		Tags:           m.Tags,
		IsFavorite:     m.IsFavorite,
		IsArchived:     m.IsArchived,
		IsTrashed:      m.IsTrashed,
		SyncStatus:     domain.SyncStatus(m.SyncStatus),
		LocalUpdatedAt: m.LocalUpdatedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// toModel 将领域模型转换为存储模型
func (s *noteStore) toModel(n *domain.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		ID:             n.ID,
		UID:            n.UID,
		NotebookID:     n.NotebookID,
		Title:          n.Title,
		Content:        n.Content,
		ContentHash:    n.ContentHash,
		Tags:           n.Tags,
		IsFavorite:     n.IsFavorite,
		IsArchived:     n.IsArchived,
		IsTrashed:      n.IsTrashed,
		SyncStatus:     string(n.SyncStatus),
		LocalUpdatedAt: n.LocalUpdatedAt,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

// Get 根据 ID 获取笔记，不存在时返回 (nil, nil)
func (s *noteStore) Get(ctx context.Context, id string, uid int64) (*domain.Note, error) {
	var m model.Note
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

// ListByUID 获取用户的所有笔记
func (s *noteStore) ListByUID(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var ms []*model.Note
	err := s.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Find(&ms).Error
	if err != nil {
		return nil, storageErr(err)
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, s.toDomain(m))
	}
	return notes, nil
}

// ListByStatus 按同步状态获取笔记
func (s *noteStore) ListByStatus(ctx context.Context, uid int64, status domain.SyncStatus) ([]*domain.Note, error) {
	var ms []*model.Note
	err := s.dao.db.WithContext(ctx).
		Where("uid = ? AND sync_status = ?", uid, string(status)).
		Find(&ms).Error
	if err != nil {
		return nil, storageErr(err)
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, s.toDomain(m))
	}
	return notes, nil
}

// ListByNotebook 获取笔记本下的所有笔记
func (s *noteStore) ListByNotebook(ctx context.Context, notebookID string, uid int64) ([]*domain.Note, error) {
	var ms []*model.Note
	err := s.dao.db.WithContext(ctx).
		Where("notebook_id = ? AND uid = ?", notebookID, uid).
		Find(&ms).Error
	if err != nil {
		return nil, storageErr(err)
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, s.toDomain(m))
	}
	return notes, nil
}

// Put 单条原子落库，整条覆盖
func (s *noteStore) Put(ctx context.Context, note *domain.Note) error {
	err := s.dao.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(s.toModel(note)).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// Delete 删除笔记，删除不存在的 ID 是空操作
func (s *noteStore) Delete(ctx context.Context, id string, uid int64) error {
	err := s.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Note{}).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// MarkSynced 置为 synced 并清除本地变更时间，记录不存在时静默空操作
func (s *noteStore) MarkSynced(ctx context.Context, id string, uid int64, updatedAt *timex.Time) error {
	values := map[string]interface{}{
		"sync_status":      string(domain.SyncStatusSynced),
		"local_updated_at": nil,
	}
	if updatedAt != nil {
		values["updated_at"] = *updatedAt
	}
	err := s.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(values).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// 确保 noteStore 实现了 domain.NoteStore 接口
var _ domain.NoteStore = (*noteStore)(nil)
