// Package dto 定义服务层的请求与响应结构
package dto

import (
	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// NoteCreateRequest 创建笔记请求
type NoteCreateRequest struct {
	NotebookID string `json:"notebookId"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	Tags       string `json:"tags"`
	IsFavorite bool   `json:"isFavorite"`
}

// NoteUpdateRequest 更新笔记请求，nil 字段表示不修改
type NoteUpdateRequest struct {
	ID         string  `json:"id" binding:"required"`
	NotebookID *string `json:"notebookId"`
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Tags       *string `json:"tags"`
	IsFavorite *bool   `json:"isFavorite"`
	IsArchived *bool   `json:"isArchived"`
	IsTrashed  *bool   `json:"isTrashed"`
}

// NoteDTO 笔记响应结构，携带同步簿记字段供界面展示
type NoteDTO struct {
	ID          string     `json:"id"`
	UID         int64      `json:"uid"`
	NotebookID  string     `json:"notebookId"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentHash string     `json:"contentHash"`
	Tags        string     `json:"tags"`
	IsFavorite  bool       `json:"isFavorite"`
	IsArchived  bool       `json:"isArchived"`
	IsTrashed   bool       `json:"isTrashed"`
	SyncStatus  string     `json:"syncStatus"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}

// NoteToDTO 将领域模型转换为响应结构
func NoteToDTO(n *domain.Note) *NoteDTO {
	if n == nil {
		return nil
	}
	return &NoteDTO{
		ID:          n.ID,
		UID:         n.UID,
		NotebookID:  n.NotebookID,
		Title:       n.Title,
		Content:     n.Content,
		ContentHash: n.ContentHash,
		Tags:        n.Tags,
		IsFavorite:  n.IsFavorite,
		IsArchived:  n.IsArchived,
		IsTrashed:   n.IsTrashed,
		SyncStatus:  string(n.SyncStatus),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// NotesToDTO 批量转换
func NotesToDTO(notes []*domain.Note) []*NoteDTO {
	out := make([]*NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteToDTO(n))
	}
	return out
}
