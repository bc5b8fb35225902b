package dto

import (
	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/pkg/timex"
)

// NotebookCreateRequest 创建笔记本请求
type NotebookCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// NotebookUpdateRequest 更新笔记本请求，nil 字段表示不修改
type NotebookUpdateRequest struct {
	ID          string  `json:"id" binding:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// NotebookDTO 笔记本响应结构
type NotebookDTO struct {
	ID          string     `json:"id"`
	UID         int64      `json:"uid"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	SyncStatus  string     `json:"syncStatus"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}

// NotebookToDTO 将领域模型转换为响应结构
func NotebookToDTO(nb *domain.Notebook) *NotebookDTO {
	if nb == nil {
		return nil
	}
	return &NotebookDTO{
		ID:          nb.ID,
		UID:         nb.UID,
		Name:        nb.Name,
		Description: nb.Description,
		Color:       nb.Color,
		SyncStatus:  string(nb.SyncStatus),
		CreatedAt:   nb.CreatedAt,
		UpdatedAt:   nb.UpdatedAt,
	}
}

// NotebooksToDTO 批量转换
func NotebooksToDTO(notebooks []*domain.Notebook) []*NotebookDTO {
	out := make([]*NotebookDTO, 0, len(notebooks))
	for _, nb := range notebooks {
		out = append(out, NotebookToDTO(nb))
	}
	return out
}
