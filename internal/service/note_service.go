package service

import (
	"context"

	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/internal/dto"
	"github.com/haierkeys/note-offline-sync/internal/netmon"
	"github.com/haierkeys/note-offline-sync/pkg/code"
	"github.com/haierkeys/note-offline-sync/pkg/convert"
	"github.com/haierkeys/note-offline-sync/pkg/logger"
	"github.com/haierkeys/note-offline-sync/pkg/timex"
	"github.com/haierkeys/note-offline-sync/pkg/util"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
// 所有写操作先本地落库，再在线路允许时尝试远端确认，失败转入变更队列
type NoteService interface {
	// Create 创建笔记
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update 更新笔记，目标不存在时返回 (nil, nil)
	Update(ctx context.Context, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 删除笔记，目标不存在时是空操作
	Delete(ctx context.Context, id string) error

	// Get 获取单条笔记，不存在时返回 NotFound
	Get(ctx context.Context, id string) (*dto.NoteDTO, error)

	// List 获取用户的全部笔记
	List(ctx context.Context) ([]*dto.NoteDTO, error)

	// ListByNotebook 获取笔记本下的笔记
	ListByNotebook(ctx context.Context, notebookID string) ([]*dto.NoteDTO, error)

	// ToggleFavorite 切换收藏状态
	ToggleFavorite(ctx context.Context, id string) (*dto.NoteDTO, error)

	// Archive 归档笔记
	Archive(ctx context.Context, id string) (*dto.NoteDTO, error)

	// Unarchive 取消归档
	Unarchive(ctx context.Context, id string) (*dto.NoteDTO, error)

	// Trash 移入回收站
	Trash(ctx context.Context, id string) (*dto.NoteDTO, error)

	// Restore 从回收站恢复
	Restore(ctx context.Context, id string) (*dto.NoteDTO, error)
}

type noteService struct {
	store   domain.NoteStore
	outbox  domain.OutboxStore
	remote  domain.RemoteStore
	monitor *netmon.Monitor
	session *domain.Session
	logger  *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(
	store domain.NoteStore,
	outbox domain.OutboxStore,
	remote domain.RemoteStore,
	monitor *netmon.Monitor,
	session *domain.Session,
	lg *zap.Logger,
) NoteService {
	return &noteService{
		store:   store,
		outbox:  outbox,
		remote:  remote,
		monitor: monitor,
		session: session,
		logger:  lg,
	}
}

// enqueue 将变更快照转入队列，等待下一次排空回放
func (s *noteService) enqueue(ctx context.Context, op domain.OutboxOp, entityID string, payload []byte) error {
	err := s.outbox.Enqueue(ctx, &domain.OutboxEntry{
		TableName:  domain.TableNotes,
		Op:         op,
		EntityID:   entityID,
		Payload:    payload,
		EnqueuedAt: timex.Now(),
	})
	if err != nil {
		return err
	}
	s.logger.Debug("note change queued",
		zap.String(logger.FieldOp, string(op)),
		zap.String(logger.FieldEntityID, entityID))
	return nil
}

// confirmOrEnqueue 尝试远端确认本地已落库的 create/update 变更
// 远端成功则用服务端时间盖章置为 synced，否则转入队列保持 pending
func (s *noteService) confirmOrEnqueue(ctx context.Context, op domain.OutboxOp, note *domain.Note) error {
	payload, err := sonic.Marshal(note)
	if err != nil {
		return code.ErrorInvalidParams.WithDetails(err.Error())
	}

	if s.monitor.IsOnline() {
		var serverTime timex.Time
		var remoteErr error
		switch op {
		case domain.OutboxOpCreate:
			serverTime, remoteErr = s.remote.Insert(ctx, domain.TableNotes, payload)
		default:
			serverTime, remoteErr = s.remote.Update(ctx, domain.TableNotes, note.ID, payload)
		}
		if remoteErr == nil {
			return s.store.MarkSynced(ctx, note.ID, note.UID, &serverTime)
		}
		s.logger.Warn("remote confirm failed, falling back to queue",
			zap.String(logger.FieldOp, string(op)),
			zap.String(logger.FieldEntityID, note.ID),
			zap.Error(remoteErr))
		if code.IsCode(remoteErr, code.ErrorRemoteUnreachable) {
			s.monitor.SetOnline(false)
		}
	}
	return s.enqueue(ctx, op, note.ID, payload)
}

// Create 创建笔记，本地落库永不因远端失败而丢失
func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	now := timex.Now()
	note := convert.StructAssign(params, &domain.Note{}).(*domain.Note)
	note.ID = uuid.NewString()
	note.UID = s.session.UID
	note.ContentHash = util.EncodeHash32(note.Content)
	note.CreatedAt = now
	note.UpdatedAt = now
	note.LocalUpdatedAt = &now
	note.SyncStatus = domain.SyncStatusPending
	if err := s.store.Put(ctx, note); err != nil {
		return nil, err
	}

	if err := s.confirmOrEnqueue(ctx, domain.OutboxOpCreate, note); err != nil {
		return nil, err
	}
	return s.reload(ctx, note.ID)
}

// Update 更新笔记，nil 字段保持原值
func (s *noteService) Update(ctx context.Context, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	note, err := s.store.Get(ctx, params.ID, s.session.UID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	if params.NotebookID != nil {
		note.NotebookID = *params.NotebookID
	}
	if params.Title != nil {
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
		note.ContentHash = util.EncodeHash32(*params.Content)
	}
	if params.Tags != nil {
		note.Tags = *params.Tags
	}
	if params.IsFavorite != nil {
		note.IsFavorite = *params.IsFavorite
	}
	if params.IsArchived != nil {
		note.IsArchived = *params.IsArchived
	}
	if params.IsTrashed != nil {
		note.IsTrashed = *params.IsTrashed
	}
	return s.applyUpdate(ctx, note)
}

// applyUpdate 将修改后的笔记落库并尝试远端确认
func (s *noteService) applyUpdate(ctx context.Context, note *domain.Note) (*dto.NoteDTO, error) {
	now := timex.Now()
	note.LocalUpdatedAt = &now
	note.SyncStatus = domain.SyncStatusPending
	if err := s.store.Put(ctx, note); err != nil {
		return nil, err
	}
	if err := s.confirmOrEnqueue(ctx, domain.OutboxOpUpdate, note); err != nil {
		return nil, err
	}
	return s.reload(ctx, note.ID)
}

// mutate 读取、修改、落库的公共路径，承载各专用写操作
func (s *noteService) mutate(ctx context.Context, id string, fn func(*domain.Note)) (*dto.NoteDTO, error) {
	note, err := s.store.Get(ctx, id, s.session.UID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, code.ErrorNotFound
	}
	fn(note)
	return s.applyUpdate(ctx, note)
}

// Delete 删除笔记，在线时优先远端删除，失败不阻断本地删除
func (s *noteService) Delete(ctx context.Context, id string) error {
	note, err := s.store.Get(ctx, id, s.session.UID)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}

	remoteDone := false
	if s.monitor.IsOnline() {
		if remoteErr := s.remote.Delete(ctx, domain.TableNotes, id); remoteErr == nil {
			remoteDone = true
		} else {
			s.logger.Warn("remote delete failed, falling back to queue",
				zap.String(logger.FieldEntityID, id),
				zap.Error(remoteErr))
			if code.IsCode(remoteErr, code.ErrorRemoteUnreachable) {
				s.monitor.SetOnline(false)
			}
		}
	}

	if err := s.store.Delete(ctx, id, s.session.UID); err != nil {
		return err
	}
	if !remoteDone {
		payload, _ := sonic.Marshal(note)
		return s.enqueue(ctx, domain.OutboxOpDelete, id, payload)
	}
	return nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, id string) (*dto.NoteDTO, error) {
	note, err := s.store.Get(ctx, id, s.session.UID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, code.ErrorNotFound
	}
	return dto.NoteToDTO(note), nil
}

// List 获取用户的全部笔记
func (s *noteService) List(ctx context.Context) ([]*dto.NoteDTO, error) {
	notes, err := s.store.ListByUID(ctx, s.session.UID)
	if err != nil {
		return nil, err
	}
	return dto.NotesToDTO(notes), nil
}

// ListByNotebook 获取笔记本下的笔记
func (s *noteService) ListByNotebook(ctx context.Context, notebookID string) ([]*dto.NoteDTO, error) {
	notes, err := s.store.ListByNotebook(ctx, notebookID, s.session.UID)
	if err != nil {
		return nil, err
	}
	return dto.NotesToDTO(notes), nil
}

// ToggleFavorite 切换收藏状态
func (s *noteService) ToggleFavorite(ctx context.Context, id string) (*dto.NoteDTO, error) {
	return s.mutate(ctx, id, func(n *domain.Note) {
		n.IsFavorite = !n.IsFavorite
	})
}

// Archive 归档笔记
func (s *noteService) Archive(ctx context.Context, id string) (*dto.NoteDTO, error) {
	return s.mutate(ctx, id, func(n *domain.Note) {
		n.IsArchived = true
	})
}

// Unarchive 取消归档
func (s *noteService) Unarchive(ctx context.Context, id string) (*dto.NoteDTO, error) {
	return s.mutate(ctx, id, func(n *domain.Note) {
		n.IsArchived = false
	})
}

// Trash 移入回收站
func (s *noteService) Trash(ctx context.Context, id string) (*dto.NoteDTO, error) {
	return s.mutate(ctx, id, func(n *domain.Note) {
		n.IsTrashed = true
	})
}

// Restore 从回收站恢复
func (s *noteService) Restore(ctx context.Context, id string) (*dto.NoteDTO, error) {
	return s.mutate(ctx, id, func(n *domain.Note) {
		n.IsTrashed = false
	})
}

// reload 回读最终落库状态，保证读己之写
func (s *noteService) reload(ctx context.Context, id string) (*dto.NoteDTO, error) {
	note, err := s.store.Get(ctx, id, s.session.UID)
	if err != nil {
		return nil, err
	}
	return dto.NoteToDTO(note), nil
}

// 确保 noteService 实现了 NoteService 接口
var _ NoteService = (*noteService)(nil)
