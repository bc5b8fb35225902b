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

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotebookService 定义笔记本业务服务接口
type NotebookService interface {
	// Create 创建笔记本
	Create(ctx context.Context, params *dto.NotebookCreateRequest) (*dto.NotebookDTO, error)

	// Update 更新笔记本，目标不存在时返回 (nil, nil)
	Update(ctx context.Context, params *dto.NotebookUpdateRequest) (*dto.NotebookDTO, error)

	// Delete 删除笔记本并级联删除其笔记
	// 级联逐条进行且不具备原子性，中途失败保留已完成的删除
	Delete(ctx context.Context, id string) error

	// Get 获取单个笔记本，不存在时返回 NotFound
	Get(ctx context.Context, id string) (*dto.NotebookDTO, error)

	// List 获取用户的全部笔记本
	List(ctx context.Context) ([]*dto.NotebookDTO, error)
}

type notebookService struct {
	store   domain.NotebookStore
	outbox  domain.OutboxStore
	remote  domain.RemoteStore
	monitor *netmon.Monitor
	session *domain.Session
	noteSvc NoteService
	logger  *zap.Logger
}

// NewNotebookService 创建 NotebookService 实例
func NewNotebookService(
	store domain.NotebookStore,
	outbox domain.OutboxStore,
	remote domain.RemoteStore,
	monitor *netmon.Monitor,
	session *domain.Session,
	noteSvc NoteService,
	lg *zap.Logger,
) NotebookService {
	return &notebookService{
		store:   store,
		outbox:  outbox,
		remote:  remote,
		monitor: monitor,
		session: session,
		noteSvc: noteSvc,
		logger:  lg,
	}
}

func (s *notebookService) enqueue(ctx context.Context, op domain.OutboxOp, entityID string, payload []byte) error {
	err := s.outbox.Enqueue(ctx, &domain.OutboxEntry{
		TableName:  domain.TableNotebooks,
		Op:         op,
		EntityID:   entityID,
		Payload:    payload,
		EnqueuedAt: timex.Now(),
	})
	if err != nil {
		return err
	}
	s.logger.Debug("notebook change queued",
		zap.String(logger.FieldOp, string(op)),
		zap.String(logger.FieldEntityID, entityID))
	return nil
}

func (s *notebookService) confirmOrEnqueue(ctx context.Context, op domain.OutboxOp, notebook *domain.Notebook) error {
	payload, err := sonic.Marshal(notebook)
	if err != nil {
		return code.ErrorInvalidParams.WithDetails(err.Error())
	}

	if s.monitor.IsOnline() {
		var serverTime timex.Time
		var remoteErr error
		switch op {
		case domain.OutboxOpCreate:
			serverTime, remoteErr = s.remote.Insert(ctx, domain.TableNotebooks, payload)
		default:
			serverTime, remoteErr = s.remote.Update(ctx, domain.TableNotebooks, notebook.ID, payload)
		}
		if remoteErr == nil {
			return s.store.MarkSynced(ctx, notebook.ID, notebook.UID, &serverTime)
		}
		s.logger.Warn("remote confirm failed, falling back to queue",
			zap.String(logger.FieldOp, string(op)),
			zap.String(logger.FieldEntityID, notebook.ID),
			zap.Error(remoteErr))
		if code.IsCode(remoteErr, code.ErrorRemoteUnreachable) {
			s.monitor.SetOnline(false)
		}
	}
	return s.enqueue(ctx, op, notebook.ID, payload)
}

// Create 创建笔记本
func (s *notebookService) Create(ctx context.Context, params *dto.NotebookCreateRequest) (*dto.NotebookDTO, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	now := timex.Now()
	notebook := convert.StructAssign(params, &domain.Notebook{}).(*domain.Notebook)
	notebook.ID = uuid.NewString()
	notebook.UID = s.session.UID
	notebook.CreatedAt = now
	notebook.UpdatedAt = now
	notebook.LocalUpdatedAt = &now
	notebook.SyncStatus = domain.SyncStatusPending
	if err := s.store.Put(ctx, notebook); err != nil {
		return nil, err
	}
	if err := s.confirmOrEnqueue(ctx, domain.OutboxOpCreate, notebook); err != nil {
		return nil, err
	}
	return s.reload(ctx, notebook.ID)
}

// Update 更新笔记本，nil 字段保持原值
func (s *notebookService) Update(ctx context.Context, params *dto.NotebookUpdateRequest) (*dto.NotebookDTO, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	notebook, err := s.store.Get(ctx, params.ID, s.session.UID)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, nil
	}

	if params.Name != nil {
		notebook.Name = *params.Name
	}
	if params.Description != nil {
		notebook.Description = *params.Description
	}
	if params.Color != nil {
		notebook.Color = *params.Color
	}

	now := timex.Now()
	notebook.LocalUpdatedAt = &now
	notebook.SyncStatus = domain.SyncStatusPending
	if err := s.store.Put(ctx, notebook); err != nil {
		return nil, err
	}
	if err := s.confirmOrEnqueue(ctx, domain.OutboxOpUpdate, notebook); err != nil {
		return nil, err
	}
	return s.reload(ctx, notebook.ID)
}

// Delete 先级联删除笔记本下的笔记，再删除笔记本本身
func (s *notebookService) Delete(ctx context.Context, id string) error {
	notebook, err := s.store.Get(ctx, id, s.session.UID)
	if err != nil {
		return err
	}
	if notebook == nil {
		return nil
	}

	notes, err := s.noteSvc.ListByNotebook(ctx, id)
	if err != nil {
		return err
	}
	for _, note := range notes {
		if err := s.noteSvc.Delete(ctx, note.ID); err != nil {
			s.logger.Error("cascade delete interrupted",
				zap.String(logger.FieldEntityID, id),
				zap.String("noteId", note.ID),
				zap.Error(err))
			return err
		}
	}

	remoteDone := false
	if s.monitor.IsOnline() {
		if remoteErr := s.remote.Delete(ctx, domain.TableNotebooks, id); remoteErr == nil {
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
		payload, _ := sonic.Marshal(notebook)
		return s.enqueue(ctx, domain.OutboxOpDelete, id, payload)
	}
	return nil
}

// Get 获取单个笔记本
func (s *notebookService) Get(ctx context.Context, id string) (*dto.NotebookDTO, error) {
	notebook, err := s.store.Get(ctx, id, s.session.UID)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, code.ErrorNotFound
	}
	return dto.NotebookToDTO(notebook), nil
}

// List 获取用户的全部笔记本
func (s *notebookService) List(ctx context.Context) ([]*dto.NotebookDTO, error) {
	notebooks, err := s.store.ListByUID(ctx, s.session.UID)
	if err != nil {
		return nil, err
	}
	return dto.NotebooksToDTO(notebooks), nil
}

func (s *notebookService) reload(ctx context.Context, id string) (*dto.NotebookDTO, error) {
	notebook, err := s.store.Get(ctx, id, s.session.UID)
	if err != nil {
		return nil, err
	}
	return dto.NotebookToDTO(notebook), nil
}

// 确保 notebookService 实现了 NotebookService 接口
var _ NotebookService = (*notebookService)(nil)
