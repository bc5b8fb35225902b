package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/internal/dto"
	"github.com/haierkeys/note-offline-sync/internal/netmon"
	"github.com/haierkeys/note-offline-sync/pkg/code"
	"github.com/haierkeys/note-offline-sync/pkg/diff"
	"github.com/haierkeys/note-offline-sync/pkg/logger"
	"github.com/haierkeys/note-offline-sync/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SyncService 定义同步引擎接口
// 排空将队列中的本地变更回放到远端，拉取将远端状态整体刷回本地
type SyncService interface {
	// DrainOutbox 按入队顺序回放变更队列
	// 远端不可达时中断并保留剩余条目，返回已完成部分的统计
	DrainOutbox(ctx context.Context) (*dto.SyncResult, error)

	// PullFromRemote 以远端为准整体刷新本地（远端优先）
	// 已确认的本地记录若在远端消失则删除，pending 记录保留
	PullFromRemote(ctx context.Context) error

	// PerformFullSync 先排空后拉取的完整同步，重入时合并为一次执行
	PerformFullSync(ctx context.Context) (*dto.SyncResult, error)

	// IsSyncing 判断完整同步是否正在进行
	IsSyncing() bool
}

type syncService struct {
	notes     domain.NoteStore
	notebooks domain.NotebookStore
	outbox    domain.OutboxStore
	remote    domain.RemoteStore
	monitor   *netmon.Monitor
	session   *domain.Session
	logger    *zap.Logger

	// conflictCopies 打开时，拉取覆盖未确认的本地修改前先另存冲突副本
	conflictCopies bool
	noteSvc        NoteService

	sf      singleflight.Group
	syncing atomic.Bool
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(
	notes domain.NoteStore,
	notebooks domain.NotebookStore,
	outbox domain.OutboxStore,
	remote domain.RemoteStore,
	monitor *netmon.Monitor,
	session *domain.Session,
	noteSvc NoteService,
	conflictCopies bool,
	lg *zap.Logger,
) SyncService {
	return &syncService{
		notes:          notes,
		notebooks:      notebooks,
		outbox:         outbox,
		remote:         remote,
		monitor:        monitor,
		session:        session,
		noteSvc:        noteSvc,
		conflictCopies: conflictCopies,
		logger:         lg,
	}
}

// markSynced 按表名分发已确认标记
func (s *syncService) markSynced(ctx context.Context, table, id string, updatedAt *timex.Time) error {
	switch table {
	case domain.TableNotebooks:
		return s.notebooks.MarkSynced(ctx, id, s.session.UID, updatedAt)
	default:
		return s.notes.MarkSynced(ctx, id, s.session.UID, updatedAt)
	}
}

// localEffectiveUpdatedAt 返回本地记录的冲突比较时间
// 本地记录已不存在时（例如后续队列条目会删除它）返回零值，让远端胜出
func (s *syncService) localEffectiveUpdatedAt(ctx context.Context, table, id string) (timex.Time, error) {
	switch table {
	case domain.TableNotebooks:
		nb, err := s.notebooks.Get(ctx, id, s.session.UID)
		if err != nil || nb == nil {
			return timex.Time{}, err
		}
		return nb.EffectiveUpdatedAt(), nil
	default:
		n, err := s.notes.Get(ctx, id, s.session.UID)
		if err != nil || n == nil {
			return timex.Time{}, err
		}
		return n.EffectiveUpdatedAt(), nil
	}
}

// replayEntry 回放单个队列条目
// abandoned 为 true 表示按远端优先策略放弃了本地变更
func (s *syncService) replayEntry(ctx context.Context, entry *domain.OutboxEntry) (abandoned bool, err error) {
	switch entry.Op {
	case domain.OutboxOpCreate:
		serverTime, err := s.remote.Insert(ctx, entry.TableName, entry.Payload)
		if err != nil {
			return false, err
		}
		return false, s.markSynced(ctx, entry.TableName, entry.EntityID, &serverTime)

	case domain.OutboxOpUpdate:
		remoteUpdatedAt, exists, err := s.remote.GetUpdatedAt(ctx, entry.TableName, entry.EntityID)
		if err != nil {
			return false, err
		}
		if !exists {
			// 远端记录已消失，按载荷重建
			serverTime, err := s.remote.Insert(ctx, entry.TableName, entry.Payload)
			if err != nil {
				return false, err
			}
			return false, s.markSynced(ctx, entry.TableName, entry.EntityID, &serverTime)
		}

		localUpdatedAt, err := s.localEffectiveUpdatedAt(ctx, entry.TableName, entry.EntityID)
		if err != nil {
			return false, err
		}
		if remoteUpdatedAt.After(localUpdatedAt) {
			// 远端严格更新，放弃本地变更并标记已确认
			// 内容随后由拉取刷回，被放弃的修改先另存冲突副本
			if err := s.abandonLocalChange(ctx, entry); err != nil {
				return false, err
			}
			return true, s.markSynced(ctx, entry.TableName, entry.EntityID, nil)
		}
		serverTime, err := s.remote.Update(ctx, entry.TableName, entry.EntityID, entry.Payload)
		if err != nil {
			return false, err
		}
		// 盖章服务端时间，同一实体的后续回放与其打平后继续覆盖
		return false, s.markSynced(ctx, entry.TableName, entry.EntityID, &serverTime)

	case domain.OutboxOpDelete:
		return false, s.remote.Delete(ctx, entry.TableName, entry.EntityID)

	default:
		return false, code.ErrorInvalidParams.WithDetails(
			fmt.Sprintf("unknown outbox op %q", entry.Op))
	}
}

// abandonLocalChange 放弃前为仍未确认的本地笔记修改另存冲突副本
func (s *syncService) abandonLocalChange(ctx context.Context, entry *domain.OutboxEntry) error {
	if !s.conflictCopies || entry.TableName != domain.TableNotes {
		return nil
	}
	local, err := s.notes.Get(ctx, entry.EntityID, s.session.UID)
	if err != nil {
		return err
	}
	if local == nil || !local.IsPending() {
		return nil
	}
	_, err = s.saveConflictCopy(ctx, local)
	return err
}

// DrainOutbox 按入队顺序回放变更队列
func (s *syncService) DrainOutbox(ctx context.Context) (*dto.SyncResult, error) {
	start := time.Now()
	entries, err := s.outbox.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.SyncResult{}
	for _, entry := range entries {
		abandoned, replayErr := s.replayEntry(ctx, entry)
		if replayErr != nil {
			if code.IsCode(replayErr, code.ErrorRemoteUnreachable) {
				// 线路中断，保留剩余条目等待下次排空
				s.monitor.SetOnline(false)
				s.logger.Warn("outbox drain interrupted",
					zap.Int(logger.FieldCount, result.Success),
					zap.Int64(logger.FieldEntryID, entry.ID),
					zap.Error(replayErr))
				return result, replayErr
			}
			// 失败的条目保留在队列中等待下次排空重试
			// 单个实体的失败不阻断其余条目
			result.Conflicts = append(result.Conflicts, &dto.SyncConflict{
				EntryID:  entry.ID,
				Table:    entry.TableName,
				Op:       string(entry.Op),
				EntityID: entry.EntityID,
				Error:    replayErr.Error(),
			})
			s.logger.Warn("outbox entry replay failed, kept for retry",
				zap.Int64(logger.FieldEntryID, entry.ID),
				zap.String(logger.FieldOp, string(entry.Op)),
				zap.Error(replayErr))
			continue
		}
		if abandoned {
			result.Conflicts = append(result.Conflicts, &dto.SyncConflict{
				EntryID:  entry.ID,
				Table:    entry.TableName,
				Op:       string(entry.Op),
				EntityID: entry.EntityID,
				Error:    code.ErrorSyncConflict.Msg(),
			})
			s.logger.Info("local change abandoned, remote is newer",
				zap.String(logger.FieldTable, entry.TableName),
				zap.String(logger.FieldEntityID, entry.EntityID))
		} else {
			result.Success++
		}
		if err := s.outbox.Dequeue(ctx, entry.ID); err != nil {
			return result, err
		}
	}

	s.logger.Info("outbox drained",
		zap.Int(logger.FieldCount, result.Success),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return result, nil
}

// pullNotes 以远端笔记为准刷新本地
func (s *syncService) pullNotes(ctx context.Context) error {
	remoteNotes, err := s.remote.SelectNotes(ctx, s.session.UID)
	if err != nil {
		return err
	}

	remoteIDs := make(map[string]struct{}, len(remoteNotes))
	for _, rn := range remoteNotes {
		remoteIDs[rn.ID] = struct{}{}

		local, err := s.notes.Get(ctx, rn.ID, s.session.UID)
		if err != nil {
			return err
		}
		if local != nil && local.IsPending() && s.conflictCopies &&
			diff.HasMaterialChange(local.Content, rn.Content) {
			copyID, err := s.saveConflictCopy(ctx, local)
			if err != nil {
				return err
			}
			// 副本不在远端快照里，保护它不被镜像清理删掉
			remoteIDs[copyID] = struct{}{}
		}

		rn.UID = s.session.UID
		rn.SyncStatus = domain.SyncStatusSynced
		rn.LocalUpdatedAt = nil
		if err := s.notes.Put(ctx, rn); err != nil {
			return err
		}
	}

	// 远端已消失且本地已确认的记录视为他端删除
	locals, err := s.notes.ListByUID(ctx, s.session.UID)
	if err != nil {
		return err
	}
	for _, local := range locals {
		if _, ok := remoteIDs[local.ID]; ok {
			continue
		}
		if !local.IsSynced() {
			continue
		}
		if err := s.notes.Delete(ctx, local.ID, s.session.UID); err != nil {
			return err
		}
	}
	return nil
}

// saveConflictCopy 为将被远端覆盖的未确认修改另存一份副本，返回副本 ID
func (s *syncService) saveConflictCopy(ctx context.Context, local *domain.Note) (string, error) {
	title := fmt.Sprintf("%s (conflict %s)", local.Title, time.Now().Format("20060102150405"))
	copied, err := s.noteSvc.Create(ctx, &dto.NoteCreateRequest{
		NotebookID: local.NotebookID,
		Title:      title,
		Content:    local.Content,
		Tags:       local.Tags,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("conflict copy saved",
		zap.String(logger.FieldEntityID, local.ID),
		zap.String("title", title))
	return copied.ID, nil
}

// pullNotebooks 以远端笔记本为准刷新本地
func (s *syncService) pullNotebooks(ctx context.Context) error {
	remoteNotebooks, err := s.remote.SelectNotebooks(ctx, s.session.UID)
	if err != nil {
		return err
	}

	remoteIDs := make(map[string]struct{}, len(remoteNotebooks))
	for _, rnb := range remoteNotebooks {
		remoteIDs[rnb.ID] = struct{}{}
		rnb.UID = s.session.UID
		rnb.SyncStatus = domain.SyncStatusSynced
		rnb.LocalUpdatedAt = nil
		if err := s.notebooks.Put(ctx, rnb); err != nil {
			return err
		}
	}

	locals, err := s.notebooks.ListByUID(ctx, s.session.UID)
	if err != nil {
		return err
	}
	for _, local := range locals {
		if _, ok := remoteIDs[local.ID]; ok {
			continue
		}
		if local.IsPending() {
			continue
		}
		if err := s.notebooks.Delete(ctx, local.ID, s.session.UID); err != nil {
			return err
		}
	}
	return nil
}

// PullFromRemote 整体刷新本地，笔记本在前保证引用先落库
func (s *syncService) PullFromRemote(ctx context.Context) error {
	start := time.Now()
	if err := s.pullNotebooks(ctx); err != nil {
		if code.IsCode(err, code.ErrorRemoteUnreachable) {
			s.monitor.SetOnline(false)
		}
		return err
	}
	if err := s.pullNotes(ctx); err != nil {
		if code.IsCode(err, code.ErrorRemoteUnreachable) {
			s.monitor.SetOnline(false)
		}
		return err
	}
	s.logger.Info("pull from remote done",
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return nil
}

// PerformFullSync 先排空后拉取，并发调用合并为一次执行
func (s *syncService) PerformFullSync(ctx context.Context) (*dto.SyncResult, error) {
	v, err, _ := s.sf.Do("full-sync", func() (interface{}, error) {
		s.syncing.Store(true)
		defer s.syncing.Store(false)

		result, drainErr := s.DrainOutbox(ctx)
		// 拉取无条件执行，排空失败不妨碍刷新本地状态
		if pullErr := s.PullFromRemote(ctx); pullErr != nil {
			s.logger.Warn("pull after drain failed", zap.Error(pullErr))
		}
		return result, drainErr
	})
	result, _ := v.(*dto.SyncResult)
	return result, err
}

// IsSyncing 判断完整同步是否正在进行
func (s *syncService) IsSyncing() bool {
	return s.syncing.Load()
}

// 确保 syncService 实现了 SyncService 接口
var _ SyncService = (*syncService)(nil)
