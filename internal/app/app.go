// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"

	"github.com/haierkeys/note-offline-sync/global"
	"github.com/haierkeys/note-offline-sync/internal/dao"
	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/internal/netmon"
	"github.com/haierkeys/note-offline-sync/internal/remote"
	"github.com/haierkeys/note-offline-sync/internal/service"
	pkgapp "github.com/haierkeys/note-offline-sync/pkg/app"
	"github.com/haierkeys/note-offline-sync/pkg/code"
	"github.com/haierkeys/note-offline-sync/pkg/safe_close"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	Session *domain.Session
	Monitor *netmon.Monitor

	// Repository 层
	NoteStore     domain.NoteStore
	NotebookStore domain.NotebookStore
	OutboxStore   domain.OutboxStore
	Remote        domain.RemoteStore

	// Service 层
	NoteService     service.NoteService
	NotebookService service.NotebookService
	SyncService     service.SyncService
}

// NewApp 创建应用容器实例，初始化所有依赖并完成注入
func NewApp(logger *zap.Logger, db *gorm.DB) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		logger: logger,
		DB:     db,
		Dao:    dao.New(db, logger),
	}

	// 会话来自配置中的令牌，离线启动时不校验签名
	session, err := sessionFromConfig()
	if err != nil {
		return nil, err
	}
	a.Session = session

	a.NoteStore = dao.NewNoteStore(a.Dao)
	a.NotebookStore = dao.NewNotebookStore(a.Dao)
	a.OutboxStore = dao.NewOutboxStore(a.Dao)
	a.Remote = remote.NewClient(global.Config.Remote, session, logger)

	a.Monitor = netmon.NewMonitor(a.Remote, logger)

	a.NoteService = service.NewNoteService(
		a.NoteStore, a.OutboxStore, a.Remote, a.Monitor, session, logger)
	a.NotebookService = service.NewNotebookService(
		a.NotebookStore, a.OutboxStore, a.Remote, a.Monitor, session, a.NoteService, logger)
	a.SyncService = service.NewSyncService(
		a.NoteStore, a.NotebookStore, a.OutboxStore, a.Remote, a.Monitor, session,
		a.NoteService, global.Config.Sync.ConflictCopies, logger)

	return a, nil
}

// sessionFromConfig 从配置令牌解析本地会话
func sessionFromConfig() (*domain.Session, error) {
	token := global.Config.Remote.Token
	entity, err := pkgapp.ParseSessionToken(token)
	if err != nil {
		return nil, code.ErrorSessionInvalid.WithDetails(err.Error())
	}
	return &domain.Session{
		UID:   entity.UID,
		Email: entity.Email,
		Token: token,
	}, nil
}

// StartRestoredSync 挂接网络恢复事件，恢复联网后自动触发完整同步
func (a *App) StartRestoredSync(sc *safe_close.SafeClose) {
	restored := a.Monitor.Restored()
	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		for {
			select {
			case <-restored:
				a.logger.Info("network restored, triggering full sync")
				if _, err := a.SyncService.PerformFullSync(context.Background()); err != nil {
					a.logger.Warn("restored sync failed", zap.Error(err))
				}
			case <-closeSignal:
				return
			}
		}
	})
}
