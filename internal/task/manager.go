package task

import (
	"github.com/haierkeys/note-offline-sync/global"
	"github.com/haierkeys/note-offline-sync/internal/netmon"
	"github.com/haierkeys/note-offline-sync/internal/service"
	"github.com/haierkeys/note-offline-sync/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有后台任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
	}
}

// RegisterTasks 注册探测与同步任务
func (m *Manager) RegisterTasks(monitor *netmon.Monitor, syncSvc service.SyncService) {
	m.scheduler.AddTask(NewProbeTask(monitor, global.Config.Sync.ProbeInterval))
	m.scheduler.AddTask(NewSyncTask(syncSvc, monitor, global.Config.Sync.Interval, m.logger))
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
