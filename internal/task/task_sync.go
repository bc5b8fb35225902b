package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-offline-sync/internal/netmon"
	"github.com/haierkeys/note-offline-sync/internal/service"
	"github.com/haierkeys/note-offline-sync/pkg/logger"

	"go.uber.org/zap"
)

// SyncTask 周期性触发完整同步
type SyncTask struct {
	syncSvc  service.SyncService
	monitor  *netmon.Monitor
	interval time.Duration
	logger   *zap.Logger
}

// NewSyncTask 创建同步任务
func NewSyncTask(syncSvc service.SyncService, monitor *netmon.Monitor, interval time.Duration, lg *zap.Logger) *SyncTask {
	return &SyncTask{
		syncSvc:  syncSvc,
		monitor:  monitor,
		interval: interval,
		logger:   lg,
	}
}

// Name 返回任务名称
func (t *SyncTask) Name() string {
	return "FullSyncTask"
}

// Run 在线时执行一次完整同步，离线时跳过等待下个周期
func (t *SyncTask) Run(ctx context.Context) error {
	if !t.monitor.IsOnline() {
		t.logger.Debug("sync skipped, offline")
		return nil
	}
	result, err := t.syncSvc.PerformFullSync(ctx)
	if err != nil {
		return err
	}
	if result != nil && (result.Success > 0 || len(result.Conflicts) > 0) {
		t.logger.Info("scheduled sync done",
			zap.Int(logger.FieldCount, result.Success),
			zap.Int("conflicts", len(result.Conflicts)))
	}
	return nil
}

// LoopInterval 返回执行间隔
func (t *SyncTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 启动时立即同步一次，消化离线期间积累的变更
func (t *SyncTask) IsStartupRun() bool {
	return true
}
