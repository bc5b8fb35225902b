package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-offline-sync/internal/netmon"
)

// ProbeTask 周期性探测远端可达性，驱动连通状态机
type ProbeTask struct {
	monitor  *netmon.Monitor
	interval time.Duration
}

// NewProbeTask 创建探测任务
func NewProbeTask(monitor *netmon.Monitor, interval time.Duration) *ProbeTask {
	return &ProbeTask{
		monitor:  monitor,
		interval: interval,
	}
}

// Name 返回任务名称
func (t *ProbeTask) Name() string {
	return "NetworkProbeTask"
}

// Run 执行一次探测，状态跃迁由监视器负责广播
func (t *ProbeTask) Run(ctx context.Context) error {
	t.monitor.Check(ctx)
	return nil
}

// LoopInterval 返回执行间隔
func (t *ProbeTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 启动时立即探测一次，确定初始连通状态
func (t *ProbeTask) IsStartupRun() bool {
	return true
}
