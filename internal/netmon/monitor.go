// Package netmon 维护远端连通状态并广播离线到在线的恢复事件
package netmon

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/haierkeys/note-offline-sync/internal/domain"

	"go.uber.org/zap"
)

// Monitor 连通状态监视器
// 状态只描述对远端可达性的最近观测，不保证下一次请求一定成功
type Monitor struct {
	online atomic.Bool
	remote domain.RemoteStore
	logger *zap.Logger

	mu   sync.Mutex
	subs []chan struct{}
}

// NewMonitor 创建监视器，初始状态为离线，等待首次探测确认
func NewMonitor(remote domain.RemoteStore, lg *zap.Logger) *Monitor {
	return &Monitor{
		remote: remote,
		logger: lg,
	}
}

// IsOnline 返回最近一次观测到的连通状态
func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// SetOnline 更新连通状态，离线到在线的跃迁广播恢复事件
func (m *Monitor) SetOnline(online bool) {
	old := m.online.Swap(online)
	if old == online {
		return
	}
	if online {
		m.logger.Info("network restored")
		m.notify()
	} else {
		m.logger.Info("network lost, entering offline mode")
	}
}

// Restored 返回接收恢复事件的通道
// 事件可能被合并，订阅方收到事件后应自行检查待办工作
func (m *Monitor) Restored() <-chan struct{} {
	ch := make(chan struct{}, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// notify 非阻塞地向所有订阅方投递恢复事件
func (m *Monitor) notify() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Check 对远端做一次探测并更新状态，返回探测后的状态
func (m *Monitor) Check(ctx context.Context) bool {
	err := m.remote.Ping(ctx)
	m.SetOnline(err == nil)
	return err == nil
}
