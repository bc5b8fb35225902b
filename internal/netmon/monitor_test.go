package netmon

import (
	"context"
	"testing"

	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/pkg/code"
	"github.com/haierkeys/note-offline-sync/pkg/timex"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// pingRemote 只实现 Ping 行为的远端桩
type pingRemote struct {
	err error
}

func (r *pingRemote) Ping(ctx context.Context) error { return r.err }
func (r *pingRemote) SelectNotes(ctx context.Context, uid int64) ([]*domain.Note, error) {
	return nil, nil
}
func (r *pingRemote) SelectNotebooks(ctx context.Context, uid int64) ([]*domain.Notebook, error) {
	return nil, nil
}
func (r *pingRemote) GetUpdatedAt(ctx context.Context, table string, id string) (timex.Time, bool, error) {
	return timex.Time{}, false, nil
}
func (r *pingRemote) Insert(ctx context.Context, table string, payload []byte) (timex.Time, error) {
	return timex.Now(), nil
}
func (r *pingRemote) Update(ctx context.Context, table string, id string, payload []byte) (timex.Time, error) {
	return timex.Now(), nil
}
func (r *pingRemote) Delete(ctx context.Context, table string, id string) error { return nil }

func TestMonitorStartsOffline(t *testing.T) {
	m := NewMonitor(&pingRemote{}, zap.NewNop())
	assert.False(t, m.IsOnline())
}

func TestMonitorCheck(t *testing.T) {
	remote := &pingRemote{}
	m := NewMonitor(remote, zap.NewNop())

	assert.True(t, m.Check(context.Background()))
	assert.True(t, m.IsOnline())

	remote.err = code.ErrorRemoteUnreachable
	assert.False(t, m.Check(context.Background()))
	assert.False(t, m.IsOnline())
}

func TestMonitorRestoredEvent(t *testing.T) {
	m := NewMonitor(&pingRemote{}, zap.NewNop())
	restored := m.Restored()

	m.SetOnline(true)
	select {
	case <-restored:
	default:
		t.Fatal("expected restored event after offline to online transition")
	}

	// 在线到在线不重复投递
	m.SetOnline(true)
	select {
	case <-restored:
		t.Fatal("unexpected event without state transition")
	default:
	}

	// 在线到离线不投递恢复事件
	m.SetOnline(false)
	select {
	case <-restored:
		t.Fatal("unexpected event on going offline")
	default:
	}

	m.SetOnline(true)
	select {
	case <-restored:
	default:
		t.Fatal("expected restored event after second recovery")
	}
}

func TestMonitorNotifyNonBlocking(t *testing.T) {
	m := NewMonitor(&pingRemote{}, zap.NewNop())
	m.Restored() // 无人消费的订阅方不应阻塞广播

	m.SetOnline(true)
	m.SetOnline(false)
	m.SetOnline(true)
	assert.True(t, m.IsOnline())
}
