package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/note-offline-sync/global"
	"github.com/haierkeys/note-offline-sync/internal/dao"
	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/internal/netmon"
	"github.com/haierkeys/note-offline-sync/pkg/code"
	"github.com/haierkeys/note-offline-sync/pkg/timex"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// fakeRemote 内存实现的远端桩，支持断网和中途断网注入
// 服务端时间戳从过去的基准时刻起每次写入递增一秒，保证严格递增且可预期
type fakeRemote struct {
	mu          sync.Mutex
	unreachable bool
	// opsBeforeOutage >= 0 时，再执行这么多次写操作后转为不可达
	opsBeforeOutage int
	// rejectInserts 打开时插入被远端明确拒绝
	rejectInserts bool
	notes         map[string]*domain.Note
	notebooks       map[string]*domain.Notebook
	base            time.Time
	tick            int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		opsBeforeOutage: -1,
		notes:           make(map[string]*domain.Note),
		notebooks:       make(map[string]*domain.Notebook),
		base:            time.Now().Add(-time.Hour).Truncate(time.Second),
	}
}

func (r *fakeRemote) nextTime() timex.Time {
	r.tick++
	return timex.Time(r.base.Add(time.Duration(r.tick) * time.Second))
}

// gate 按注入配置决定本次操作是否可达
func (r *fakeRemote) gate() error {
	if r.unreachable {
		return code.ErrorRemoteUnreachable
	}
	if r.opsBeforeOutage == 0 {
		r.unreachable = true
		return code.ErrorRemoteUnreachable
	}
	if r.opsBeforeOutage > 0 {
		r.opsBeforeOutage--
	}
	return nil
}

func (r *fakeRemote) Ping(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unreachable {
		return code.ErrorRemoteUnreachable
	}
	return nil
}

func (r *fakeRemote) SelectNotes(ctx context.Context, uid int64) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate(); err != nil {
		return nil, err
	}
	out := make([]*domain.Note, 0, len(r.notes))
	for _, n := range r.notes {
		clone := *n
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeRemote) SelectNotebooks(ctx context.Context, uid int64) ([]*domain.Notebook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate(); err != nil {
		return nil, err
	}
	out := make([]*domain.Notebook, 0, len(r.notebooks))
	for _, nb := range r.notebooks {
		clone := *nb
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeRemote) GetUpdatedAt(ctx context.Context, table string, id string) (timex.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate(); err != nil {
		return timex.Time{}, false, err
	}
	if table == domain.TableNotebooks {
		if nb, ok := r.notebooks[id]; ok {
			return nb.UpdatedAt, true, nil
		}
		return timex.Time{}, false, nil
	}
	if n, ok := r.notes[id]; ok {
		return n.UpdatedAt, true, nil
	}
	return timex.Time{}, false, nil
}

func (r *fakeRemote) Insert(ctx context.Context, table string, payload []byte) (timex.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate(); err != nil {
		return timex.Time{}, err
	}
	if r.rejectInserts {
		return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails("insert rejected")
	}
	serverTime := r.nextTime()
	if table == domain.TableNotebooks {
		var nb domain.Notebook
		if err := sonic.Unmarshal(payload, &nb); err != nil {
			return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
		}
		nb.UpdatedAt = serverTime
		r.notebooks[nb.ID] = &nb
		return serverTime, nil
	}
	var n domain.Note
	if err := sonic.Unmarshal(payload, &n); err != nil {
		return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	n.UpdatedAt = serverTime
	r.notes[n.ID] = &n
	return serverTime, nil
}

func (r *fakeRemote) Update(ctx context.Context, table string, id string, payload []byte) (timex.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate(); err != nil {
		return timex.Time{}, err
	}
	serverTime := r.nextTime()
	if table == domain.TableNotebooks {
		if _, ok := r.notebooks[id]; !ok {
			return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails("update target not found")
		}
		var nb domain.Notebook
		if err := sonic.Unmarshal(payload, &nb); err != nil {
			return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
		}
		nb.UpdatedAt = serverTime
		r.notebooks[id] = &nb
		return serverTime, nil
	}
	if _, ok := r.notes[id]; !ok {
		return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails("update target not found")
	}
	var n domain.Note
	if err := sonic.Unmarshal(payload, &n); err != nil {
		return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	n.UpdatedAt = serverTime
	r.notes[id] = &n
	return serverTime, nil
}

func (r *fakeRemote) Delete(ctx context.Context, table string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate(); err != nil {
		return err
	}
	if table == domain.TableNotebooks {
		delete(r.notebooks, id)
		return nil
	}
	delete(r.notes, id)
	return nil
}

var _ domain.RemoteStore = (*fakeRemote)(nil)

// testEnv 组合真实的内存存储与远端桩
type testEnv struct {
	remote      *fakeRemote
	monitor     *netmon.Monitor
	notes       domain.NoteStore
	notebooks   domain.NotebookStore
	outbox      domain.OutboxStore
	noteSvc     NoteService
	notebookSvc NotebookService
	syncSvc     SyncService
	session     *domain.Session
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := dao.NewDBEngine(global.Database{
		Path:        ":memory:",
		TablePrefix: "noc_",
	})
	if err != nil {
		t.Fatal(err)
	}
	d := dao.New(db, zap.NewNop())

	env := &testEnv{
		remote:    newFakeRemote(),
		notes:     dao.NewNoteStore(d),
		notebooks: dao.NewNotebookStore(d),
		outbox:    dao.NewOutboxStore(d),
		session:   &domain.Session{UID: 1, Email: "user@example.com", Token: "t"},
	}
	env.monitor = netmon.NewMonitor(env.remote, zap.NewNop())
	env.monitor.SetOnline(true)

	lg := zap.NewNop()
	env.noteSvc = NewNoteService(env.notes, env.outbox, env.remote, env.monitor, env.session, lg)
	env.notebookSvc = NewNotebookService(env.notebooks, env.outbox, env.remote, env.monitor, env.session, env.noteSvc, lg)
	env.syncSvc = NewSyncService(env.notes, env.notebooks, env.outbox, env.remote, env.monitor, env.session, env.noteSvc, true, lg)
	return env
}

func (env *testEnv) goOffline() {
	env.remote.mu.Lock()
	env.remote.unreachable = true
	env.remote.mu.Unlock()
	env.monitor.SetOnline(false)
}

func (env *testEnv) goOnline() {
	env.remote.mu.Lock()
	env.remote.unreachable = false
	env.remote.mu.Unlock()
	env.monitor.SetOnline(true)
}

func (env *testEnv) outboxCount(t *testing.T) int64 {
	t.Helper()
	count, err := env.outbox.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return count
}
