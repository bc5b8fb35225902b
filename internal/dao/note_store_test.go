package dao

import (
	"context"
	"testing"

	"github.com/haierkeys/note-offline-sync/global"
	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/pkg/timex"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestDao 创建基于内存 sqlite 的测试 Dao
func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngine(global.Database{
		Path:        ":memory:",
		TablePrefix: "noc_",
	})
	if err != nil {
		t.Fatal(err)
	}
	return New(db, zap.NewNop())
}

func testNote(id string, uid int64) *domain.Note {
	now := timex.Now()
	return &domain.Note{
		ID:         id,
		UID:        uid,
		Title:      "testTitle",
		Content:    `{"blocks":[]}`,
		SyncStatus: domain.SyncStatusSynced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestNoteStorePutGet(t *testing.T) {
	d := newTestDao(t)
	store := NewNoteStore(d)
	ctx := context.Background()

	note := testNote("note-1", 1)
	assert.NoError(t, store.Put(ctx, note))

	got, err := store.Get(ctx, "note-1", 1)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, note.Title, got.Title)
	assert.Equal(t, note.Content, got.Content)
	assert.Equal(t, domain.SyncStatusSynced, got.SyncStatus)

	// 不存在的 ID 返回 (nil, nil) 而非错误
	absent, err := store.Get(ctx, "missing", 1)
	assert.NoError(t, err)
	assert.Nil(t, absent)

	// 其他用户不可见
	other, err := store.Get(ctx, "note-1", 2)
	assert.NoError(t, err)
	assert.Nil(t, other)
}

func TestNoteStorePutOverwrites(t *testing.T) {
	d := newTestDao(t)
	store := NewNoteStore(d)
	ctx := context.Background()

	note := testNote("note-1", 1)
	assert.NoError(t, store.Put(ctx, note))

	// upsert 整条覆盖
	lu := timex.Now()
	note.Title = "updatedTitle"
	note.SyncStatus = domain.SyncStatusPending
	note.LocalUpdatedAt = &lu
	assert.NoError(t, store.Put(ctx, note))

	got, err := store.Get(ctx, "note-1", 1)
	assert.NoError(t, err)
	assert.Equal(t, "updatedTitle", got.Title)
	assert.Equal(t, domain.SyncStatusPending, got.SyncStatus)
	assert.NotNil(t, got.LocalUpdatedAt)
}

func TestNoteStoreDeleteIdempotent(t *testing.T) {
	d := newTestDao(t)
	store := NewNoteStore(d)
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, testNote("note-1", 1)))
	assert.NoError(t, store.Delete(ctx, "note-1", 1))

	got, err := store.Get(ctx, "note-1", 1)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// 重复删除和删除不存在的 ID 都是空操作
	assert.NoError(t, store.Delete(ctx, "note-1", 1))
	assert.NoError(t, store.Delete(ctx, "never-existed", 1))
}

func TestNoteStoreListByStatus(t *testing.T) {
	d := newTestDao(t)
	store := NewNoteStore(d)
	ctx := context.Background()

	synced := testNote("note-1", 1)
	assert.NoError(t, store.Put(ctx, synced))

	lu := timex.Now()
	pending := testNote("note-2", 1)
	pending.SyncStatus = domain.SyncStatusPending
	pending.LocalUpdatedAt = &lu
	assert.NoError(t, store.Put(ctx, pending))

	// 其他用户的记录不应出现
	assert.NoError(t, store.Put(ctx, testNote("note-3", 2)))

	pendings, err := store.ListByStatus(ctx, 1, domain.SyncStatusPending)
	assert.NoError(t, err)
	assert.Len(t, pendings, 1)
	assert.Equal(t, "note-2", pendings[0].ID)

	all, err := store.ListByUID(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNoteStoreListByNotebook(t *testing.T) {
	d := newTestDao(t)
	store := NewNoteStore(d)
	ctx := context.Background()

	n1 := testNote("note-1", 1)
	n1.NotebookID = "nb-1"
	n2 := testNote("note-2", 1)
	n2.NotebookID = "nb-1"
	n3 := testNote("note-3", 1)
	n3.NotebookID = "nb-2"
	for _, n := range []*domain.Note{n1, n2, n3} {
		assert.NoError(t, store.Put(ctx, n))
	}

	notes, err := store.ListByNotebook(ctx, "nb-1", 1)
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestNoteStoreMarkSynced(t *testing.T) {
	d := newTestDao(t)
	store := NewNoteStore(d)
	ctx := context.Background()

	lu := timex.Now()
	note := testNote("note-1", 1)
	note.SyncStatus = domain.SyncStatusPending
	note.LocalUpdatedAt = &lu
	assert.NoError(t, store.Put(ctx, note))

	serverTime := timex.Now()
	assert.NoError(t, store.MarkSynced(ctx, "note-1", 1, &serverTime))

	got, err := store.Get(ctx, "note-1", 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.SyncStatusSynced, got.SyncStatus)
	assert.Nil(t, got.LocalUpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(serverTime))

	// 记录不存在时静默空操作
	assert.NoError(t, store.MarkSynced(ctx, "missing", 1, nil))
}

func TestNotebookStoreRoundTrip(t *testing.T) {
	d := newTestDao(t)
	store := NewNotebookStore(d)
	ctx := context.Background()

	now := timex.Now()
	nb := &domain.Notebook{
		ID:         "nb-1",
		UID:        1,
		Name:       "Work",
		Color:      "#ff8800",
		SyncStatus: domain.SyncStatusSynced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	assert.NoError(t, store.Put(ctx, nb))

	got, err := store.Get(ctx, "nb-1", 1)
	assert.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
	assert.Equal(t, "#ff8800", got.Color)

	assert.NoError(t, store.Delete(ctx, "nb-1", 1))
	got, err = store.Get(ctx, "nb-1", 1)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// 幂等删除
	assert.NoError(t, store.Delete(ctx, "nb-1", 1))
}
