package dao

import (
	"context"
	"testing"

	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/pkg/timex"

	"github.com/stretchr/testify/assert"
)

func enqueueEntry(t *testing.T, store domain.OutboxStore, table string, op domain.OutboxOp, entityID string) *domain.OutboxEntry {
	t.Helper()
	entry := &domain.OutboxEntry{
		TableName:  table,
		Op:         op,
		EntityID:   entityID,
		Payload:    []byte(`{"id":"` + entityID + `"}`),
		EnqueuedAt: timex.Now(),
	}
	assert.NoError(t, store.Enqueue(context.Background(), entry))
	return entry
}

func TestOutboxEnqueueOrder(t *testing.T) {
	d := newTestDao(t)
	store := NewOutboxStore(d)
	ctx := context.Background()

	// 同一实体的多次变更不合并，逐条保留
	enqueueEntry(t, store, domain.TableNotes, domain.OutboxOpCreate, "note-1")
	enqueueEntry(t, store, domain.TableNotes, domain.OutboxOpUpdate, "note-1")
	enqueueEntry(t, store, domain.TableNotebooks, domain.OutboxOpCreate, "nb-1")

	entries, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)

	// 按入队顺序返回
	assert.Equal(t, domain.OutboxOpCreate, entries[0].Op)
	assert.Equal(t, domain.OutboxOpUpdate, entries[1].Op)
	assert.Equal(t, "nb-1", entries[2].EntityID)
	assert.True(t, entries[0].ID < entries[1].ID)
	assert.True(t, entries[1].ID < entries[2].ID)
}

func TestOutboxDequeue(t *testing.T) {
	d := newTestDao(t)
	store := NewOutboxStore(d)
	ctx := context.Background()

	first := enqueueEntry(t, store, domain.TableNotes, domain.OutboxOpCreate, "note-1")
	enqueueEntry(t, store, domain.TableNotes, domain.OutboxOpDelete, "note-2")

	assert.NoError(t, store.Dequeue(ctx, first.ID))

	entries, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "note-2", entries[0].EntityID)

	// 重复出队是空操作
	assert.NoError(t, store.Dequeue(ctx, first.ID))

	count, err := store.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOutboxClear(t *testing.T) {
	d := newTestDao(t)
	store := NewOutboxStore(d)
	ctx := context.Background()

	enqueueEntry(t, store, domain.TableNotes, domain.OutboxOpCreate, "note-1")
	enqueueEntry(t, store, domain.TableNotes, domain.OutboxOpCreate, "note-2")

	assert.NoError(t, store.Clear(ctx))

	count, err := store.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOutboxPayloadSnapshot(t *testing.T) {
	d := newTestDao(t)
	store := NewOutboxStore(d)
	ctx := context.Background()

	payload := []byte(`{"id":"note-1","title":"Shopping List"}`)
	entry := &domain.OutboxEntry{
		TableName:  domain.TableNotes,
		Op:         domain.OutboxOpCreate,
		EntityID:   "note-1",
		Payload:    payload,
		EnqueuedAt: timex.Now(),
	}
	assert.NoError(t, store.Enqueue(ctx, entry))

	entries, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, payload, entries[0].Payload)
}
