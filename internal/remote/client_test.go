package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haierkeys/note-offline-sync/global"
	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/pkg/code"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(endpoint string) *Client {
	return NewClient(global.Remote{
		Endpoint: endpoint,
		Timeout:  2 * time.Second,
	}, &domain.Session{UID: 1, Token: "test-token"}, zap.NewNop())
}

func TestClientPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"code":0,"status":true,"message":"ok","data":null}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClientPingUnreachable(t *testing.T) {
	// 端口已关闭，网络层失败归为 RemoteUnreachable
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(srv.URL)
	err := c.Ping(context.Background())
	assert.Error(t, err)
	assert.True(t, code.IsCode(err, code.ErrorRemoteUnreachable))
}

func TestClientSelectNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("uid"))
		w.Write([]byte(`{"code":0,"status":true,"message":"ok","data":[
			{"id":"note-1","uid":1,"title":"Alpha","content":"{}","updatedAt":"2026-08-24 10:00:00"},
			{"id":"note-2","uid":1,"title":"Beta","content":"{}","updatedAt":"2026-08-24 11:30:00"}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	notes, err := c.SelectNotes(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
	assert.Equal(t, "Alpha", notes[0].Title)
	assert.Equal(t, "2026-08-24 11:30:00", notes[1].UpdatedAt.String())
}

func TestClientGetUpdatedAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/notes/note-1" {
			w.Write([]byte(`{"code":0,"status":true,"message":"ok","data":{"id":"note-1","updatedAt":"2026-08-24 09:15:00"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	updatedAt, exists, err := c.GetUpdatedAt(context.Background(), domain.TableNotes, "note-1")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "2026-08-24 09:15:00", updatedAt.String())

	// 记录不存在时 exists 为 false，不作为错误
	_, exists, err = c.GetUpdatedAt(context.Background(), domain.TableNotes, "missing")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestClientInsertReturnsServerTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		w.Write([]byte(`{"code":0,"status":true,"message":"ok","data":{"id":"note-1","updatedAt":"2026-08-24 12:00:00"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	serverTime, err := c.Insert(context.Background(), domain.TableNotes, []byte(`{"id":"note-1"}`))
	assert.NoError(t, err)
	assert.Equal(t, "2026-08-24 12:00:00", serverTime.String())
}

func TestClientUpdateFailedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":10004001,"status":false,"message":"session expired","data":null}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Update(context.Background(), domain.TableNotes, "note-1", []byte(`{"id":"note-1"}`))
	assert.Error(t, err)
	assert.True(t, code.IsCode(err, code.ErrorRemoteRequestFailed))
}

func TestClientDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/api/notes/note-1" {
			w.Write([]byte(`{"code":0,"status":true,"message":"ok","data":null}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	assert.NoError(t, c.Delete(context.Background(), domain.TableNotes, "note-1"))

	// 远端记录已不存在视为成功
	assert.NoError(t, c.Delete(context.Background(), domain.TableNotes, "already-gone"))
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Insert(context.Background(), domain.TableNotes, []byte(`{}`))
	assert.Error(t, err)
	assert.True(t, code.IsCode(err, code.ErrorRemoteRequestFailed))
}
