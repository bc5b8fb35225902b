// Package remote 实现远端记录存储的表 API 客户端
// 远端是权威数据源，updated_at 由远端在权威写入时盖章
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/haierkeys/note-offline-sync/global"
	"github.com/haierkeys/note-offline-sync/internal/domain"
	"github.com/haierkeys/note-offline-sync/pkg/code"
	"github.com/haierkeys/note-offline-sync/pkg/logger"
	"github.com/haierkeys/note-offline-sync/pkg/timex"
	"github.com/haierkeys/note-offline-sync/pkg/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Client 远端表 API 客户端
type Client struct {
	endpoint   string
	session    *domain.Session
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 创建远端客户端
func NewClient(c global.Remote, session *domain.Session, lg *zap.Logger) *Client {
	return &Client{
		endpoint:   c.Endpoint,
		session:    session,
		httpClient: &http.Client{Timeout: c.Timeout},
		logger:     lg,
	}
}

// envelope 远端统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// record 远端记录中同步关心的通用字段
type record struct {
	ID        string     `json:"id"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// errRemoteNotFound 内部哨兵，由各操作自行决定 404 语义
var errRemoteNotFound = fmt.Errorf("remote record not found")

// do 执行一次远端请求并返回响应数据部分
// 网络层失败归为 RemoteUnreachable，远端失败响应归为 RemoteRequestFailed
func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return nil, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", util.GetRandomString(16))
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, code.ErrorRemoteUnreachable.WithDetails(err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, code.ErrorRemoteUnreachable.WithDetails(err.Error())
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errRemoteNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("remote request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("statusCode", resp.StatusCode))
		return nil, code.ErrorRemoteRequestFailed.WithDetails(
			"status " + strconv.Itoa(resp.StatusCode))
	}

	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	if !env.Status {
		return nil, code.ErrorRemoteRequestFailed.WithDetails(env.Message)
	}
	return env.Data, nil
}

// Ping 探测远端可达性
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	if err == errRemoteNotFound {
		return nil
	}
	return err
}

// SelectNotes 拉取用户的全部远端笔记
func (c *Client) SelectNotes(ctx context.Context, uid int64) ([]*domain.Note, error) {
	data, err := c.do(ctx, http.MethodGet,
		"/api/"+domain.TableNotes+"?uid="+strconv.FormatInt(uid, 10), nil)
	if err != nil {
		if err == errRemoteNotFound {
			return nil, nil
		}
		return nil, err
	}
	var notes []*domain.Note
	if err := sonic.Unmarshal(data, &notes); err != nil {
		return nil, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	return notes, nil
}

// SelectNotebooks 拉取用户的全部远端笔记本
func (c *Client) SelectNotebooks(ctx context.Context, uid int64) ([]*domain.Notebook, error) {
	data, err := c.do(ctx, http.MethodGet,
		"/api/"+domain.TableNotebooks+"?uid="+strconv.FormatInt(uid, 10), nil)
	if err != nil {
		if err == errRemoteNotFound {
			return nil, nil
		}
		return nil, err
	}
	var notebooks []*domain.Notebook
	if err := sonic.Unmarshal(data, &notebooks); err != nil {
		return nil, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	return notebooks, nil
}

// GetUpdatedAt 获取远端记录当前的权威更新时间，记录不存在时 exists 为 false
func (c *Client) GetUpdatedAt(ctx context.Context, table string, id string) (timex.Time, bool, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/"+table+"/"+id, nil)
	if err != nil {
		if err == errRemoteNotFound {
			return timex.Time{}, false, nil
		}
		return timex.Time{}, false, err
	}
	var rec record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return timex.Time{}, false, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	return rec.UpdatedAt, true, nil
}

// Insert 插入记录，返回远端盖章后的更新时间
func (c *Client) Insert(ctx context.Context, table string, payload []byte) (timex.Time, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/"+table, payload)
	if err != nil {
		if err == errRemoteNotFound {
			return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails("insert target not found")
		}
		return timex.Time{}, err
	}
	var rec record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	c.logger.Debug("remote insert ok",
		zap.String(logger.FieldTable, table),
		zap.String(logger.FieldEntityID, rec.ID))
	return rec.UpdatedAt, nil
}

// Update 按 ID 覆盖记录，返回远端盖章后的更新时间
func (c *Client) Update(ctx context.Context, table string, id string, payload []byte) (timex.Time, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/"+table+"/"+id, payload)
	if err != nil {
		if err == errRemoteNotFound {
			return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails("update target not found")
		}
		return timex.Time{}, err
	}
	var rec record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return timex.Time{}, code.ErrorRemoteRequestFailed.WithDetails(err.Error())
	}
	return rec.UpdatedAt, nil
}

// Delete 按 ID 删除记录，远端记录已不存在视为成功
func (c *Client) Delete(ctx context.Context, table string, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/"+table+"/"+id, nil)
	if err == errRemoteNotFound {
		return nil
	}
	return err
}

// 确保 Client 实现了 domain.RemoteStore 接口
var _ domain.RemoteStore = (*Client)(nil)
