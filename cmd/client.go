package cmd

import (
	"fmt"

	"github.com/haierkeys/note-offline-sync/global"
	internalApp "github.com/haierkeys/note-offline-sync/internal/app"
	"github.com/haierkeys/note-offline-sync/internal/dao"
	"github.com/haierkeys/note-offline-sync/internal/task"
	"github.com/haierkeys/note-offline-sync/pkg/logger"
	"github.com/haierkeys/note-offline-sync/pkg/safe_close"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Client 同步客户端运行时，组合配置、存储、应用容器和后台任务
type Client struct {
	logger *zap.Logger
	db     *gorm.DB
	sc     *safe_close.SafeClose
	app    *internalApp.App
}

// NewClient 初始化同步客户端
func NewClient(runEnv *runFlags) (*Client, error) {
	if _, err := global.ConfigLoad(runEnv.config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg, err := logger.NewLogger(logger.Config{
		Level:      global.Config.Log.Level,
		File:       global.Config.Log.File,
		Production: global.Config.Log.Production,
	})
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	global.Logger = lg

	db, err := dao.NewDBEngine(global.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("initDBEngine: %w", err)
	}

	a, err := internalApp.NewApp(lg, db)
	if err != nil {
		return nil, fmt.Errorf("initApp: %w", err)
	}

	c := &Client{
		logger: lg,
		db:     db,
		sc:     safe_close.NewSafeClose(),
		app:    a,
	}
	lg.Info("sync client initialized",
		zap.String("endpoint", global.Config.Remote.Endpoint),
		zap.Int64("uid", a.Session.UID))
	return c, nil
}

// Start 启动后台协程：网络恢复自动同步、周期探测与周期同步
// 一次性命令（sync/reset）不调用，避免后台同步与命令本身竞争
func (c *Client) Start() {
	c.app.StartRestoredSync(c.sc)

	manager := task.NewManager(c.logger, c.sc)
	manager.RegisterTasks(c.app.Monitor, c.app.SyncService)
	manager.Start()
}

// GetApp 返回应用容器
func (c *Client) GetApp() *internalApp.App {
	return c.app
}
