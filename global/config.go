package global

import (
	"os"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// App 应用配置
type App struct {
	Name    string `yaml:"name" default:"note-offline-sync"`
	DataDir string `yaml:"data-dir" default:"storage/"`
}

// Database 本地持久化存储配置
type Database struct {
	// sqlite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/local.db"`
	// 表名前缀
	TablePrefix string `yaml:"table-prefix" default:"noc_"`
}

// Remote 远端记录存储配置
type Remote struct {
	// 远端表 API 地址
	Endpoint string `yaml:"endpoint"`
	// 后端签发的访问令牌
	Token string `yaml:"token"`
	// 单次请求超时
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

// Sync 同步配置
type Sync struct {
	// 周期性全量同步间隔
	Interval time.Duration `yaml:"interval" default:"5m"`
	// 网络探测间隔
	ProbeInterval time.Duration `yaml:"probe-interval" default:"30s"`
	// 远端覆盖本地待同步内容时是否保留冲突副本
	ConflictCopies bool `yaml:"conflict-copies" default:"true"`
}

// Log 日志配置
type Log struct {
	Level      string `yaml:"level" default:"info"`
	File       string `yaml:"file" default:"storage/logs/client.log"`
	Production bool   `yaml:"production" default:"false"`
}

type config struct {
	App      App      `yaml:"app"`
	Database Database `yaml:"database"`
	Remote   Remote   `yaml:"remote"`
	Sync     Sync     `yaml:"sync"`
	Log      Log      `yaml:"log"`

	// 配置文件路径，加载时记录，Save 时使用
	File string `yaml:"-"`
}

// Config 全局配置实例
var Config *config

// ConfigLoad 从 yaml 文件加载配置并应用默认值
func ConfigLoad(path string) (*config, error) {
	c := &config{}
	if err := defaults.Set(c); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}

	c.File = path
	Config = c
	return c, nil
}

// Save 将当前配置写回加载时的文件
func (c *config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.File, data, 0644)
}
