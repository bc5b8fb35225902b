package global

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestConfigLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	// 只配置远端地址，其余字段走默认值
	content := "remote:\n  endpoint: https://notes.example.com\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	c, err := ConfigLoad(tmpFile)
	if err != nil {
		t.Fatalf("ConfigLoad failed: %v", err)
	}

	if c.Remote.Endpoint != "https://notes.example.com" {
		t.Errorf("Endpoint = %s, want https://notes.example.com", c.Remote.Endpoint)
	}
	if c.Database.TablePrefix != "noc_" {
		t.Errorf("TablePrefix default = %s, want noc_", c.Database.TablePrefix)
	}
	if c.Sync.Interval != 5*time.Minute {
		t.Errorf("Sync.Interval default = %v, want 5m", c.Sync.Interval)
	}
	if !c.Sync.ConflictCopies {
		t.Error("Sync.ConflictCopies default should be true")
	}
}

func TestConfigSave(t *testing.T) {
	// 1. 创建临时配置文件
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	initialConfig := config{
		Remote: Remote{
			Endpoint: "https://initial.example.com",
		},
	}
	data, err := yaml.Marshal(initialConfig)
	if err != nil {
		t.Fatalf("Failed to marshal initial config: %v", err)
	}

	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		t.Fatalf("Failed to write initial config file: %v", err)
	}

	// 2. 加载配置
	absPath, _ := filepath.Abs(tmpFile)
	_, err = ConfigLoad(absPath)
	if err != nil {
		t.Fatalf("ConfigLoad failed: %v", err)
	}

	// 3. 修改配置并保存
	Config.Remote.Endpoint = "https://updated.example.com"
	if err := Config.Save(); err != nil {
		t.Fatalf("Config.Save error: %v, file: %s", err, Config.File)
	}

	// 4. 验证文件内容
	updatedData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read updated config file: %v", err)
	}

	var updatedConfig config
	if err := yaml.Unmarshal(updatedData, &updatedConfig); err != nil {
		t.Fatalf("Failed to unmarshal updated config: %v", err)
	}

	if updatedConfig.Remote.Endpoint != "https://updated.example.com" {
		t.Errorf("Expected endpoint https://updated.example.com, got %s", updatedConfig.Remote.Endpoint)
	}
}
