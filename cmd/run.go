package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/haierkeys/note-offline-sync/pkg/fileurl"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir    string // 工作目录
	config string // 指定要使用的配置文件路径
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir]",
		Short: "Run sync client",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			if len(runEnv.config) <= 0 {
				runEnv.config = resolveConfigPath()
				if runEnv.config == "" {
					return
				}
			}

			c, err := NewClient(runEnv)
			if err != nil {
				bootstrapLogger.Error("sync client start err", zap.Error(err))
				return
			}
			c.Start()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			c.logger.Info("received shutdown signal, initiating graceful shutdown")
			c.sc.SendCloseSignal(nil)

			if err := c.sc.WaitClosed(); err != nil {
				c.logger.Error("shutdown completed with error", zap.Error(err))
			} else {
				c.logger.Info("client has been shut down gracefully")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}

// resolveConfigPath 查找配置文件，找不到时写出默认模板
func resolveConfigPath() string {
	for _, path := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(path) {
			return path
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	path := "config/config.yaml"

	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		bootstrapLogger.Error("config file auto create error", zap.Error(err))
		return ""
	}
	if err := os.WriteFile(path, []byte(configDefault), 0666); err != nil {
		bootstrapLogger.Error("config file auto create writing error", zap.Error(err))
		return ""
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	bootstrapLogger.Warn("fill in remote.endpoint and remote.token before the first sync")
	return path
}
