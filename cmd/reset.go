package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type resetFlags struct {
	config string
}

func init() {
	resetEnv := new(resetFlags)

	// 注销/换号前的本地重置：丢弃所有未上行的变更
	var resetCommand = &cobra.Command{
		Use:   "reset [-c config_file]",
		Short: "Discard all queued local changes (sign-out flow)",
		Run: func(cmd *cobra.Command, args []string) {
			if len(resetEnv.config) <= 0 {
				resetEnv.config = resolveConfigPath()
				if resetEnv.config == "" {
					return
				}
			}

			c, err := NewClient(&runFlags{config: resetEnv.config})
			if err != nil {
				bootstrapLogger.Error("sync client start err", zap.Error(err))
				return
			}
			defer func() {
				c.sc.SendCloseSignal(nil)
				c.sc.WaitClosed()
			}()

			ctx := context.Background()
			a := c.GetApp()
			count, err := a.OutboxStore.Count(ctx)
			if err != nil {
				c.logger.Error("outbox count failed", zap.Error(err))
				return
			}
			if err := a.OutboxStore.Clear(ctx); err != nil {
				c.logger.Error("outbox clear failed", zap.Error(err))
				return
			}
			fmt.Printf("outbox cleared: %d queued changes discarded\n", count)
		},
	}

	rootCmd.AddCommand(resetCommand)
	fs := resetCommand.Flags()
	fs.StringVarP(&resetEnv.config, "config", "c", "", "config file")
}
