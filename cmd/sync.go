package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type syncFlags struct {
	config string
}

func init() {
	syncEnv := new(syncFlags)

	var syncCommand = &cobra.Command{
		Use:   "sync [-c config_file]",
		Short: "Run a one-shot full sync and exit",
		Run: func(cmd *cobra.Command, args []string) {
			if len(syncEnv.config) <= 0 {
				syncEnv.config = resolveConfigPath()
				if syncEnv.config == "" {
					return
				}
			}

			c, err := NewClient(&runFlags{config: syncEnv.config})
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
			if !a.Monitor.Check(ctx) {
				c.logger.Error("remote is unreachable, sync aborted")
				return
			}

			result, err := a.SyncService.PerformFullSync(ctx)
			if err != nil {
				c.logger.Error("full sync failed", zap.Error(err))
				return
			}
			fmt.Printf("sync done: %d pushed, %d conflicts\n", result.Success, len(result.Conflicts))
			for _, conflict := range result.Conflicts {
				fmt.Printf("  conflict: %s/%s %s %s\n",
					conflict.Table, conflict.EntityID, conflict.Op, conflict.Error)
			}
		},
	}

	rootCmd.AddCommand(syncCommand)
	fs := syncCommand.Flags()
	fs.StringVarP(&syncEnv.config, "config", "c", "", "config file")
}
