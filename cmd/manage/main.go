// 管理命令：迁移、演示数据、汇总重算、创建账号
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "manage",
		Short:         "员工档案服务管理命令",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径（默认查找 ./config/config.yaml）")

	root.AddCommand(
		newMigrateCmd(&configPath),
		newSeedCmd(&configPath),
		newRecomputeCmd(&configPath),
		newCreateUserCmd(&configPath),
	)
	return root
}
