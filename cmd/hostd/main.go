// hostd 是飞地宿主守护进程的入口
//
// 为运行在可信执行环境中的合约虚拟机提供不可信宿主侧服务：
// 状态存储、链上查询与边界调用的诊断接口。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/weisyn/enclave-host/internal/app"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "hostd",
	Short: "飞地宿主守护进程",
	Long: `hostd 是合约虚拟机的不可信宿主侧守护进程。

为飞地内的合约执行提供:
- 合约状态存储（内存 / BadgerDB / Redis，可选读穿透缓存）
- 链上数据查询路由
- 边界调用诊断与Prometheus指标`,
}

// runCmd 启动守护进程
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "启动宿主服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.New(app.Options{ConfigPath: configPath})

		startCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancel()
		if err := application.Start(startCtx); err != nil {
			return fmt.Errorf("启动失败: %w", err)
		}

		// 等待退出信号
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		fmt.Printf("收到信号 %s，正在停止...\n", sig)

		stopCtx, cancelStop := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancelStop()
		return application.Stop(stopCtx)
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (JSON)")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
