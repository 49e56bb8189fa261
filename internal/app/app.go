// Package app 提供宿主进程的应用装配
package app

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/fx"

	httpapi "github.com/weisyn/enclave-host/internal/api/http"
	hostconfig "github.com/weisyn/enclave-host/internal/config/host"
	"github.com/weisyn/enclave-host/internal/core/enclave"
	logimpl "github.com/weisyn/enclave-host/internal/core/infrastructure/log"
	"github.com/weisyn/enclave-host/internal/core/infrastructure/storage"
	"github.com/weisyn/enclave-host/pkg/types"
)

// Options 应用装配选项
type Options struct {
	ConfigPath string // 配置文件路径，空则使用默认配置
}

// New 构建完整的fx应用
//
// 🎯 **装配顺序说明**：
// 配置文件 → 日志 → Gas计费与存储 → 飞地核心 → HTTP诊断服务。
// 所有模块通过依赖注入获取彼此，启动与停止顺序由fx按依赖关系推导。
func New(opts Options) *fx.App {
	return fx.New(
		fx.Provide(func() (*types.ConfigFile, error) {
			return loadConfigFile(opts.ConfigPath)
		}),
		fx.Provide(func(configFile *types.ConfigFile) *hostconfig.Config {
			if configFile != nil && configFile.Host != nil {
				return hostconfig.New(configFile.Host)
			}
			return hostconfig.New(nil)
		}),

		logimpl.Module(),
		storage.Module(),
		enclave.Module(),
		httpapi.Module(),

		// 抑制fx自身的装配日志，应用日志统一走zap
		fx.NopLogger,
	)
}

// loadConfigFile 从JSON文件加载用户配置
//
// 文件缺失不是错误：全部字段使用系统默认值。
// 指针字段区分「未设置」与「显式设置为零值」。
func loadConfigFile(path string) (*types.ConfigFile, error) {
	if path == "" {
		return &types.ConfigFile{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Printf("配置文件 %s 不存在，使用默认配置\n", path)
		return &types.ConfigFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var configFile types.ConfigFile
	if err := json.Unmarshal(data, &configFile); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	fmt.Printf("已成功加载配置文件: %s\n", path)
	return &configFile, nil
}
