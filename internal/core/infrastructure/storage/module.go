package storage

import (
	"context"

	"go.uber.org/fx"

	hostconfig "github.com/weisyn/enclave-host/internal/config/host"
	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/pkg/interfaces/enclave"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/enclave-host/pkg/types"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	ConfigFile *types.ConfigFile `optional:"true"` // 配置文件（可选）
	HostConfig *hostconfig.Config
	Schedule   gas.Schedule
	Logger     log.Logger
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	Store enclave.Storage
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(func(lc fx.Lifecycle, params ModuleParams) (ModuleOutput, error) {
			output, err := CreateStorageServices(ServiceInput{
				ConfigFile: params.ConfigFile,
				Backend:    params.HostConfig.GetStorageBackend(),
				CacheOn:    params.HostConfig.IsCacheEnabled(),
				Schedule:   params.Schedule,
				Logger:     params.Logger,
			})
			if err != nil {
				return ModuleOutput{}, err
			}

			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					if params.Logger != nil {
						params.Logger.Info("正在关闭存储服务...")
					}
					return output.Closer()
				},
			})

			return ModuleOutput{Store: output.Store}, nil
		}),
	)
}
