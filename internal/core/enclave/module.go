// Package enclave 装配飞地宿主侧的核心服务
package enclave

import (
	"go.uber.org/fx"

	hostconfig "github.com/weisyn/enclave-host/internal/config/host"
	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/internal/core/enclave/querier"
	"github.com/weisyn/enclave-host/internal/core/enclave/stub"
	enclaveiface "github.com/weisyn/enclave-host/pkg/interfaces/enclave"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
)

// Module 返回飞地核心模块
//
// 提供Gas计费表、链上查询路由与进程内飞地模拟器。
// 模拟器持有的调用上下文在应用停止时注销。
func Module() fx.Option {
	return fx.Module("enclave",
		fx.Provide(func(hostConfig *hostconfig.Config) gas.Schedule {
			return gas.Default().WithMultiplier(hostConfig.GetGasMultiplier())
		}),

		fx.Provide(func(hostConfig *hostconfig.Config, store enclaveiface.Storage, schedule gas.Schedule, logger log.Logger) enclaveiface.Querier {
			view := querier.StaticView{ID: hostConfig.GetChainID()}
			return querier.NewRouter(view, store, schedule, logger)
		}),

		fx.Provide(func(lc fx.Lifecycle, store enclaveiface.Storage, chainQuerier enclaveiface.Querier, logger log.Logger) *stub.Enclave {
			enc := stub.New[enclaveiface.Storage, enclaveiface.Querier](store, chainQuerier, logger)
			lc.Append(fx.StopHook(func() {
				enc.Close()
			}))
			return enc
		}),
	)
}
