// Package log 提供日志管理功能
package log

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	logconfig "github.com/weisyn/enclave-host/internal/config/log"
	logInterface "github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
	configtypes "github.com/weisyn/enclave-host/pkg/types"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	ConfigFile *configtypes.ConfigFile // 用户配置文件
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // zap.Logger 具体类型（供需要 zap 特性的模块使用）
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 提供日志服务
// 根据配置初始化日志记录器并返回
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	var userLogConfig *configtypes.UserLogConfig
	if params.ConfigFile != nil {
		userLogConfig = params.ConfigFile.Log
	}

	logConfig := logconfig.New(userLogConfig)

	logger, err := New(logConfig)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	// 设置为全局记录器，替换掉init()时用默认配置创建的日志器
	SetLogger(logger)

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}
