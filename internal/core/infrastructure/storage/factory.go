// Package storage 提供合约状态存储的工厂与模块装配
package storage

import (
	"fmt"

	badgerconfig "github.com/weisyn/enclave-host/internal/config/storage/badger"
	cachedconfig "github.com/weisyn/enclave-host/internal/config/storage/cached"
	redisconfig "github.com/weisyn/enclave-host/internal/config/storage/redis"
	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/enclave-host/internal/core/infrastructure/storage/cached"
	"github.com/weisyn/enclave-host/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/enclave-host/internal/core/infrastructure/storage/redis"
	"github.com/weisyn/enclave-host/pkg/interfaces/enclave"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/enclave-host/pkg/types"
)

// 支持的存储后端标识
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// ServiceInput 定义存储服务工厂的输入参数
type ServiceInput struct {
	ConfigFile *types.ConfigFile // 配置文件（可为nil，全部使用默认值）
	Backend    string            // 存储后端标识
	CacheOn    bool              // 是否启用读穿透缓存
	Schedule   gas.Schedule      // Gas计费表
	Logger     log.Logger        // 日志记录器
}

// ServiceOutput 定义存储服务工厂的输出结果
type ServiceOutput struct {
	Store  enclave.Storage
	Closer func() error
}

// closableStore 统一各后端的关闭能力
type closableStore interface {
	enclave.Storage
	Close() error
}

// memoryCloser 内存存储没有需要释放的资源，补上空关闭以对齐其他后端
type memoryCloser struct {
	*memory.Store
}

func (memoryCloser) Close() error { return nil }

// CreateStorageServices 根据配置创建存储服务
//
// 🏭 按后端标识选择存储策略，并在需要时套上缓存装饰器。
// 缓存层复用同一份Gas计费表，保证命中与否计量一致。
func CreateStorageServices(input ServiceInput) (ServiceOutput, error) {
	logger := input.Logger
	var storageLogger log.Logger
	if logger != nil {
		storageLogger = logger.With("module", "storage")
	}

	var userStorage interface{}
	if input.ConfigFile != nil && input.ConfigFile.Storage != nil {
		userStorage = input.ConfigFile.Storage
	}

	var store closableStore
	switch input.Backend {
	case BackendMemory, "":
		store = memoryCloser{memory.New(input.Schedule, storageLogger)}
	case BackendBadger:
		badgerCfg := badgerconfig.New(userStorage)
		badgerStore, err := badger.New(badgerCfg, input.Schedule, storageLogger)
		if err != nil {
			return ServiceOutput{}, fmt.Errorf("初始化BadgerDB存储失败: %w", err)
		}
		store = badgerStore
	case BackendRedis:
		redisCfg := redisconfig.New(userStorage)
		redisStore, err := redis.New(redisCfg, input.Schedule, storageLogger)
		if err != nil {
			return ServiceOutput{}, fmt.Errorf("初始化Redis存储失败: %w", err)
		}
		store = redisStore
	default:
		return ServiceOutput{}, fmt.Errorf("不支持的存储后端: %s", input.Backend)
	}

	if input.CacheOn {
		cachedStore, err := cached.New(cachedconfig.New(), store, input.Schedule, storageLogger)
		if err != nil {
			_ = store.Close()
			return ServiceOutput{}, fmt.Errorf("初始化缓存层失败: %w", err)
		}
		store = cachedStore
	}

	if storageLogger != nil {
		storageLogger.Infof("✅ 存储服务初始化成功 (backend=%s, cache=%v)",
			input.Backend, input.CacheOn)
	}

	return ServiceOutput{
		Store:  store,
		Closer: store.Close,
	}, nil
}
