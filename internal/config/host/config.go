package host

import (
	configtypes "github.com/weisyn/enclave-host/pkg/types"
)

// HostOptions 宿主配置选项
type HostOptions struct {
	// === 诊断服务配置 ===
	ListenAddr string `json:"listen_addr"` // 诊断HTTP服务监听地址

	// === 存储配置 ===
	StorageBackend string `json:"storage_backend"` // 存储后端 (memory, badger, redis)
	EnableCache    bool   `json:"enable_cache"`    // 是否在存储策略外包一层读穿缓存

	// === 燃气配置 ===
	GasMultiplier uint64 `json:"gas_multiplier"` // 燃气倍率

	// === 链配置 ===
	ChainID string `json:"chain_id"` // 链标识（查询策略返回给合约）
}

// Config 宿主配置实现
type Config struct {
	options *HostOptions
}

// New 创建宿主配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultHostOptions()

	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// createDefaultHostOptions 创建默认宿主配置
func createDefaultHostOptions() *HostOptions {
	return &HostOptions{
		ListenAddr:     defaultListenAddr,
		StorageBackend: defaultStorageBackend,
		EnableCache:    defaultEnableCache,
		GasMultiplier:  defaultGasMultiplier,
		ChainID:        defaultChainID,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
func applyUserConfig(options *HostOptions, userConfig interface{}) {
	hostConfig, ok := userConfig.(*configtypes.UserHostConfig)
	if !ok || hostConfig == nil {
		return
	}

	if hostConfig.ListenAddr != nil {
		options.ListenAddr = *hostConfig.ListenAddr
	}
	if hostConfig.StorageBackend != nil {
		options.StorageBackend = *hostConfig.StorageBackend
	}
	if hostConfig.EnableCache != nil {
		options.EnableCache = *hostConfig.EnableCache
	}
	if hostConfig.GasMultiplier != nil {
		options.GasMultiplier = *hostConfig.GasMultiplier
	}
	if hostConfig.ChainID != nil {
		options.ChainID = *hostConfig.ChainID
	}
}

// GetListenAddr 获取诊断HTTP服务监听地址
func (c *Config) GetListenAddr() string {
	return c.options.ListenAddr
}

// GetStorageBackend 获取存储后端名称
func (c *Config) GetStorageBackend() string {
	return c.options.StorageBackend
}

// IsCacheEnabled 是否启用读穿缓存
func (c *Config) IsCacheEnabled() bool {
	return c.options.EnableCache
}

// GetGasMultiplier 获取燃气倍率
func (c *Config) GetGasMultiplier() uint64 {
	return c.options.GasMultiplier
}

// GetChainID 获取链标识
func (c *Config) GetChainID() string {
	return c.options.ChainID
}
