package redis

import (
	"time"

	configtypes "github.com/weisyn/enclave-host/pkg/types"
)

// RedisOptions Redis存储配置选项
type RedisOptions struct {
	// === 连接配置 ===
	Addr     string `json:"addr"`     // Redis地址 (host:port)
	Password string `json:"password"` // 密码，空表示无认证
	DB       int    `json:"db"`       // 数据库编号

	// === 键空间配置 ===
	KeyPrefix string `json:"key_prefix"` // 键前缀，隔离合约状态键空间

	// === 超时配置 ===
	DialTimeout time.Duration `json:"dial_timeout"` // 连接超时
	OpTimeout   time.Duration `json:"op_timeout"`   // 单次操作超时
}

// Config Redis配置实现
type Config struct {
	options *RedisOptions
}

// New 创建Redis配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultRedisOptions()

	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// createDefaultRedisOptions 创建默认Redis配置
func createDefaultRedisOptions() *RedisOptions {
	return &RedisOptions{
		Addr:        defaultAddr,
		Password:    "",
		DB:          defaultDB,
		KeyPrefix:   defaultKeyPrefix,
		DialTimeout: defaultDialTimeout,
		OpTimeout:   defaultOpTimeout,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
func applyUserConfig(options *RedisOptions, userConfig interface{}) {
	storageConfig, ok := userConfig.(*configtypes.UserStorageConfig)
	if !ok || storageConfig == nil {
		return
	}

	if storageConfig.RedisAddr != nil {
		options.Addr = *storageConfig.RedisAddr
	}
	if storageConfig.RedisPassword != nil {
		options.Password = *storageConfig.RedisPassword
	}
	if storageConfig.RedisDB != nil {
		options.DB = *storageConfig.RedisDB
	}
	if storageConfig.RedisPrefix != nil {
		options.KeyPrefix = *storageConfig.RedisPrefix
	}
}

// GetAddr 获取Redis地址
func (c *Config) GetAddr() string {
	return c.options.Addr
}

// GetPassword 获取密码
func (c *Config) GetPassword() string {
	return c.options.Password
}

// GetDB 获取数据库编号
func (c *Config) GetDB() int {
	return c.options.DB
}

// GetKeyPrefix 获取键前缀
func (c *Config) GetKeyPrefix() string {
	return c.options.KeyPrefix
}

// GetDialTimeout 获取连接超时
func (c *Config) GetDialTimeout() time.Duration {
	return c.options.DialTimeout
}

// GetOpTimeout 获取单次操作超时
func (c *Config) GetOpTimeout() time.Duration {
	return c.options.OpTimeout
}
