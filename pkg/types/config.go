package types

// 用户配置类型
//
// 🔧 **零值陷阱处理说明**：
// 为了区分「用户未设置」和「用户设置为零值」，统一使用指针类型：
// - nil: 表示用户未在配置文件中设置该字段，将使用系统默认值
// - &value: 表示用户明确设置了该值，即使是零值（如0、false、""）也会被采用

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level      *string `json:"level,omitempty"`       // 日志级别
	ToConsole  *bool   `json:"to_console,omitempty"`  // 是否输出到控制台
	FilePath   *string `json:"file_path,omitempty"`   // 日志文件路径
	MaxSize    *int    `json:"max_size,omitempty"`    // 单个日志文件最大大小(MB)
	MaxBackups *int    `json:"max_backups,omitempty"` // 最大备份文件数
	MaxAge     *int    `json:"max_age,omitempty"`     // 日志文件最大保留天数
	Compress   *bool   `json:"compress,omitempty"`    // 是否压缩历史日志文件
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	DataRoot      *string `json:"data_root,omitempty"`      // 数据根目录
	SyncWrites    *bool   `json:"sync_writes,omitempty"`    // BadgerDB是否同步写入
	RedisAddr     *string `json:"redis_addr,omitempty"`     // Redis地址
	RedisPassword *string `json:"redis_password,omitempty"` // Redis密码
	RedisDB       *int    `json:"redis_db,omitempty"`       // Redis数据库编号
	RedisPrefix   *string `json:"redis_prefix,omitempty"`   // Redis键前缀
}

// UserHostConfig 用户宿主配置
type UserHostConfig struct {
	ListenAddr     *string `json:"listen_addr,omitempty"`     // 诊断HTTP服务监听地址
	StorageBackend *string `json:"storage_backend,omitempty"` // 存储后端 (memory, badger, redis)
	EnableCache    *bool   `json:"enable_cache,omitempty"`    // 是否启用读穿缓存
	GasMultiplier  *uint64 `json:"gas_multiplier,omitempty"`  // 燃气倍率
	ChainID        *string `json:"chain_id,omitempty"`        // 链标识
}

// ConfigFile 配置文件结构，只包含用户友好的配置字段
type ConfigFile struct {
	Log     *UserLogConfig     `json:"log,omitempty"`
	Storage *UserStorageConfig `json:"storage,omitempty"`
	Host    *UserHostConfig    `json:"host,omitempty"`
}
