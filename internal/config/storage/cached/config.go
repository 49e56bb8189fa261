package cached

import "time"

// CachedOptions 读穿缓存配置选项
type CachedOptions struct {
	LifeWindow       time.Duration `json:"life_window"`          // 缓存条目生命周期
	CleanWindow      time.Duration `json:"clean_window"`         // 过期清理周期
	MaxEntrySize     int           `json:"max_entry_size"`       // 单条目最大字节数
	HardMaxCacheSize int           `json:"hard_max_cache_size"`  // 缓存内存上限(MB)
}

// Config 读穿缓存配置实现
type Config struct {
	options *CachedOptions
}

// New 创建读穿缓存配置实现
func New() *Config {
	return &Config{
		options: &CachedOptions{
			LifeWindow:       defaultLifeWindow,
			CleanWindow:      defaultCleanWindow,
			MaxEntrySize:     defaultMaxEntrySize,
			HardMaxCacheSize: defaultHardMaxCacheSize,
		},
	}
}

// GetLifeWindow 获取缓存条目生命周期
func (c *Config) GetLifeWindow() time.Duration {
	return c.options.LifeWindow
}

// GetCleanWindow 获取过期清理周期
func (c *Config) GetCleanWindow() time.Duration {
	return c.options.CleanWindow
}

// GetMaxEntrySize 获取单条目最大字节数
func (c *Config) GetMaxEntrySize() int {
	return c.options.MaxEntrySize
}

// GetHardMaxCacheSize 获取缓存内存上限(MB)
func (c *Config) GetHardMaxCacheSize() int {
	return c.options.HardMaxCacheSize
}
