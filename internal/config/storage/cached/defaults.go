package cached

import "time"

// 读穿缓存默认配置值

const (
	// defaultLifeWindow 默认缓存条目生命周期10分钟
	defaultLifeWindow = 10 * time.Minute

	// defaultCleanWindow 默认每5分钟清理过期条目
	defaultCleanWindow = 5 * time.Minute

	// defaultMaxEntrySize 单条目最大64KB
	// 原因：合约状态值通常很小，过大的值走底层存储即可，不值得占用缓存
	defaultMaxEntrySize = 64 << 10

	// defaultHardMaxCacheSize 缓存内存上限256MB
	defaultHardMaxCacheSize = 256
)
