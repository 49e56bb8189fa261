package log

// 日志默认配置值

const (
	// defaultLogLevel 默认日志级别为info
	// 原因：info级别在信息量和噪音之间取得平衡，适合生产环境
	defaultLogLevel = "info"

	// defaultToConsole 默认输出到控制台
	// 原因：宿主进程通常由容器/监控系统托管，控制台输出便于采集
	defaultToConsole = true

	// defaultFilePath 默认日志文件路径
	defaultFilePath = "./data/logs/enclave-host.log"

	// === 轮转配置 ===

	// defaultMaxSize 单个日志文件最大100MB
	defaultMaxSize = 100

	// defaultMaxBackups 最多保留10个备份文件
	defaultMaxBackups = 10

	// defaultMaxAge 日志最多保留30天
	defaultMaxAge = 30

	// defaultCompress 默认压缩历史日志
	defaultCompress = true

	// === 调试配置 ===

	// defaultEnableCaller 默认启用调用者信息
	defaultEnableCaller = true

	// defaultEnableStacktrace 默认关闭堆栈跟踪
	// 原因：堆栈跟踪开销较大，仅在排障时临时开启
	defaultEnableStacktrace = false
)
