package host

// 宿主默认配置值

const (
	// defaultListenAddr 默认诊断HTTP服务监听地址
	// 原因：只绑定本机回环，诊断面不对外暴露
	defaultListenAddr = "127.0.0.1:8790"

	// defaultStorageBackend 默认存储后端
	// 原因：内存后端零依赖开箱即用，生产部署显式切换到badger/redis
	defaultStorageBackend = "memory"

	// defaultEnableCache 默认不启用读穿缓存
	defaultEnableCache = false

	// defaultGasMultiplier 默认燃气倍率
	defaultGasMultiplier = 1

	// defaultChainID 默认链标识
	defaultChainID = "enclave-local"
)
