package redis

import "time"

// Redis存储默认配置值

const (
	// defaultAddr 默认Redis地址
	defaultAddr = "127.0.0.1:6379"

	// defaultDB 默认数据库编号
	defaultDB = 0

	// defaultKeyPrefix 默认键前缀
	// 原因：合约状态键是任意字节序列，前缀隔离避免与同实例其他数据冲突
	defaultKeyPrefix = "enclave:state:"

	// defaultDialTimeout 默认连接超时
	defaultDialTimeout = 5 * time.Second

	// defaultOpTimeout 默认单次操作超时
	// 原因：边界调用是同步阻塞的，单次操作超时防止存储后端拖死飞地调用
	defaultOpTimeout = 3 * time.Second
)
