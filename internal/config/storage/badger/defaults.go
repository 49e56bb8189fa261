package badger

// BadgerDB存储默认配置值
// 这些默认值基于BadgerDB的常规实践和合约状态存储的访问模式

const (
	// defaultPath 默认数据库路径
	defaultPath = "./data/badger"

	// defaultSyncWrites 默认启用同步写入
	// 原因：合约状态需要强一致性，同步写入确保数据安全性
	// 虽然性能略有损失，但数据完整性更重要
	defaultSyncWrites = true

	// defaultMemTableSize 默认内存表大小为64MB
	// 原因：64MB提供良好的读写性能，平衡内存使用和I/O性能
	defaultMemTableSize = 64 << 20 // 64MB
)
