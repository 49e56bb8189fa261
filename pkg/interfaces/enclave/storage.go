// Package enclave 提供飞地宿主边界层消费的策略接口定义
//
// 💾 **存储/查询策略 (Storage & Querier Strategies)**
//
// 本文件定义了宿主侧键值存储策略接口，专注于：
// - 可插拔后端：内存、BadgerDB、Redis等后端以同一接口接入边界层
// - 燃气计量：每个操作返回本次消耗的燃气，由边界层透传给飞地
// - 缺失键语义：键不存在是一等成功结果，不是错误
//
// 🎯 **核心功能**
// - Storage：合约键值存储策略，调用上下文构造时绑定具体类型
// - 一次调用一个操作：边界调用是同步阻塞的，策略自身不做批处理
//
// 🏧 **设计原则**
// - 并发责任外置：策略实现的线程安全由嵌入方保证，边界层不加锁
// - 错误即领域失败：返回的error会被装箱跨出边界，不要用error表达缺失键
package enclave

//=============================================================================
// Storage 接口定义
//=============================================================================

// Storage 定义合约键值存储策略
//
// ⚠️ **缺失键约定**：
// Get 对不存在的键返回 found=false 且 err=nil。
// 边界层将其转换为空缓冲区哨兵，飞地侧把空句柄解释为「键不存在」。
type Storage interface {
	// Get 读取指定键的值
	// 返回值、是否命中、本次操作消耗的燃气
	Get(key []byte) (value []byte, found bool, gasUsed uint64, err error)

	// Set 写入键值对
	// 键已存在时覆盖原值，返回本次操作消耗的燃气
	Set(key, value []byte) (gasUsed uint64, err error)

	// Remove 删除指定键
	// 键不存在时同样返回成功（删除语义由具体策略决定，但不得以缺失键报错）
	Remove(key []byte) (gasUsed uint64, err error)
}
