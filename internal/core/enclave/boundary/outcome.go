// Package boundary 实现飞地宿主侧的边界调用层（ocall层）
//
// ████████████████████████████████████████████████████████████████████████████████████████████
// 边界调用层 - TEE合约虚拟机的非受信宿主侧
// ████████████████████████████████████████████████████████████████████████████████████████████
//
// 🎯 **设计目的**：
// 飞地内运行WASM合约，合约需要持久化键值存储时必须跨出信任边界，
// 进入能真正触达磁盘/网络状态的非受信宿主代码。本包实现这条跨界协议：
// - 跨界缓冲区的所有权与生命周期（分配一次，对侧恰好回收一次）
// - 三态结果编码（成功/失败/恐慌），因为栈回退机制不允许跨越信任边界
// - 从类型擦除的上下文引用分派到静态类型的存储/查询实现，不做运行时向下转型
// - 宿主侧恐慌的拦截，保证其不会破坏或挂起飞地侧调用者
//
// 🔒 **并发模型**：
// 边界调用是同步阻塞的。并发只来自嵌入方在不同线程上运行的多个独立合约执行，
// 每个执行持有自己的调用上下文；上下文之间不共享可变状态，本层不加锁。
// 句柄表是进程级的登记簿（Go侧对堆分配器的等价替代），其内部互斥不构成
// 上下文之间的语义共享。
//
// ⚠️ **协议纪律**：
// 类型一致性（分派表与内嵌状态的具体类型严格匹配）由构造路径保证；
// 句柄的一次性回收由双方的使用纪律保证。违反协议属于未定义行为，
// 本层仅将可检测到的违规降级为最保守的结果，不做诊断。
//
// ████████████████████████████████████████████████████████████████████████████████████████████
package boundary

// Outcome 边界调用结果判别值
//
// 这是每次边界调用唯一的结果通道：更丰富的数据（值、燃气、错误）
// 一律通过出参传递，因为边界调用约定是带固定标量返回值的扁平函数。
type Outcome int32

const (
	// OutcomeSuccess 调用成功，燃气出参有效；读操作的值缓冲区出参有效
	OutcomeSuccess Outcome = 0

	// OutcomeFailure 存储/查询实现报告领域失败，错误句柄出参有效
	OutcomeFailure Outcome = 1

	// OutcomePanic 宿主侧实现自身失控（恐慌被拦截），无任何负载
	// 飞地侧应视为「假定什么都没发生，假定没有燃气被消耗」
	OutcomePanic Outcome = 2
)

// String 返回结果判别值的字符串表示（用于指标标签与日志）
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomePanic:
		return "panic"
	default:
		return "unknown"
	}
}
