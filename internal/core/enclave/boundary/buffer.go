package boundary

// ============================================================================
// 跨界缓冲区传递
// ============================================================================
//
// 🎯 **设计目的**：
// 把宿主内存中的字节序列转换为可交给飞地侧的不透明句柄，之后恰好一次地
// 将句柄取回为持有所有权的字节序列。所有跨界数据传递都走这条路径。
//
// ⚠️ **所有权纪律**：
// - Allocate产生的每个句柄由宿主侧持有，直到对侧恰好一次地Reclaim
// - 重复Reclaim = 双重释放；漏掉Reclaim = 泄漏
// - 这些纪律由协议保证，不由类型系统独立强制，因为句柄跨越FFI边界时
//   已经退化为普通地址
//
// ============================================================================

// bufferTable 缓冲区句柄登记簿（进程级）
var bufferTable = newHandleTable[[]byte]()

// Buffer 不透明缓冲区句柄
//
// 零值是指定的「空/缺失」哨兵：读操作未命中键时写出零值句柄，
// 飞地侧必须把零值句柄解释为「键不存在」，而不是错误。
type Buffer struct {
	ptr uintptr
}

// IsNil 判断句柄是否为空哨兵
func (b Buffer) IsNil() bool {
	return b.ptr == 0
}

// Allocate 将输入字节序列复制进一个新的宿主侧分配并返回其句柄
//
// 正常内存条件下不会失败；副作用是一次堆分配，所有权随句柄移交给调用方。
// 输入为nil或空时仍产生一个存活句柄（长度为零的分配），与空哨兵不同。
func Allocate(data []byte) Buffer {
	// 复制而不是引用：调用方的切片只在本次调用期间被借用
	owned := make([]byte, len(data))
	copy(owned, data)

	return Buffer{ptr: bufferTable.put(owned)}
}

// Reclaim 取回句柄对应的分配并返回其内容（恰好一次）
//
// 空哨兵返回(nil, false)。对已回收句柄的再次Reclaim同样返回(nil, false)
// 并计入协议违规——调用方不得依赖该检测，见包文档的协议纪律。
func Reclaim(buf Buffer) ([]byte, bool) {
	if buf.ptr == 0 {
		return nil, false
	}
	return bufferTable.take(buf.ptr)
}

// LiveBuffers 当前存活的缓冲区句柄数（测试与指标用）
func LiveBuffers() int {
	return bufferTable.live()
}

// BufferViolations 累计的缓冲区协议违规次数（测试与指标用）
func BufferViolations() uint64 {
	return bufferTable.violations.Load()
}
