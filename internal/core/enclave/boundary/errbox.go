package boundary

import (
	"github.com/weisyn/enclave-host/pkg/types"
)

// ============================================================================
// 错误装箱
// ============================================================================
//
// 🎯 **设计目的**：
// 领域错误的表示比标量状态码丰富，而调用约定只允许标量出参。
// 装箱把任意复杂的错误值转换为单个可传递的地址：本侧让渡所有权，
// 对侧负责在该地址上恰好一次地还原并销毁错误值。
//
// ============================================================================

// errorTable 错误句柄登记簿（进程级）
var errorTable = newHandleTable[*types.VmError]()

// ErrorHandle 装箱错误句柄，零值表示「无错误」
type ErrorHandle uintptr

// IsNil 判断句柄是否为空
func (h ErrorHandle) IsNil() bool {
	return h == 0
}

// BoxError 将错误装箱并返回其句柄，所有权随句柄移交给对侧
func BoxError(err *types.VmError) ErrorHandle {
	if err == nil {
		return 0
	}
	return ErrorHandle(errorTable.put(err))
}

// ReclaimError 在句柄地址上还原错误值并注销句柄（恰好一次）
func ReclaimError(h ErrorHandle) (*types.VmError, bool) {
	if h == 0 {
		return nil, false
	}
	return errorTable.take(uintptr(h))
}

// LiveErrors 当前存活的错误句柄数（测试与指标用）
func LiveErrors() int {
	return errorTable.live()
}

// ErrorViolations 累计的错误句柄协议违规次数（测试与指标用）
func ErrorViolations() uint64 {
	return errorTable.violations.Load()
}
