package boundary

import "errors"

// ==================== 协议错误 ====================

var (
	// errStaleContext 调用上下文已被释放或从未登记
	// 属于协议违规的可检测子集：分派实现用它把违规收敛为领域失败路径
	errStaleContext = errors.New("调用上下文已失效")
)
