package types

import "fmt"

// VmErrorKind 虚拟机错误类别
//
// 📋 **错误分类说明**：
// 宿主侧存储/查询实现报告的领域错误在跨出边界前会被装箱为一个不透明句柄，
// 错误类别是飞地侧还原错误后做决策的唯一结构化依据，因此必须保持稳定。
type VmErrorKind string

const (
	// ErrKindBackend 后端失败（数据库不可用、IO失败等）
	ErrKindBackend VmErrorKind = "backend"

	// ErrKindGasDepletion 燃气耗尽
	ErrKindGasDepletion VmErrorKind = "gas_depletion"

	// ErrKindSerialization 序列化/反序列化失败
	ErrKindSerialization VmErrorKind = "serialization"

	// ErrKindGeneric 通用错误（未归类的领域失败）
	ErrKindGeneric VmErrorKind = "generic"
)

// VmError 虚拟机错误
//
// 🎯 **设计目的**：
// 跨边界的调用约定只允许标量出参，而领域错误的表示比状态码更丰富。
// VmError 将错误收敛为「类别 + 消息」的最小结构化形式，装箱后以句柄形式
// 移交给飞地侧，由飞地侧决定如何向合约呈现（通常是执行中止）。
type VmError struct {
	Kind    VmErrorKind `json:"kind"`    // 错误类别
	Message string      `json:"message"` // 错误消息
}

// NewVmError 创建指定类别的虚拟机错误
func NewVmError(kind VmErrorKind, format string, args ...interface{}) *VmError {
	return &VmError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewBackendError 创建后端失败错误
func NewBackendError(format string, args ...interface{}) *VmError {
	return NewVmError(ErrKindBackend, format, args...)
}

// NewGenericError 创建通用错误
func NewGenericError(format string, args ...interface{}) *VmError {
	return NewVmError(ErrKindGeneric, format, args...)
}

// Error 实现error接口
func (e *VmError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Equal 判断两个错误在可观测意义上是否相等（类别与消息均相同）
func (e *VmError) Equal(other *VmError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind && e.Message == other.Message
}

// WrapVmError 将任意error规整为VmError
//
// 存储/查询策略允许返回普通error；跨边界前统一提升为VmError，
// 已经是VmError的保持原样，避免二次包装丢失类别信息。
func WrapVmError(err error) *VmError {
	if err == nil {
		return nil
	}
	if vmErr, ok := err.(*VmError); ok {
		return vmErr
	}
	return NewBackendError("%v", err)
}
