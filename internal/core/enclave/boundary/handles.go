package boundary

import (
	"sync"
	"sync/atomic"
)

// handleTable 进程级句柄登记簿
//
// 🎯 **设计目的**：
// 边界两侧无法共享内存安全的指针类型，所有跨界引用都退化为不透明地址。
// 在Go侧，裸堆地址无法安全地交给外部持有（GC会移动/回收对象），
// 因此用登记簿把对象映射为稳定的非零句柄：put登记并移交所有权，
// take恰好一次地取回所有权。这是CGO Handle模式的本地化实现。
//
// ⚠️ **一次性回收**：
// 对同一句柄的第二次take是协议违规。登记簿能观测到这种违规
// （返回零值并计数），但调用方不得依赖该检测——它只是测试与
// 指标用的护栏，协议正确性仍然依赖双方的使用纪律。
type handleTable[T any] struct {
	mu      sync.Mutex
	next    uintptr
	entries map[uintptr]T

	// violations 对已回收/未知句柄的take次数（协议违规计数）
	violations atomic.Uint64
}

func newHandleTable[T any]() *handleTable[T] {
	return &handleTable[T]{entries: make(map[uintptr]T)}
}

// put 登记一个对象，返回其非零句柄
func (t *handleTable[T]) put(v T) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()

	// 句柄从1开始递增，0永远保留为空哨兵
	t.next++
	h := t.next
	t.entries[h] = v
	return h
}

// take 取回句柄对应的对象并注销句柄（恰好一次）
// 对未登记的句柄返回零值与false，并计入违规
func (t *handleTable[T]) take(h uintptr) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[h]
	if !ok {
		t.violations.Add(1)
		var zero T
		return zero, false
	}
	delete(t.entries, h)
	return v, true
}

// get 借用句柄对应的对象，不注销句柄
func (t *handleTable[T]) get(h uintptr) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[h]
	return v, ok
}

// live 当前存活（已登记未回收）的句柄数
func (t *handleTable[T]) live() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
