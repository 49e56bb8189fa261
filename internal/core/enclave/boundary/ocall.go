package boundary

import (
	"github.com/weisyn/enclave-host/pkg/types"
)

// ============================================================================
// 边界调用处理器（read / write / remove / query）
// ============================================================================
//
// 每个处理器的职责链：
//  1. 借用原始字节参数（参数切片仅在本次调用期间有效，实现不得留存）
//  2. 从调用上下文解析出匹配的分派槽位
//  3. 在恐慌拦截作用域内调用特化实现：任何失控的恐慌都被捕获并降级为
//     OutcomePanic，绝不允许跨回飞地（飞地无法安全地跨边界回退栈）。
//     恐慌在本层刻意不做诊断、不记日志——它降级为最保守的结果
//  4. 正常返回时翻译结果：
//     - 成功：燃气写入出参；读操作按命中与否写出值缓冲区或空哨兵
//     - 领域失败：错误装箱，句柄写入出参，报告Failure；燃气出参不保证写入
//  5. 以标量判别值作为返回值；其余数据全部走出参
//
// ⚠️ **燃气策略（本实现选定并固守）**：
// 燃气出参仅在结果为OutcomeSuccess时有权威性，其他结果下对侧不得读取。
//
// ============================================================================

// ReadDB 从合约键值存储读取一个键
//
// 未命中键是一等成功结果：燃气照常写入，值缓冲区出参保持空哨兵，
// 飞地侧把空句柄解释为「键不存在」，绝不是错误。
func ReadDB(ctx Ctx, errOut *ErrorHandle, gasOut *uint64, valueOut *Buffer, key []byte) (outcome Outcome) {
	table, ok := tableFromContext(ctx)
	if !ok {
		// 失效上下文属于协议违规：降级为最保守的结果，不附带任何负载
		return OutcomePanic
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomePanic
		}
		observeOcall("read_db", outcome, gasOut)
	}()

	value, found, gasUsed, err := table.readDB(ctx, key)
	if err != nil {
		*errOut = BoxError(types.WrapVmError(err))
		return OutcomeFailure
	}

	*gasOut = gasUsed
	if found {
		*valueOut = Allocate(value)
	}
	// 未命中时valueOut保持调用方初始化的空哨兵
	return OutcomeSuccess
}

// WriteDB 向合约键值存储写入一个键值对
func WriteDB(ctx Ctx, errOut *ErrorHandle, gasOut *uint64, key, value []byte) (outcome Outcome) {
	table, ok := tableFromContext(ctx)
	if !ok {
		return OutcomePanic
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomePanic
		}
		observeOcall("write_db", outcome, gasOut)
	}()

	gasUsed, err := table.writeDB(ctx, key, value)
	if err != nil {
		*errOut = BoxError(types.WrapVmError(err))
		return OutcomeFailure
	}

	*gasOut = gasUsed
	return OutcomeSuccess
}

// RemoveDB 从合约键值存储删除一个键
//
// 键不存在时本层同样报告成功：删除语义委托给底层策略，
// 但边界层自身绝不因缺失键而失败。
func RemoveDB(ctx Ctx, errOut *ErrorHandle, gasOut *uint64, key []byte) (outcome Outcome) {
	table, ok := tableFromContext(ctx)
	if !ok {
		return OutcomePanic
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomePanic
		}
		observeOcall("remove_db", outcome, gasOut)
	}()

	gasUsed, err := table.removeDB(ctx, key)
	if err != nil {
		*errOut = BoxError(types.WrapVmError(err))
		return OutcomeFailure
	}

	*gasOut = gasUsed
	return OutcomeSuccess
}

// QueryChain 执行一次链上查询
//
// 与三个存储操作共享同一套分派机制与结果策略：
// 响应通过缓冲区传递移交所有权，错误装箱，恐慌降级。
func QueryChain(ctx Ctx, errOut *ErrorHandle, gasOut *uint64, responseOut *Buffer, request []byte) (outcome Outcome) {
	table, ok := tableFromContext(ctx)
	if !ok {
		return OutcomePanic
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomePanic
		}
		observeOcall("query_chain", outcome, gasOut)
	}()

	response, gasUsed, err := table.queryChain(ctx, request)
	if err != nil {
		*errOut = BoxError(types.WrapVmError(err))
		return OutcomeFailure
	}

	*gasOut = gasUsed
	*responseOut = Allocate(response)
	return OutcomeSuccess
}
