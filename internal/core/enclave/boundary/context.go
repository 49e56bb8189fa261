package boundary

import (
	"github.com/weisyn/enclave-host/pkg/interfaces/enclave"
)

// ============================================================================
// 分派表与调用上下文
// ============================================================================
//
// 🎯 **设计目的**：
// 边界调用面是扁平的C兼容函数签名，携带不了类型元数据。为了从一个
// 类型擦除的上下文引用调用进开放集合中某个静态类型的存储后端，
// 构造上下文时一次性选定针对具体(S, Q)类型对特化的函数实现，
// 存入固定的函数槽位表。调用点无分支、无运行时类型检查、无向下转型。
//
// ⚠️ **类型一致性不变式**：
// 分派表绑定的具体类型必须与内嵌存储状态的具体类型严格一致。
// 表中存的是不带运行时类型标签的普通函数值，错配的特化是安全违规。
// 该不变式只能由构造纪律保证：NewContext是产生上下文的唯一合法路径，
// 表与状态在同一个类型参数化的构造过程中成对产生，错配在构造路径上
// 不可表达。
//
// ============================================================================

// contextTable 调用上下文登记簿（进程级）
var contextTable = newHandleTable[*callContext]()

// Ctx 类型擦除的调用上下文引用
//
// 这是交给飞地持有的不透明值：飞地只借用它来发起边界调用，
// 不拥有它，也不得在所属合约调用结束后继续使用。
type Ctx struct {
	data uintptr
}

// dispatchTable 固定函数槽位表，构造后不可变，一个上下文一张表
type dispatchTable struct {
	readDB     func(ctx Ctx, key []byte) (value []byte, found bool, gasUsed uint64, err error)
	writeDB    func(ctx Ctx, key, value []byte) (gasUsed uint64, err error)
	removeDB   func(ctx Ctx, key []byte) (gasUsed uint64, err error)
	queryChain func(ctx Ctx, request []byte) (response []byte, gasUsed uint64, err error)
}

// callContext 一次合约执行期间一串边界调用的宿主侧状态
//
// 由嵌入方独占持有，生命周期恰好覆盖一次合约调用。
// storage/querier保存嵌入方注入的具体策略实例（擦除为any），
// 分派表的实现负责以匹配的具体类型将其取回。
type callContext struct {
	storage any
	querier any
	table   dispatchTable
}

// NewContext 为具体存储类型S与查询类型Q构造调用上下文
//
// 构造时一次性完成三件事：内嵌策略实例、特化分派表、登记上下文句柄。
// 返回的Ctx是嵌入方交给飞地的借用引用；一次合约调用结束后必须
// ReleaseContext，之后该Ctx不得再被任何边界调用使用。
func NewContext[S enclave.Storage, Q enclave.Querier](store S, querier Q) Ctx {
	cc := &callContext{
		storage: store,
		querier: querier,
		table:   newDispatchTable[S, Q](),
	}
	return Ctx{data: contextTable.put(cc)}
}

// ReleaseContext 注销调用上下文（恰好一次，由构造它的嵌入方调用）
func ReleaseContext(ctx Ctx) bool {
	_, ok := contextTable.take(ctx.data)
	return ok
}

// LiveContexts 当前存活的调用上下文数（测试与指标用）
func LiveContexts() int {
	return contextTable.live()
}

// newDispatchTable 选定针对(S, Q)特化的函数实现
func newDispatchTable[S enclave.Storage, Q enclave.Querier]() dispatchTable {
	return dispatchTable{
		readDB:     readDBImpl[S, Q],
		writeDB:    writeDBImpl[S, Q],
		removeDB:   removeDBImpl[S, Q],
		queryChain: queryChainImpl[S, Q],
	}
}

// tableFromContext 从类型擦除的上下文引用取回分派表
//
// 这是一次不受检查的操作：调用方必须保证该引用由NewContext产生、
// 未被释放、未被挪作他用。句柄存活性之外不存在任何运行时检查。
func tableFromContext(ctx Ctx) (*dispatchTable, bool) {
	cc, ok := contextTable.get(ctx.data)
	if !ok {
		return nil, false
	}
	return &cc.table, true
}

// withStorage 以具体类型S取回上下文内嵌的存储实例并执行f
//
// 类型断言依赖构造路径保证的类型一致性；上下文已失效时返回后端错误。
func withStorage[S enclave.Storage, R any](ctx Ctx, f func(s S) (R, error)) (R, error) {
	cc, ok := contextTable.get(ctx.data)
	if !ok {
		var zero R
		return zero, errStaleContext
	}
	return f(cc.storage.(S))
}

// withQuerier 以具体类型Q取回上下文内嵌的查询实例并执行f
func withQuerier[Q enclave.Querier, R any](ctx Ctx, f func(q Q) (R, error)) (R, error) {
	cc, ok := contextTable.get(ctx.data)
	if !ok {
		var zero R
		return zero, errStaleContext
	}
	return f(cc.querier.(Q))
}

// ---------------------------------------------------------------------------
// 针对(S, Q)特化的槽位实现
// ---------------------------------------------------------------------------

type readResult struct {
	value   []byte
	found   bool
	gasUsed uint64
}

func readDBImpl[S enclave.Storage, Q enclave.Querier](ctx Ctx, key []byte) ([]byte, bool, uint64, error) {
	r, err := withStorage[S](ctx, func(s S) (readResult, error) {
		value, found, gasUsed, err := s.Get(key)
		return readResult{value: value, found: found, gasUsed: gasUsed}, err
	})
	return r.value, r.found, r.gasUsed, err
}

func writeDBImpl[S enclave.Storage, Q enclave.Querier](ctx Ctx, key, value []byte) (uint64, error) {
	return withStorage[S](ctx, func(s S) (uint64, error) {
		return s.Set(key, value)
	})
}

func removeDBImpl[S enclave.Storage, Q enclave.Querier](ctx Ctx, key []byte) (uint64, error) {
	return withStorage[S](ctx, func(s S) (uint64, error) {
		return s.Remove(key)
	})
}

type queryResult struct {
	response []byte
	gasUsed  uint64
}

func queryChainImpl[S enclave.Storage, Q enclave.Querier](ctx Ctx, request []byte) ([]byte, uint64, error) {
	r, err := withQuerier[Q](ctx, func(q Q) (queryResult, error) {
		response, gasUsed, err := q.Query(request)
		return queryResult{response: response, gasUsed: gasUsed}, err
	})
	return r.response, r.gasUsed, err
}
