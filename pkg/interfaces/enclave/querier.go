package enclave

//=============================================================================
// Querier 接口定义
//=============================================================================

// Querier 定义链上状态查询策略
//
// 与Storage共享同一套分派机制：调用上下文构造时与存储策略一同绑定具体类型。
// 请求与响应均为JSON编码的字节序列，具体的路由与模式由嵌入方的实现决定。
type Querier interface {
	// Query 执行一次链上查询
	// 返回JSON编码的响应与本次查询消耗的燃气
	Query(request []byte) (response []byte, gasUsed uint64, err error)
}
