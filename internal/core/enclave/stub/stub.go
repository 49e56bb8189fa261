// Package stub 提供进程内的飞地侧模拟器
//
// 🎯 **设计目的**：
// 真实部署中边界调用的发起方运行在飞地内部，本包在同一进程内
// 扮演这个角色：按照边界调用约定发起读写与查询，并严格履行
// 飞地侧的资源义务——每个收到的缓冲区与错误句柄恰好回收一次。
// 集成测试与诊断接口都通过它来驱动完整的边界路径。
package stub

import (
	"fmt"

	"github.com/weisyn/enclave-host/internal/core/enclave/boundary"
	"github.com/weisyn/enclave-host/pkg/interfaces/enclave"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/enclave-host/pkg/types"
)

// HostPanicError 宿主侧处理器异常中止时飞地侧观察到的错误
//
// 异常结局不携带错误句柄，飞地侧只能以固定错误呈现。
type HostPanicError struct {
	Op string
}

func (e *HostPanicError) Error() string {
	return fmt.Sprintf("宿主调用异常中止: %s", e.Op)
}

// Enclave 进程内的飞地模拟器
//
// 持有一个已注册的调用上下文，生命周期内所有操作经由边界
// 调用约定往返。Close之后继续调用会得到异常结局。
type Enclave struct {
	ctx    boundary.Ctx
	logger log.Logger
}

// New 注册调用上下文并创建飞地模拟器
func New[S enclave.Storage, Q enclave.Querier](store S, querier Q, logger log.Logger) *Enclave {
	return &Enclave{
		ctx:    boundary.NewContext[S, Q](store, querier),
		logger: logger,
	}
}

// Get 经由边界读取合约状态
// 键不存在时返回found=false，与存储接口语义一致
func (e *Enclave) Get(key []byte) (value []byte, found bool, gasUsed uint64, err error) {
	var (
		errOut   boundary.ErrorHandle
		valueOut boundary.Buffer
	)

	switch outcome := boundary.ReadDB(e.ctx, &errOut, &gasUsed, &valueOut, key); outcome {
	case boundary.OutcomeSuccess:
		if valueOut.IsNil() {
			return nil, false, gasUsed, nil
		}
		data, ok := boundary.Reclaim(valueOut)
		if !ok {
			return nil, false, gasUsed, types.NewGenericError("宿主返回了无效的缓冲区句柄")
		}
		return data, true, gasUsed, nil
	case boundary.OutcomeFailure:
		return nil, false, 0, e.reclaimFailure("read_db", errOut)
	default:
		return nil, false, 0, &HostPanicError{Op: "read_db"}
	}
}

// Set 经由边界写入合约状态
func (e *Enclave) Set(key, value []byte) (gasUsed uint64, err error) {
	var errOut boundary.ErrorHandle

	switch outcome := boundary.WriteDB(e.ctx, &errOut, &gasUsed, key, value); outcome {
	case boundary.OutcomeSuccess:
		return gasUsed, nil
	case boundary.OutcomeFailure:
		return 0, e.reclaimFailure("write_db", errOut)
	default:
		return 0, &HostPanicError{Op: "write_db"}
	}
}

// Remove 经由边界删除合约状态
func (e *Enclave) Remove(key []byte) (gasUsed uint64, err error) {
	var errOut boundary.ErrorHandle

	switch outcome := boundary.RemoveDB(e.ctx, &errOut, &gasUsed, key); outcome {
	case boundary.OutcomeSuccess:
		return gasUsed, nil
	case boundary.OutcomeFailure:
		return 0, e.reclaimFailure("remove_db", errOut)
	default:
		return 0, &HostPanicError{Op: "remove_db"}
	}
}

// Query 经由边界发起链上查询
func (e *Enclave) Query(request []byte) (response []byte, gasUsed uint64, err error) {
	var (
		errOut      boundary.ErrorHandle
		responseOut boundary.Buffer
	)

	switch outcome := boundary.QueryChain(e.ctx, &errOut, &gasUsed, &responseOut, request); outcome {
	case boundary.OutcomeSuccess:
		data, ok := boundary.Reclaim(responseOut)
		if !ok {
			return nil, gasUsed, types.NewGenericError("宿主返回了无效的缓冲区句柄")
		}
		return data, gasUsed, nil
	case boundary.OutcomeFailure:
		return nil, 0, e.reclaimFailure("query_chain", errOut)
	default:
		return nil, 0, &HostPanicError{Op: "query_chain"}
	}
}

// Close 注销调用上下文
// 重复关闭是安全的，返回值指示本次是否真正完成了注销
func (e *Enclave) Close() bool {
	return boundary.ReleaseContext(e.ctx)
}

// reclaimFailure 回收错误句柄并还原错误，履行恰好一次的回收义务
func (e *Enclave) reclaimFailure(op string, errOut boundary.ErrorHandle) error {
	if errOut.IsNil() {
		return types.NewGenericError("失败结局未携带错误句柄: %s", op)
	}
	vmErr, ok := boundary.ReclaimError(errOut)
	if !ok {
		return types.NewGenericError("宿主返回了无效的错误句柄: %s", op)
	}
	if e.logger != nil {
		e.logger.Debugf("边界调用失败 (op=%s, kind=%s): %s", op, vmErr.Kind, vmErr.Message)
	}
	return vmErr
}
