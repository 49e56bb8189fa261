package boundary

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/enclave-host/pkg/types"
)

// ============================================================================
// 边界调用处理器测试
// ============================================================================
//
// 🎯 **测试目的**：验证三态结果编码、缺失键语义、恐慌拦截、燃气策略
// 与分派一致性——即规格意义上的全部可测性质
//
// ============================================================================

// gasSentinel 燃气出参的哨兵初值：非成功结果下出参必须保持不变
const gasSentinel = ^uint64(0)

//----------------------------------------------------------------------------
// 测试替身：具体存储/查询策略
//----------------------------------------------------------------------------

// stubStore 基于map的测试存储，燃气 = 100 + 键值字节数
type stubStore struct {
	data map[string][]byte
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string][]byte)}
}

func (s *stubStore) Get(key []byte) ([]byte, bool, uint64, error) {
	v, ok := s.data[string(key)]
	return v, ok, 100 + uint64(len(key)+len(v)), nil
}

func (s *stubStore) Set(key, value []byte) (uint64, error) {
	s.data[string(key)] = append([]byte(nil), value...)
	return 200 + uint64(len(key)+len(value)), nil
}

func (s *stubStore) Remove(key []byte) (uint64, error) {
	delete(s.data, string(key))
	return 100 + uint64(len(key)), nil
}

// altStore 第二个具体存储类型：所有读取都返回固定标记值
// 用于验证分派一致性——经由它构造的上下文绝不能触达其他类型的实现
type altStore struct {
	marker []byte
}

func (s *altStore) Get(key []byte) ([]byte, bool, uint64, error) {
	return s.marker, true, 1, nil
}

func (s *altStore) Set(key, value []byte) (uint64, error) { return 1, nil }

func (s *altStore) Remove(key []byte) (uint64, error) { return 1, nil }

// faultStore 可配置的故障存储：按操作注入领域错误或恐慌
type faultStore struct {
	panicOn map[string]bool
	errOn   map[string]error
}

func (s *faultStore) fire(op string) error {
	if s.panicOn[op] {
		panic("存储实现内部不变式被破坏: " + op)
	}
	return s.errOn[op]
}

func (s *faultStore) Get(key []byte) ([]byte, bool, uint64, error) {
	if err := s.fire("get"); err != nil {
		return nil, false, 0, err
	}
	return nil, false, 100, nil
}

func (s *faultStore) Set(key, value []byte) (uint64, error) {
	if err := s.fire("set"); err != nil {
		return 0, err
	}
	return 200, nil
}

func (s *faultStore) Remove(key []byte) (uint64, error) {
	if err := s.fire("remove"); err != nil {
		return 0, err
	}
	return 100, nil
}

// stubQuerier 回显请求的测试查询器
type stubQuerier struct {
	prefix string
	err    error
	panics bool
}

func (q *stubQuerier) Query(request []byte) ([]byte, uint64, error) {
	if q.panics {
		panic("查询实现失控")
	}
	if q.err != nil {
		return nil, 0, q.err
	}
	return append([]byte(q.prefix), request...), 500, nil
}

//----------------------------------------------------------------------------
// 缺失键与往返
//----------------------------------------------------------------------------

// TestReadDB_MissingKey 测试读取缺失键：成功 + 空哨兵，绝不是失败或恐慌
func TestReadDB_MissingKey(t *testing.T) {
	ctx := NewContext(newStubStore(), &stubQuerier{})
	defer ReleaseContext(ctx)

	var (
		errOut ErrorHandle
		gas    = uint64(gasSentinel)
		value  Buffer
	)
	outcome := ReadDB(ctx, &errOut, &gas, &value, []byte("missing"))

	require.Equal(t, OutcomeSuccess, outcome, "缺失键是一等成功结果")
	assert.True(t, value.IsNil(), "缺失键以空哨兵结构化表达")
	assert.True(t, errOut.IsNil())
	assert.NotEqual(t, uint64(gasSentinel), gas, "成功结果下燃气必须被写入")
}

// TestWriteThenRead_RoundTrip 测试写后读往返
func TestWriteThenRead_RoundTrip(t *testing.T) {
	ctx := NewContext(newStubStore(), &stubQuerier{})
	defer ReleaseContext(ctx)

	var (
		errOut ErrorHandle
		gas    uint64
	)
	outcome := WriteDB(ctx, &errOut, &gas, []byte("k"), []byte("v"))
	require.Equal(t, OutcomeSuccess, outcome)
	assert.Greater(t, gas, uint64(0))

	var value Buffer
	gas = 0
	outcome = ReadDB(ctx, &errOut, &gas, &value, []byte("k"))
	require.Equal(t, OutcomeSuccess, outcome)
	require.False(t, value.IsNil())

	got, ok := Reclaim(value)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

// TestReadDB_EmptyValue 测试空值与缺失键可区分：空值产生存活句柄
func TestReadDB_EmptyValue(t *testing.T) {
	store := newStubStore()
	ctx := NewContext(store, &stubQuerier{})
	defer ReleaseContext(ctx)

	var (
		errOut ErrorHandle
		gas    uint64
	)
	outcome := WriteDB(ctx, &errOut, &gas, []byte("empty"), []byte{})
	require.Equal(t, OutcomeSuccess, outcome)

	var value Buffer
	outcome = ReadDB(ctx, &errOut, &gas, &value, []byte("empty"))
	require.Equal(t, OutcomeSuccess, outcome)
	require.False(t, value.IsNil(), "命中空值必须产生存活句柄，与缺失键的空哨兵不同")

	got, ok := Reclaim(value)
	require.True(t, ok)
	assert.Empty(t, got)
}

// TestRemoveDB_MissingKey 测试删除缺失键在边界层同样成功
func TestRemoveDB_MissingKey(t *testing.T) {
	ctx := NewContext(newStubStore(), &stubQuerier{})
	defer ReleaseContext(ctx)

	var (
		errOut ErrorHandle
		gas    uint64
	)
	outcome := RemoveDB(ctx, &errOut, &gas, []byte("never-existed"))
	assert.Equal(t, OutcomeSuccess, outcome, "边界层绝不因缺失键而失败")
	assert.True(t, errOut.IsNil())
}

//----------------------------------------------------------------------------
// 恐慌拦截
//----------------------------------------------------------------------------

// TestPanicContainment 测试各操作的恐慌被拦截为Panic结果，不向调用者传播
func TestPanicContainment(t *testing.T) {
	querier := &stubQuerier{panics: true}

	invocations := map[string]func(ctx Ctx, errOut *ErrorHandle, gas *uint64) Outcome{
		"read_db": func(ctx Ctx, errOut *ErrorHandle, gas *uint64) Outcome {
			var value Buffer
			return ReadDB(ctx, errOut, gas, &value, []byte("k"))
		},
		"write_db": func(ctx Ctx, errOut *ErrorHandle, gas *uint64) Outcome {
			return WriteDB(ctx, errOut, gas, []byte("k"), []byte("v"))
		},
		"remove_db": func(ctx Ctx, errOut *ErrorHandle, gas *uint64) Outcome {
			return RemoveDB(ctx, errOut, gas, []byte("k"))
		},
		"query_chain": func(ctx Ctx, errOut *ErrorHandle, gas *uint64) Outcome {
			var response Buffer
			return QueryChain(ctx, errOut, gas, &response, []byte(`{}`))
		},
	}

	for name, invoke := range invocations {
		t.Run(name, func(t *testing.T) {
			store := &faultStore{panicOn: map[string]bool{"get": true, "set": true, "remove": true}}
			ctx := NewContext(store, querier)
			defer ReleaseContext(ctx)

			var (
				errOut ErrorHandle
				gas    = uint64(gasSentinel)
			)

			// 不得向外传播恐慌
			var outcome Outcome
			require.NotPanics(t, func() {
				outcome = invoke(ctx, &errOut, &gas)
			})

			assert.Equal(t, OutcomePanic, outcome, "恐慌必须降级为Panic结果")
			assert.True(t, errOut.IsNil(), "Panic结果不附带任何负载")
			assert.Equal(t, uint64(gasSentinel), gas, "Panic后燃气出参无权威性，不得被写入")
		})
	}
}

//----------------------------------------------------------------------------
// 失败路径与燃气策略
//----------------------------------------------------------------------------

// TestFailure_BoxesError 测试领域失败：错误装箱、句柄出参、燃气不写入
func TestFailure_BoxesError(t *testing.T) {
	backendErr := types.NewBackendError("backend unavailable")
	store := &faultStore{errOn: map[string]error{
		"get":    backendErr,
		"set":    backendErr,
		"remove": backendErr,
	}}
	ctx := NewContext(store, &stubQuerier{})
	defer ReleaseContext(ctx)

	var (
		errOut ErrorHandle
		gas    = uint64(gasSentinel)
		value  Buffer
	)
	outcome := ReadDB(ctx, &errOut, &gas, &value, []byte("k"))

	require.Equal(t, OutcomeFailure, outcome)
	require.False(t, errOut.IsNil(), "失败必须携带装箱错误句柄")
	assert.Equal(t, uint64(gasSentinel), gas, "失败结果下燃气出参无权威性")
	assert.True(t, value.IsNil())

	boxed, ok := ReclaimError(errOut)
	require.True(t, ok)
	assert.True(t, boxed.Equal(backendErr), "错误必须不被静默丢弃地跨出边界")
}

// TestFailure_WrapsPlainError 测试普通error被规整为后端类别的VmError
func TestFailure_WrapsPlainError(t *testing.T) {
	store := &faultStore{errOn: map[string]error{"set": fmt.Errorf("disk full")}}
	ctx := NewContext(store, &stubQuerier{})
	defer ReleaseContext(ctx)

	var (
		errOut ErrorHandle
		gas    uint64
	)
	outcome := WriteDB(ctx, &errOut, &gas, []byte("k"), []byte("v"))
	require.Equal(t, OutcomeFailure, outcome)

	boxed, ok := ReclaimError(errOut)
	require.True(t, ok)
	assert.Equal(t, types.ErrKindBackend, boxed.Kind)
	assert.Contains(t, boxed.Message, "disk full")
}

//----------------------------------------------------------------------------
// 查询通道
//----------------------------------------------------------------------------

// TestQueryChain_RoundTrip 测试查询通道共享同一套结果策略
func TestQueryChain_RoundTrip(t *testing.T) {
	ctx := NewContext(newStubStore(), &stubQuerier{prefix: "resp:"})
	defer ReleaseContext(ctx)

	var (
		errOut   ErrorHandle
		gas      uint64
		response Buffer
	)
	outcome := QueryChain(ctx, &errOut, &gas, &response, []byte(`{"chain_id":{}}`))

	require.Equal(t, OutcomeSuccess, outcome)
	require.False(t, response.IsNil())
	assert.Equal(t, uint64(500), gas)

	got, ok := Reclaim(response)
	require.True(t, ok)
	assert.Equal(t, []byte(`resp:{"chain_id":{}}`), got)
}

// TestQueryChain_Failure 测试查询失败走装箱路径
func TestQueryChain_Failure(t *testing.T) {
	ctx := NewContext(newStubStore(), &stubQuerier{err: types.NewGenericError("unsupported query")})
	defer ReleaseContext(ctx)

	var (
		errOut   ErrorHandle
		gas      = uint64(gasSentinel)
		response Buffer
	)
	outcome := QueryChain(ctx, &errOut, &gas, &response, []byte(`{"bogus":{}}`))

	require.Equal(t, OutcomeFailure, outcome)
	require.False(t, errOut.IsNil())
	assert.Equal(t, uint64(gasSentinel), gas)

	boxed, ok := ReclaimError(errOut)
	require.True(t, ok)
	assert.Equal(t, types.ErrKindGeneric, boxed.Kind)
}

//----------------------------------------------------------------------------
// 分派一致性与上下文生命周期
//----------------------------------------------------------------------------

// TestDispatchCoherence 测试多个不同具体类型的上下文并发存活时，
// 每个上下文的调用只会触达构造它的那对具体实现
func TestDispatchCoherence(t *testing.T) {
	stub := newStubStore()
	_, err := stub.Set([]byte("k"), []byte("from-stub"))
	require.NoError(t, err)

	ctxA := NewContext(stub, &stubQuerier{})
	ctxB := NewContext(&altStore{marker: []byte("from-alt")}, &stubQuerier{})
	defer ReleaseContext(ctxA)
	defer ReleaseContext(ctxB)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			var (
				errOut ErrorHandle
				gas    uint64
				value  Buffer
			)
			outcome := ReadDB(ctxA, &errOut, &gas, &value, []byte("k"))
			assert.Equal(t, OutcomeSuccess, outcome)
			got, ok := Reclaim(value)
			assert.True(t, ok)
			assert.Equal(t, []byte("from-stub"), got)
		}()
		go func() {
			defer wg.Done()
			var (
				errOut ErrorHandle
				gas    uint64
				value  Buffer
			)
			outcome := ReadDB(ctxB, &errOut, &gas, &value, []byte("k"))
			assert.Equal(t, OutcomeSuccess, outcome)
			got, ok := Reclaim(value)
			assert.True(t, ok)
			assert.Equal(t, []byte("from-alt"), got)
		}()
	}
	wg.Wait()
}

// TestContextLifecycle 测试上下文恰好一次释放，释放后的调用降级为Panic
func TestContextLifecycle(t *testing.T) {
	ctx := NewContext(newStubStore(), &stubQuerier{})

	assert.True(t, ReleaseContext(ctx), "首次释放必须成功")
	assert.False(t, ReleaseContext(ctx), "二次释放是协议违规")

	var (
		errOut ErrorHandle
		gas    = uint64(gasSentinel)
		value  Buffer
	)
	outcome := ReadDB(ctx, &errOut, &gas, &value, []byte("k"))
	assert.Equal(t, OutcomePanic, outcome, "失效上下文降级为最保守的结果")
	assert.True(t, errOut.IsNil())
	assert.Equal(t, uint64(gasSentinel), gas)
}

// TestNoHandleLeaks 测试完整调用周期结束后句柄计数回到基线
func TestNoHandleLeaks(t *testing.T) {
	baseBuffers := LiveBuffers()
	baseErrors := LiveErrors()
	baseContexts := LiveContexts()

	ctx := NewContext(newStubStore(), &stubQuerier{prefix: "r:"})

	var (
		errOut ErrorHandle
		gas    uint64
		value  Buffer
	)
	require.Equal(t, OutcomeSuccess, WriteDB(ctx, &errOut, &gas, []byte("k"), []byte("v")))
	require.Equal(t, OutcomeSuccess, ReadDB(ctx, &errOut, &gas, &value, []byte("k")))
	_, ok := Reclaim(value)
	require.True(t, ok)

	var response Buffer
	require.Equal(t, OutcomeSuccess, QueryChain(ctx, &errOut, &gas, &response, []byte(`{}`)))
	_, ok = Reclaim(response)
	require.True(t, ok)

	require.Equal(t, OutcomeSuccess, RemoveDB(ctx, &errOut, &gas, []byte("k")))
	require.True(t, ReleaseContext(ctx))

	assert.Equal(t, baseBuffers, LiveBuffers())
	assert.Equal(t, baseErrors, LiveErrors())
	assert.Equal(t, baseContexts, LiveContexts())
}
