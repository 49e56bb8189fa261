package stub

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/enclave-host/internal/core/enclave/boundary"
	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/internal/core/enclave/querier"
	"github.com/weisyn/enclave-host/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/enclave-host/pkg/types"
)

// faultStorage 可注入错误与异常的存储桩
type faultStorage struct {
	*memory.Store
	getErr   error
	setPanic bool
}

func (s *faultStorage) Get(key []byte) ([]byte, bool, uint64, error) {
	if s.getErr != nil {
		return nil, false, 0, s.getErr
	}
	return s.Store.Get(key)
}

func (s *faultStorage) Set(key, value []byte) (uint64, error) {
	if s.setPanic {
		panic("storage corrupted")
	}
	return s.Store.Set(key, value)
}

func newTestEnclave(t *testing.T) *Enclave {
	t.Helper()

	store := memory.New(gas.Default(), nil)
	router := querier.NewRouter(querier.StaticView{ID: "enclave-test-1", Height: 7}, store, gas.Default(), nil)

	enc := New(store, router, nil)
	t.Cleanup(func() { enc.Close() })
	return enc
}

// 完整的写-读-删往返，覆盖缓冲区分配与回收的全路径
func TestEnclave_StateRoundTrip(t *testing.T) {
	enc := newTestEnclave(t)

	key := []byte("contract/balance")
	value := []byte{0x00, 0x10, 0x27}

	liveBefore := boundary.LiveBuffers()

	_, err := enc.Set(key, value)
	require.NoError(t, err)

	got, found, gasUsed, err := enc.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, value, got)
	assert.Equal(t, gas.Default().ReadCost(len(key), len(value)), gasUsed)

	_, err = enc.Remove(key)
	require.NoError(t, err)

	_, found, _, err = enc.Get(key)
	require.NoError(t, err)
	assert.False(t, found)

	// 完整往返后不得泄漏缓冲区
	assert.Equal(t, liveBefore, boundary.LiveBuffers())
}

func TestEnclave_QueryChain(t *testing.T) {
	enc := newTestEnclave(t)

	response, gasUsed, err := enc.Query([]byte(`{"block_height":{}}`))
	require.NoError(t, err)
	assert.NotZero(t, gasUsed)

	var resp querier.BlockHeightResponse
	require.NoError(t, json.Unmarshal(response, &resp))
	assert.Equal(t, uint64(7), resp.Height)
}

// 存储错误经装箱、移交、回收后在飞地侧还原为原始的类别与消息
func TestEnclave_FailureRestoresError(t *testing.T) {
	store := &faultStorage{
		Store:  memory.New(gas.Default(), nil),
		getErr: errors.New("connection reset"),
	}
	router := querier.NewRouter(querier.StaticView{ID: "c", Height: 1}, store, gas.Default(), nil)
	enc := New[*faultStorage, *querier.Router](store, router, nil)
	defer enc.Close()

	liveBefore := boundary.LiveErrors()

	_, _, _, err := enc.Get([]byte("key"))
	require.Error(t, err)

	var vmErr *types.VmError
	require.True(t, errors.As(err, &vmErr))
	assert.Equal(t, types.ErrKindBackend, vmErr.Kind)
	assert.Contains(t, vmErr.Message, "connection reset")

	// 错误句柄已被回收
	assert.Equal(t, liveBefore, boundary.LiveErrors())
}

func TestEnclave_HostPanicObserved(t *testing.T) {
	store := &faultStorage{
		Store:    memory.New(gas.Default(), nil),
		setPanic: true,
	}
	router := querier.NewRouter(querier.StaticView{ID: "c", Height: 1}, store, gas.Default(), nil)
	enc := New[*faultStorage, *querier.Router](store, router, nil)
	defer enc.Close()

	_, err := enc.Set([]byte("key"), []byte("value"))
	require.Error(t, err)

	var panicErr *HostPanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "write_db", panicErr.Op)
}

func TestEnclave_CloseIsIdempotent(t *testing.T) {
	store := memory.New(gas.Default(), nil)
	router := querier.NewRouter(querier.StaticView{ID: "c", Height: 1}, store, gas.Default(), nil)
	enc := New(store, router, nil)

	assert.True(t, enc.Close())
	assert.False(t, enc.Close())

	// 关闭后的调用观察到异常结局
	_, _, _, err := enc.Get([]byte("key"))
	var panicErr *HostPanicError
	require.True(t, errors.As(err, &panicErr))
}
