package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	store := New(gas.Default(), nil)

	value, found, gasUsed, err := store.Get([]byte("missing"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
	assert.Equal(t, gas.Default().ReadCost(7, 0), gasUsed)
}

func TestMemoryStore_SetGetRemove(t *testing.T) {
	store := New(gas.Default(), nil)

	key := []byte("contract/state/counter")
	value := []byte{0x01, 0x02, 0x03}

	_, err := store.Set(key, value)
	require.NoError(t, err)

	got, found, _, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, value, got)

	_, err = store.Remove(key)
	require.NoError(t, err)

	_, found, _, err = store.Get(key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_EmptyValueIsNotMissing(t *testing.T) {
	store := New(gas.Default(), nil)

	key := []byte("empty")
	_, err := store.Set(key, []byte{})
	require.NoError(t, err)

	got, found, _, err := store.Get(key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestMemoryStore_RemoveMissingSucceeds(t *testing.T) {
	store := New(gas.Default(), nil)

	gasUsed, err := store.Remove([]byte("never-written"))
	require.NoError(t, err)
	assert.Equal(t, gas.Default().RemoveCost(len("never-written")), gasUsed)
}

// 返回的值必须是副本，调用者修改不能污染存储内部状态
func TestMemoryStore_CopySemantics(t *testing.T) {
	store := New(gas.Default(), nil)

	key := []byte("key")
	original := []byte("original")
	_, err := store.Set(key, original)
	require.NoError(t, err)

	// 写入后修改输入切片
	original[0] = 'X'

	got, found, _, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("original"), got)

	// 修改读出的切片不影响下次读取
	got[0] = 'Y'
	again, _, _, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryStore_GasScalesWithSize(t *testing.T) {
	schedule := gas.Default()
	store := New(schedule, nil)

	small := []byte("a")
	large := make([]byte, 1024)

	smallGas, err := store.Set([]byte("k1"), small)
	require.NoError(t, err)
	largeGas, err := store.Set([]byte("k2"), large)
	require.NoError(t, err)

	assert.Greater(t, largeGas, smallGas)
	assert.Equal(t, schedule.WriteCost(2, len(large)), largeGas)
}
