package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/enclave-host/pkg/types"
)

// ============================================================================
// 错误装箱测试
// ============================================================================

// TestErrorBoxing_RoundTrip 测试装箱后的错误可在句柄处等值还原
func TestErrorBoxing_RoundTrip(t *testing.T) {
	cases := []*types.VmError{
		types.NewBackendError("数据库不可用: %s", "badger"),
		types.NewVmError(types.ErrKindGasDepletion, "燃气耗尽"),
		types.NewVmError(types.ErrKindSerialization, "无法解析查询请求"),
		types.NewGenericError("未知失败"),
	}

	for _, original := range cases {
		h := BoxError(original)
		require.False(t, h.IsNil())

		got, ok := ReclaimError(h)
		require.True(t, ok, "恰好一次的还原必须成功")
		assert.True(t, got.Equal(original), "还原的错误必须与原值可观测相等")
	}
}

// TestErrorBoxing_ExactlyOnce 测试恰好一次还原：计数归零，二次还原违规
func TestErrorBoxing_ExactlyOnce(t *testing.T) {
	base := LiveErrors()

	h := BoxError(types.NewBackendError("one shot"))
	assert.Equal(t, base+1, LiveErrors(), "装箱让渡所有权，句柄存活")

	_, ok := ReclaimError(h)
	require.True(t, ok)
	assert.Equal(t, base, LiveErrors(), "还原后不得残留分配")

	before := ErrorViolations()
	_, ok = ReclaimError(h)
	assert.False(t, ok)
	assert.Equal(t, before+1, ErrorViolations(), "二次还原必须计入违规")
}

// TestErrorBoxing_NilError 测试nil错误不产生句柄
func TestErrorBoxing_NilError(t *testing.T) {
	h := BoxError(nil)
	assert.True(t, h.IsNil())

	got, ok := ReclaimError(h)
	assert.False(t, ok)
	assert.Nil(t, got)
}
