// Package querier 提供面向Enclave的链上查询路由
//
// Enclave侧的合约通过JSON编码的请求查询链上数据，本包负责
// 解析请求、路由到对应的数据源并返回JSON编码的响应。
package querier

import (
	"encoding/json"

	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/pkg/interfaces/enclave"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/enclave-host/pkg/types"
)

// ChainView 查询路由所依赖的链状态视图
type ChainView interface {
	// ChainID 返回链标识
	ChainID() string
	// BlockHeight 返回当前区块高度
	BlockHeight() uint64
}

// Request 查询请求，JSON编码，恰好一个字段非空
type Request struct {
	ChainID     *ChainIDQuery     `json:"chain_id,omitempty"`
	BlockHeight *BlockHeightQuery `json:"block_height,omitempty"`
	RawKey      *RawKeyQuery      `json:"raw_key,omitempty"`
}

// ChainIDQuery 查询链标识
type ChainIDQuery struct{}

// BlockHeightQuery 查询当前区块高度
type BlockHeightQuery struct{}

// RawKeyQuery 按原始键查询合约存储
type RawKeyQuery struct {
	Key []byte `json:"key"`
}

// ChainIDResponse 链标识响应
type ChainIDResponse struct {
	ChainID string `json:"chain_id"`
}

// BlockHeightResponse 区块高度响应
type BlockHeightResponse struct {
	Height uint64 `json:"height"`
}

// RawKeyResponse 原始键查询响应
// 键不存在时Found为false且Value为空
type RawKeyResponse struct {
	Value []byte `json:"value,omitempty"`
	Found bool   `json:"found"`
}

// Router JSON查询路由器，实现enclave.Querier接口
type Router struct {
	view     ChainView
	storage  enclave.Storage
	schedule gas.Schedule
	logger   log.Logger
}

// NewRouter 创建查询路由器
func NewRouter(view ChainView, storage enclave.Storage, schedule gas.Schedule, logger log.Logger) *Router {
	return &Router{
		view:     view,
		storage:  storage,
		schedule: schedule,
		logger:   logger,
	}
}

// Query 解析请求并路由到对应的处理分支
//
// 请求无法解析时返回序列化错误，未知请求类型返回通用错误。
// Gas按请求与响应的字节数计费。
func (r *Router) Query(request []byte) ([]byte, uint64, error) {
	var req Request
	if err := json.Unmarshal(request, &req); err != nil {
		return nil, 0, types.NewVmError(types.ErrKindSerialization,
			"查询请求解析失败: %v", err)
	}

	var (
		payload interface{}
		err     error
	)
	switch {
	case req.ChainID != nil:
		payload = ChainIDResponse{ChainID: r.view.ChainID()}
	case req.BlockHeight != nil:
		payload = BlockHeightResponse{Height: r.view.BlockHeight()}
	case req.RawKey != nil:
		payload, err = r.queryRawKey(req.RawKey)
	default:
		return nil, 0, types.NewGenericError("不支持的查询请求类型")
	}
	if err != nil {
		return nil, 0, err
	}

	response, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, types.NewVmError(types.ErrKindSerialization,
			"查询响应编码失败: %v", err)
	}

	if r.logger != nil {
		r.logger.Debugf("链上查询完成 (request=%d bytes, response=%d bytes)",
			len(request), len(response))
	}

	return response, r.schedule.QueryCost(len(request), len(response)), nil
}

func (r *Router) queryRawKey(q *RawKeyQuery) (RawKeyResponse, error) {
	value, found, _, err := r.storage.Get(q.Key)
	if err != nil {
		return RawKeyResponse{}, types.WrapVmError(err)
	}
	return RawKeyResponse{Value: value, Found: found}, nil
}

// StaticView 固定的链状态视图，用于测试与单机部署
type StaticView struct {
	ID     string
	Height uint64
}

// ChainID 返回链标识
func (v StaticView) ChainID() string { return v.ID }

// BlockHeight 返回当前区块高度
func (v StaticView) BlockHeight() uint64 { return v.Height }
