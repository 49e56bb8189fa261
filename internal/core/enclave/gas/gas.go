// Package gas 提供存储/查询策略共用的燃气价目表
//
// 🎯 **设计目的**：
// 燃气由策略计算、由边界层透传。所有策略共用同一张价目表，
// 保证同一条链上不同节点（无论选用哪种后端）对同一操作收取相同燃气——
// 燃气是共识数据，绝不允许依赖后端种类或缓存命中等非确定性因素。
package gas

// Schedule 燃气价目表
// 每个操作的成本 = (固定成本 + 每字节成本 × 字节数) × 倍率
type Schedule struct {
	ReadFlat      uint64 // 读操作固定成本
	ReadPerByte   uint64 // 读操作每字节成本（键+值）
	WriteFlat     uint64 // 写操作固定成本
	WritePerByte  uint64 // 写操作每字节成本（键+值）
	RemoveFlat    uint64 // 删除操作固定成本
	RemovePerByte uint64 // 删除操作每字节成本（键）
	QueryFlat     uint64 // 查询固定成本
	QueryPerByte  uint64 // 查询每字节成本（请求+响应）

	Multiplier uint64 // 全局倍率，来自宿主配置
}

// Default 返回默认价目表
func Default() Schedule {
	return Schedule{
		ReadFlat:      100,
		ReadPerByte:   1,
		WriteFlat:     200,
		WritePerByte:  2,
		RemoveFlat:    100,
		RemovePerByte: 1,
		QueryFlat:     500,
		QueryPerByte:  1,
		Multiplier:    1,
	}
}

// WithMultiplier 返回调整倍率后的价目表副本
func (s Schedule) WithMultiplier(multiplier uint64) Schedule {
	if multiplier == 0 {
		multiplier = 1
	}
	s.Multiplier = multiplier
	return s
}

// ReadCost 计算一次读操作的燃气
func (s Schedule) ReadCost(keyLen, valueLen int) uint64 {
	return (s.ReadFlat + s.ReadPerByte*uint64(keyLen+valueLen)) * s.Multiplier
}

// WriteCost 计算一次写操作的燃气
func (s Schedule) WriteCost(keyLen, valueLen int) uint64 {
	return (s.WriteFlat + s.WritePerByte*uint64(keyLen+valueLen)) * s.Multiplier
}

// RemoveCost 计算一次删除操作的燃气
func (s Schedule) RemoveCost(keyLen int) uint64 {
	return (s.RemoveFlat + s.RemovePerByte*uint64(keyLen)) * s.Multiplier
}

// QueryCost 计算一次查询的燃气
func (s Schedule) QueryCost(requestLen, responseLen int) uint64 {
	return (s.QueryFlat + s.QueryPerByte*uint64(requestLen+responseLen)) * s.Multiplier
}
