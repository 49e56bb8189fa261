// Package memory 提供基于内存map的合约状态存储策略
//
// 🎯 **设计目的**：
// 零依赖、开箱即用的默认存储后端，也是测试与诊断工具的工作马。
// 实现 enclave.Storage 接口，与 badger/redis 后端可互换。
package memory

import (
	"sync"

	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
)

// Store 基于map的内存存储，实现enclave.Storage接口
//
// 🔒 **并发说明**：
// 边界层自身不加锁，同一Store可能被嵌入方用于多个调用上下文，
// 因此这里用读写锁保证自身的线程安全。
type Store struct {
	mu       sync.RWMutex
	data     map[string][]byte
	schedule gas.Schedule
	logger   log.Logger
}

// New 创建内存存储实例
func New(schedule gas.Schedule, logger log.Logger) *Store {
	return &Store{
		data:     make(map[string][]byte),
		schedule: schedule,
		logger:   logger,
	}
}

// Get 读取指定键的值
// 键不存在返回found=false且err=nil——缺失键不是错误
func (s *Store) Get(key []byte) ([]byte, bool, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[string(key)]
	if !ok {
		return nil, false, s.schedule.ReadCost(len(key), 0), nil
	}

	// 复制返回：调用方拿到的值与内部状态解耦
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, s.schedule.ReadCost(len(key), len(v)), nil
}

// Set 写入键值对
func (s *Store) Set(key, value []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make([]byte, len(value))
	copy(owned, value)
	s.data[string(key)] = owned

	return s.schedule.WriteCost(len(key), len(value)), nil
}

// Remove 删除指定键
// 键不存在时同样成功
func (s *Store) Remove(key []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, string(key))
	return s.schedule.RemoveCost(len(key)), nil
}

// Len 当前键数量（测试与诊断用）
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
