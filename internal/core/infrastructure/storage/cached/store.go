// Package cached 提供带内存缓存的读穿透存储装饰器
//
// 基于BigCache缓存底层存储的读取结果。缓存对Gas计量必须完全透明：
// Gas消耗是共识数据，同一操作无论命中与否都必须收取相同的Gas，
// 因此本层始终按计费表公式计算读取Gas，而不使用底层返回的数值。
package cached

import (
	"context"
	"fmt"

	"github.com/allegro/bigcache/v3"

	cachedconfig "github.com/weisyn/enclave-host/internal/config/storage/cached"
	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/pkg/interfaces/enclave"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
)

// 缓存条目首字节标记，用于区分"键不存在"与"空值"
const (
	entryMissing byte = 0x00
	entryPresent byte = 0x01
)

// Backend 被装饰的底层存储，需要支持关闭
type Backend interface {
	enclave.Storage
	Close() error
}

// Store 读穿透缓存存储，实现enclave.Storage接口
type Store struct {
	backend  Backend
	cache    *bigcache.BigCache
	schedule gas.Schedule
	logger   log.Logger
}

// New 创建缓存装饰器
func New(config *cachedconfig.Config, backend Backend, schedule gas.Schedule, logger log.Logger) (*Store, error) {
	cacheConfig := bigcache.DefaultConfig(config.GetLifeWindow())
	cacheConfig.CleanWindow = config.GetCleanWindow()
	cacheConfig.MaxEntrySize = config.GetMaxEntrySize()
	cacheConfig.HardMaxCacheSize = config.GetHardMaxCacheSize()
	cacheConfig.Verbose = false

	cache, err := bigcache.New(context.Background(), cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("初始化BigCache失败: %w", err)
	}

	if logger != nil {
		logger.Infof("缓存存储已启用 (生命窗口=%s, 硬上限=%dMB)",
			config.GetLifeWindow(), config.GetHardMaxCacheSize())
	}

	return &Store{
		backend:  backend,
		cache:    cache,
		schedule: schedule,
		logger:   logger,
	}, nil
}

// Get 读取指定键的值
// 命中与未命中收取相同的Gas，缓存不得影响计量结果
func (s *Store) Get(key []byte) ([]byte, bool, uint64, error) {
	if entry, err := s.cache.Get(string(key)); err == nil && len(entry) > 0 {
		if entry[0] == entryMissing {
			return nil, false, s.schedule.ReadCost(len(key), 0), nil
		}
		value := make([]byte, len(entry)-1)
		copy(value, entry[1:])
		return value, true, s.schedule.ReadCost(len(key), len(value)), nil
	}

	value, found, _, err := s.backend.Get(key)
	if err != nil {
		return nil, false, 0, err
	}

	s.fill(key, value, found)

	if !found {
		return nil, false, s.schedule.ReadCost(len(key), 0), nil
	}
	return value, true, s.schedule.ReadCost(len(key), len(value)), nil
}

// Set 写入键值对并同步更新缓存
func (s *Store) Set(key, value []byte) (uint64, error) {
	if _, err := s.backend.Set(key, value); err != nil {
		// 写入失败时缓存状态未知，直接失效
		_ = s.cache.Delete(string(key))
		return 0, err
	}

	s.fill(key, value, true)
	return s.schedule.WriteCost(len(key), len(value)), nil
}

// Remove 删除指定键并在缓存中记录缺失
func (s *Store) Remove(key []byte) (uint64, error) {
	if _, err := s.backend.Remove(key); err != nil {
		_ = s.cache.Delete(string(key))
		return 0, err
	}

	s.fill(key, nil, false)
	return s.schedule.RemoveCost(len(key)), nil
}

// fill 写入缓存条目，失败只影响后续命中率，不影响正确性
func (s *Store) fill(key, value []byte, found bool) {
	var entry []byte
	if found {
		entry = make([]byte, len(value)+1)
		entry[0] = entryPresent
		copy(entry[1:], value)
	} else {
		entry = []byte{entryMissing}
	}
	if err := s.cache.Set(string(key), entry); err != nil && s.logger != nil {
		s.logger.Debugf("缓存写入失败 (len=%d): %v", len(key), err)
	}
}

// Close 关闭缓存与底层存储
func (s *Store) Close() error {
	_ = s.cache.Close()
	return s.backend.Close()
}
