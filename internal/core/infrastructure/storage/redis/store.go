// Package redis 提供基于Redis的合约状态存储策略
// 适用于多个宿主进程共享同一状态视图的部署场景
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	redisconfig "github.com/weisyn/enclave-host/internal/config/storage/redis"
	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
)

// Store 基于Redis的远程存储，实现enclave.Storage接口
//
// 所有键都带上配置的前缀，避免与同一Redis实例上的其他业务冲突。
// 每个操作使用独立的超时上下文，防止远端故障阻塞边界调用。
type Store struct {
	client   *goredis.Client
	config   *redisconfig.Config
	schedule gas.Schedule
	logger   log.Logger
}

// New 创建Redis存储实例并验证连通性
func New(config *redisconfig.Config, schedule gas.Schedule, logger log.Logger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        config.GetAddr(),
		Password:    config.GetPassword(),
		DB:          config.GetDB(),
		DialTimeout: config.GetDialTimeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDialTimeout())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis连接失败 %s: %w", config.GetAddr(), err)
	}

	if logger != nil {
		logger.Infof("Redis存储已连接: %s (db=%d, prefix=%s)",
			config.GetAddr(), config.GetDB(), config.GetKeyPrefix())
	}

	return &Store{
		client:   client,
		config:   config,
		schedule: schedule,
		logger:   logger,
	}, nil
}

func (s *Store) prefixed(key []byte) string {
	return s.config.GetKeyPrefix() + string(key)
}

// Get 读取指定键的值
// redis.Nil映射为found=false且err=nil
func (s *Store) Get(key []byte) ([]byte, bool, uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.GetOpTimeout())
	defer cancel()

	value, err := s.client.Get(ctx, s.prefixed(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, s.schedule.ReadCost(len(key), 0), nil
	}
	if err != nil {
		return nil, false, 0, fmt.Errorf("redis读取失败: %w", err)
	}

	return value, true, s.schedule.ReadCost(len(key), len(value)), nil
}

// Set 写入键值对
func (s *Store) Set(key, value []byte) (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.GetOpTimeout())
	defer cancel()

	if err := s.client.Set(ctx, s.prefixed(key), value, 0).Err(); err != nil {
		return 0, fmt.Errorf("redis写入失败: %w", err)
	}

	return s.schedule.WriteCost(len(key), len(value)), nil
}

// Remove 删除指定键
// 删除不存在的键同样成功，与其他存储策略保持一致
func (s *Store) Remove(key []byte) (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.GetOpTimeout())
	defer cancel()

	if err := s.client.Del(ctx, s.prefixed(key)).Err(); err != nil {
		return 0, fmt.Errorf("redis删除失败: %w", err)
	}

	return s.schedule.RemoveCost(len(key)), nil
}

// Close 关闭Redis连接
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("关闭Redis存储连接")
	}
	return s.client.Close()
}
