// Package badger 提供基于BadgerDB的合约状态存储策略
package badger

import (
	"errors"
	"fmt"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"

	badgerconfig "github.com/weisyn/enclave-host/internal/config/storage/badger"
	"github.com/weisyn/enclave-host/internal/core/enclave/gas"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
)

// Store 基于BadgerDB的持久化存储，实现enclave.Storage接口
type Store struct {
	db       *badgerdb.DB
	config   *badgerconfig.Config
	schedule gas.Schedule
	logger   log.Logger
}

// New 创建BadgerDB存储实例
// 初始化数据库并确保数据目录存在
func New(config *badgerconfig.Config, schedule gas.Schedule, logger log.Logger) (*Store, error) {
	dataDir := config.GetPath()
	if dataDir == "" {
		dataDir = "./data/badger"
		if logger != nil {
			logger.Warnf("BadgerDB数据目录路径未配置，使用默认路径: %s", dataDir)
		}
	}

	if logger != nil {
		logger.Infof("初始化BadgerDB存储，数据目录: %s", dataDir)
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("无法创建BadgerDB数据目录: %w", err)
	}

	opts := badgerdb.DefaultOptions(dataDir)
	opts.SyncWrites = config.IsSyncWritesEnabled()
	opts.MemTableSize = config.GetMemTableSize()
	// 状态存储不需要Badger自己的日志噪音
	opts.Logger = nil

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开BadgerDB失败: %w", err)
	}

	return &Store{
		db:       db,
		config:   config,
		schedule: schedule,
		logger:   logger,
	}, nil
}

// Get 读取指定键的值
// 键不存在返回found=false且err=nil——缺失键不是错误
func (s *Store) Get(key []byte) ([]byte, bool, uint64, error) {
	var value []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, false, s.schedule.ReadCost(len(key), 0), nil
	}
	if err != nil {
		return nil, false, 0, fmt.Errorf("badger读取失败: %w", err)
	}

	return value, true, s.schedule.ReadCost(len(key), len(value)), nil
}

// Set 写入键值对
func (s *Store) Set(key, value []byte) (uint64, error) {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return 0, fmt.Errorf("badger写入失败: %w", err)
	}

	return s.schedule.WriteCost(len(key), len(value)), nil
}

// Remove 删除指定键
// Badger对缺失键的Delete本身就是成功的
func (s *Store) Remove(key []byte) (uint64, error) {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return 0, fmt.Errorf("badger删除失败: %w", err)
	}

	return s.schedule.RemoveCost(len(key)), nil
}

// Close 关闭数据库
// 确保所有待处理的事务被提交，数据被正确写入磁盘
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("关闭BadgerDB存储")
	}
	return s.db.Close()
}
