// Package log 提供系统的日志级别接口定义
//
// 📊 **日志级别管理 (Log Level Management)**
//
// 本文件定义日志级别别名，专注于：
// - 统一的日志级别定义
// - 日志级别与字符串的相互转换
// - 合理的默认日志级别设置
package log

import "github.com/weisyn/enclave-host/pkg/types"

// 兼容别名（定义在 pkg/types）
type LogLevel = types.LogLevel

// 常量别名
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
