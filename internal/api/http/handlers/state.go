// Package handlers 提供HTTP API的请求处理器
package handlers

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/enclave-host/internal/core/enclave/boundary"
	"github.com/weisyn/enclave-host/internal/core/enclave/stub"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/enclave-host/pkg/types"
)

// StateHandlers 合约状态诊断处理器
//
// 🔧 **诊断接口说明**：
// 所有操作都经由进程内的飞地模拟器走完整的边界调用路径，
// 因此返回的Gas与错误类别与真实飞地观察到的一致。
// 仅用于开发与运维诊断，不是面向合约的执行接口。
type StateHandlers struct {
	enclave *stub.Enclave
	logger  log.Logger
}

// NewStateHandlers 创建状态诊断处理器
func NewStateHandlers(enclave *stub.Enclave, logger log.Logger) *StateHandlers {
	return &StateHandlers{
		enclave: enclave,
		logger:  logger,
	}
}

// RegisterRoutes 注册状态诊断路由
func (h *StateHandlers) RegisterRoutes(group *gin.RouterGroup) {
	stateGroup := group.Group("/state")
	stateGroup.GET("/:key", h.GetState)
	stateGroup.PUT("/:key", h.SetState)
	stateGroup.DELETE("/:key", h.RemoveState)

	group.POST("/query", h.QueryChain)
	group.GET("/boundary", h.BoundaryStats)
}

type stateResponse struct {
	Key     string `json:"key"`
	Value   []byte `json:"value,omitempty"`
	Found   bool   `json:"found"`
	GasUsed uint64 `json:"gas_used"`
}

type setStateRequest struct {
	Value []byte `json:"value"`
}

// GetState 读取合约状态（键为十六进制编码）
func (h *StateHandlers) GetState(c *gin.Context) {
	key, ok := h.decodeKey(c)
	if !ok {
		return
	}

	value, found, gasUsed, err := h.enclave.Get(key)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stateResponse{
		Key:     c.Param("key"),
		Value:   value,
		Found:   found,
		GasUsed: gasUsed,
	})
}

// SetState 写入合约状态（值为JSON体中的base64编码）
func (h *StateHandlers) SetState(c *gin.Context) {
	key, ok := h.decodeKey(c)
	if !ok {
		return
	}

	var req setStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	gasUsed, err := h.enclave.Set(key, req.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gas_used": gasUsed})
}

// RemoveState 删除合约状态
func (h *StateHandlers) RemoveState(c *gin.Context) {
	key, ok := h.decodeKey(c)
	if !ok {
		return
	}

	gasUsed, err := h.enclave.Remove(key)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gas_used": gasUsed})
}

// QueryChain 发起链上查询（请求体为查询路由器的JSON请求）
func (h *StateHandlers) QueryChain(c *gin.Context) {
	request, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取请求体失败: " + err.Error()})
		return
	}

	response, gasUsed, err := h.enclave.Query(request)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": base64.StdEncoding.EncodeToString(response),
		"gas_used": gasUsed,
	})
}

// BoundaryStats 返回边界层的句柄统计
// 存活数非零且持续增长意味着飞地侧违反了回收义务
func (h *StateHandlers) BoundaryStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"live_buffers":      boundary.LiveBuffers(),
		"live_errors":       boundary.LiveErrors(),
		"live_contexts":     boundary.LiveContexts(),
		"buffer_violations": boundary.BufferViolations(),
		"error_violations":  boundary.ErrorViolations(),
	})
}

func (h *StateHandlers) decodeKey(c *gin.Context) ([]byte, bool) {
	key, err := hex.DecodeString(c.Param("key"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "键必须是十六进制编码"})
		return nil, false
	}
	return key, true
}

// writeError 将边界错误映射为HTTP响应
func (h *StateHandlers) writeError(c *gin.Context, err error) {
	var panicErr *stub.HostPanicError
	if errors.As(err, &panicErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   panicErr.Error(),
			"outcome": "panic",
		})
		return
	}

	var vmErr *types.VmError
	if errors.As(err, &vmErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   vmErr.Message,
			"kind":    string(vmErr.Kind),
			"outcome": "failure",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
