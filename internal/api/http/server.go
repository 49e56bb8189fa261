// Package http 提供宿主进程的HTTP诊断服务
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/weisyn/enclave-host/internal/api/http/handlers"
	hostconfig "github.com/weisyn/enclave-host/internal/config/host"
	"github.com/weisyn/enclave-host/internal/core/enclave/stub"
	"github.com/weisyn/enclave-host/pkg/interfaces/infrastructure/log"
)

// Server HTTP诊断服务器
// 暴露健康检查、Prometheus指标与边界层诊断端点
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *hostconfig.Config
	logger     log.Logger
	enclave    *stub.Enclave
}

// NewServer 创建HTTP服务器并注册生命周期钩子
func NewServer(
	lifecycle fx.Lifecycle,
	config *hostconfig.Config,
	logger log.Logger,
	enclave *stub.Enclave,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:  router,
		config:  config,
		logger:  logger,
		enclave: enclave,
	}

	server.setupRoutes()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})

	return server
}

// setupRoutes 设置HTTP路由
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	stateHandlers := handlers.NewStateHandlers(s.enclave, s.logger)
	stateHandlers.RegisterRoutes(v1)

	if s.logger != nil {
		s.logger.Info("HTTP路由注册完成")
	}
}

// Start 启动HTTP服务
func (s *Server) Start() error {
	addr := s.config.GetListenAddr()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.Infof("HTTP诊断服务启动: http://%s", addr)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("HTTP服务异常退出: %v", err)
			}
		}
	}()

	return nil
}

// Stop 优雅停止HTTP服务
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("正在停止HTTP诊断服务...")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Module 返回HTTP服务模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(NewServer),
		// 创建即注册生命周期，必须强制实例化
		fx.Invoke(func(*Server) {}),
	)
}
