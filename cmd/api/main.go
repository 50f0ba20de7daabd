package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/xiebiao/educonnect/docs"
	"github.com/xiebiao/educonnect/internal/infrastructure/config"
	"github.com/xiebiao/educonnect/pkg/logger"
	"github.com/xiebiao/educonnect/pkg/tracing"
)

// @title           EduConnect API
// @version         1.0
// @description     学校与教材发布者对接平台：账号审核、教材目录、订单与站内通知
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     格式：Bearer {token}

// main API服务入口
// 1. 加载配置，初始化日志与链路追踪
// 2. Wire组装依赖（wire_gen.go）
// 3. 启动HTTP服务，收到SIGINT/SIGTERM后优雅关闭
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.Bool("mq", cfg.MQ.Enabled))

	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		zlog.Fatal("初始化链路追踪失败", zap.Error(err))
	}

	engine, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("HTTP服务启动", zap.String("addr", srv.Addr))
		if cfg.Server.EnableSwagger {
			zlog.Info("Swagger文档", zap.String("url", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zlog.Info("正在优雅关闭服务", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("HTTP服务强制关闭", zap.Error(err))
	}
	cleanup()
	if err := shutdownTracing(ctx); err != nil {
		zlog.Warn("关闭链路追踪失败", zap.Error(err))
	}
	zlog.Info("服务已关闭")
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return 10 * time.Second
}
