package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	appnotification "github.com/xiebiao/educonnect/internal/application/notification"
	"github.com/xiebiao/educonnect/internal/infrastructure/config"
	"github.com/xiebiao/educonnect/internal/infrastructure/messaging"
	"github.com/xiebiao/educonnect/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/educonnect/pkg/logger"
	"github.com/xiebiao/educonnect/pkg/mq"
)

// main 通知服务入口
// 订阅RabbitMQ上的订单和账号事件，为相关用户写入站内通知。
// 需要mq.enabled=true，API进程负责发布。
func main() {
	metricsAddr := flag.String("metrics-addr", ":9101", "Prometheus指标监听地址，为空不启动")
	flag.Parse()

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
	zlog = zlog.Named("notifier")

	if !cfg.MQ.Enabled {
		zlog.Fatal("mq.enabled=false，事件在API进程内处理，无需启动通知服务")
	}

	db, closeDB, err := mysql.NewDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer closeDB()

	handler := appnotification.NewEventHandler(mysql.NewNotificationRepository(db), zlog)

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.Queue, messaging.RoutingKeys, zlog)
	if err != nil {
		zlog.Fatal("创建消费者失败", zap.Error(err))
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			zlog.Warn("关闭消费者失败", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *metricsAddr != "" {
		srv := &http.Server{Addr: *metricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zlog.Error("指标服务异常退出", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	zlog.Info("通知服务启动", zap.String("queue", cfg.MQ.Queue))
	if err := consumer.Consume(ctx, messaging.Dispatch(handler, zlog)); err != nil {
		zlog.Error("消费中断", zap.Error(err))
		return
	}
	zlog.Info("通知服务已关闭")
}
